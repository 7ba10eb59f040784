package memory

import (
	"context"
	"sort"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

type answerRepository struct {
	store *Store
}

func NewAnswerRepository(store *Store) repository.AnswerRepository {
	return &answerRepository{store: store}
}

func (r *answerRepository) GetByID(ctx context.Context, id string) (*domain.Answer, error) {
	defer r.store.lock(ctx)()
	answer, ok := r.store.answers[id]
	if !ok {
		return nil, domain.ErrAnswerNotFound
	}
	return &answer, nil
}

func (r *answerRepository) List(ctx context.Context) ([]domain.Answer, error) {
	defer r.store.lock(ctx)()
	return r.collect(func(domain.Answer) bool { return true }), nil
}

func (r *answerRepository) ListByQuestion(ctx context.Context, questionID string) ([]domain.Answer, error) {
	defer r.store.lock(ctx)()
	return r.collect(func(a domain.Answer) bool { return a.QuestionID == questionID }), nil
}

func (r *answerRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Answer, error) {
	defer r.store.lock(ctx)()
	return r.collect(func(a domain.Answer) bool { return a.AuthorID == authorID }), nil
}

func (r *answerRepository) Create(ctx context.Context, answer *domain.Answer) (*domain.Answer, error) {
	if answer == nil {
		return nil, domain.ErrInvalidPayload
	}
	defer r.store.lock(ctx)()

	answer.CreatedAt = now()
	answer.UpdatedAt = answer.CreatedAt
	r.store.answers[answer.ID] = *answer
	return answer, nil
}

func (r *answerRepository) Update(ctx context.Context, answer *domain.Answer) error {
	if answer == nil {
		return domain.ErrInvalidPayload
	}
	defer r.store.lock(ctx)()

	existing, ok := r.store.answers[answer.ID]
	if !ok {
		return domain.ErrAnswerNotFound
	}
	existing.Text = answer.Text
	existing.Picture = answer.Picture
	existing.UpdatedAt = now()
	r.store.answers[answer.ID] = existing
	*answer = existing
	return nil
}

func (r *answerRepository) Delete(ctx context.Context, id string) error {
	defer r.store.lock(ctx)()
	if _, ok := r.store.answers[id]; !ok {
		return domain.ErrAnswerNotFound
	}
	r.store.deleteAnswerLocked(id)
	return nil
}

func (r *answerRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	defer r.store.lock(ctx)()
	for id, answer := range r.store.answers {
		if answer.AuthorID == authorID {
			r.store.deleteAnswerLocked(id)
		}
	}
	return nil
}

func (r *answerRepository) collect(keep func(domain.Answer) bool) []domain.Answer {
	var answers []domain.Answer
	for _, answer := range r.store.answers {
		if keep(answer) {
			answers = append(answers, answer)
		}
	}
	sort.Slice(answers, func(i, j int) bool {
		return answers[i].CreatedAt.After(answers[j].CreatedAt)
	})
	return answers
}
