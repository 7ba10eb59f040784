package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

type questionRepository struct {
	store *Store
}

func NewQuestionRepository(store *Store) repository.QuestionRepository {
	return &questionRepository{store: store}
}

func (r *questionRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	defer r.store.lock(ctx)()
	question, ok := r.store.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	return &question, nil
}

func (r *questionRepository) List(ctx context.Context) ([]domain.Question, error) {
	defer r.store.lock(ctx)()
	return r.collect(func(domain.Question) bool { return true }), nil
}

func (r *questionRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Question, error) {
	defer r.store.lock(ctx)()
	return r.collect(func(q domain.Question) bool { return q.AuthorID == authorID }), nil
}

func (r *questionRepository) ListByTagName(ctx context.Context, tagName string) ([]domain.Question, error) {
	defer r.store.lock(ctx)()

	var tagID string
	for _, tag := range r.store.tags {
		if tag.Name == tagName {
			tagID = tag.ID
			break
		}
	}
	if tagID == "" {
		return nil, nil
	}

	tagged := make(map[string]bool)
	for _, link := range r.store.questionTags {
		if link.TagID == tagID {
			tagged[link.QuestionID] = true
		}
	}
	return r.collect(func(q domain.Question) bool { return tagged[q.ID] }), nil
}

func (r *questionRepository) ListByAcceptedAnswerIDs(ctx context.Context, answerIDs []string) ([]domain.Question, error) {
	if len(answerIDs) == 0 {
		return nil, nil
	}
	defer r.store.lock(ctx)()

	wanted := make(map[string]bool, len(answerIDs))
	for _, id := range answerIDs {
		wanted[id] = true
	}
	return r.collect(func(q domain.Question) bool {
		return q.AcceptedAnswerID != nil && wanted[*q.AcceptedAnswerID]
	}), nil
}

func (r *questionRepository) SearchByTitle(ctx context.Context, title string) ([]domain.Question, error) {
	defer r.store.lock(ctx)()
	needle := strings.ToLower(title)
	return r.collect(func(q domain.Question) bool {
		return strings.Contains(strings.ToLower(q.Title), needle)
	}), nil
}

func (r *questionRepository) Create(ctx context.Context, question *domain.Question) (*domain.Question, error) {
	if question == nil {
		return nil, domain.ErrInvalidPayload
	}
	defer r.store.lock(ctx)()

	if question.Status == "" {
		question.Status = domain.StatusReceived
	}
	question.CreatedAt = now()
	question.UpdatedAt = question.CreatedAt
	r.store.questions[question.ID] = *question
	return question, nil
}

func (r *questionRepository) Update(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return domain.ErrInvalidPayload
	}
	defer r.store.lock(ctx)()

	if _, ok := r.store.questions[question.ID]; !ok {
		return domain.ErrQuestionNotFound
	}
	question.UpdatedAt = now()
	r.store.questions[question.ID] = *question
	return nil
}

func (r *questionRepository) Delete(ctx context.Context, id string) error {
	defer r.store.lock(ctx)()
	if _, ok := r.store.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	r.store.deleteQuestionLocked(id)
	return nil
}

func (r *questionRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	defer r.store.lock(ctx)()
	for id, question := range r.store.questions {
		if question.AuthorID == authorID {
			r.store.deleteQuestionLocked(id)
		}
	}
	return nil
}

// collect filters questions and returns them newest first, matching the SQL
// ORDER BY created_at DESC. Caller holds the lock.
func (r *questionRepository) collect(keep func(domain.Question) bool) []domain.Question {
	var questions []domain.Question
	for _, question := range r.store.questions {
		if keep(question) {
			questions = append(questions, question)
		}
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].CreatedAt.After(questions[j].CreatedAt)
	})
	return questions
}
