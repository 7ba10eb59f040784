package memory

import (
	"context"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

type questionVoteRepository struct {
	store *Store
}

func NewQuestionVoteRepository(store *Store) repository.QuestionVoteRepository {
	return &questionVoteRepository{store: store}
}

func (r *questionVoteRepository) GetByQuestionAndVoter(ctx context.Context, questionID, voterID string) (*domain.QuestionVote, error) {
	defer r.store.lock(ctx)()
	for _, vote := range r.store.questionVotes {
		if vote.QuestionID == questionID && vote.VoterID == voterID {
			return &vote, nil
		}
	}
	return nil, repository.ErrNoQuestionVote
}

func (r *questionVoteRepository) Create(ctx context.Context, vote *domain.QuestionVote) (*domain.QuestionVote, error) {
	if vote == nil {
		return nil, domain.ErrInvalidPayload
	}
	defer r.store.lock(ctx)()

	for _, existing := range r.store.questionVotes {
		if existing.QuestionID == vote.QuestionID && existing.VoterID == vote.VoterID {
			return nil, domain.ErrVoteConflict
		}
	}
	vote.CreatedAt = now()
	vote.UpdatedAt = vote.CreatedAt
	r.store.questionVotes[vote.ID] = *vote
	return vote, nil
}

func (r *questionVoteRepository) Update(ctx context.Context, vote *domain.QuestionVote) error {
	if vote == nil {
		return domain.ErrInvalidPayload
	}
	defer r.store.lock(ctx)()

	existing, ok := r.store.questionVotes[vote.ID]
	if !ok {
		return repository.ErrNoQuestionVote
	}
	existing.Value = vote.Value
	existing.UpdatedAt = now()
	r.store.questionVotes[vote.ID] = existing
	*vote = existing
	return nil
}

func (r *questionVoteRepository) Delete(ctx context.Context, id string) error {
	defer r.store.lock(ctx)()
	if _, ok := r.store.questionVotes[id]; !ok {
		return repository.ErrNoQuestionVote
	}
	delete(r.store.questionVotes, id)
	return nil
}

func (r *questionVoteRepository) DeleteByVoter(ctx context.Context, voterID string) error {
	defer r.store.lock(ctx)()
	for id, vote := range r.store.questionVotes {
		if vote.VoterID == voterID {
			delete(r.store.questionVotes, id)
		}
	}
	return nil
}

type answerVoteRepository struct {
	store *Store
}

func NewAnswerVoteRepository(store *Store) repository.AnswerVoteRepository {
	return &answerVoteRepository{store: store}
}

func (r *answerVoteRepository) GetByAnswerAndVoter(ctx context.Context, answerID, voterID string) (*domain.AnswerVote, error) {
	defer r.store.lock(ctx)()
	for _, vote := range r.store.answerVotes {
		if vote.AnswerID == answerID && vote.VoterID == voterID {
			return &vote, nil
		}
	}
	return nil, repository.ErrNoAnswerVote
}

func (r *answerVoteRepository) Create(ctx context.Context, vote *domain.AnswerVote) (*domain.AnswerVote, error) {
	if vote == nil {
		return nil, domain.ErrInvalidPayload
	}
	defer r.store.lock(ctx)()

	for _, existing := range r.store.answerVotes {
		if existing.AnswerID == vote.AnswerID && existing.VoterID == vote.VoterID {
			return nil, domain.ErrVoteConflict
		}
	}
	vote.CreatedAt = now()
	vote.UpdatedAt = vote.CreatedAt
	r.store.answerVotes[vote.ID] = *vote
	return vote, nil
}

func (r *answerVoteRepository) Update(ctx context.Context, vote *domain.AnswerVote) error {
	if vote == nil {
		return domain.ErrInvalidPayload
	}
	defer r.store.lock(ctx)()

	existing, ok := r.store.answerVotes[vote.ID]
	if !ok {
		return repository.ErrNoAnswerVote
	}
	existing.Value = vote.Value
	existing.UpdatedAt = now()
	r.store.answerVotes[vote.ID] = existing
	*vote = existing
	return nil
}

func (r *answerVoteRepository) Delete(ctx context.Context, id string) error {
	defer r.store.lock(ctx)()
	if _, ok := r.store.answerVotes[id]; !ok {
		return repository.ErrNoAnswerVote
	}
	delete(r.store.answerVotes, id)
	return nil
}

func (r *answerVoteRepository) DeleteByVoter(ctx context.Context, voterID string) error {
	defer r.store.lock(ctx)()
	for id, vote := range r.store.answerVotes {
		if vote.VoterID == voterID {
			delete(r.store.answerVotes, id)
		}
	}
	return nil
}
