package repository

import (
	"context"

	"github.com/forumhub/backend/domain"
)

// Vote repositories return the sentinel not-found errors when no row exists
// for the (target, voter) pair; the ledger treats that as "no existing vote".

var (
	ErrNoQuestionVote = domain.NewError(domain.ErrCodeNotFound, "question vote not found")
	ErrNoAnswerVote   = domain.NewError(domain.ErrCodeNotFound, "answer vote not found")
)

type QuestionVoteRepository interface {
	GetByQuestionAndVoter(ctx context.Context, questionID, voterID string) (*domain.QuestionVote, error)
	Create(ctx context.Context, vote *domain.QuestionVote) (*domain.QuestionVote, error)
	Update(ctx context.Context, vote *domain.QuestionVote) error
	Delete(ctx context.Context, id string) error
	DeleteByVoter(ctx context.Context, voterID string) error
}

type AnswerVoteRepository interface {
	GetByAnswerAndVoter(ctx context.Context, answerID, voterID string) (*domain.AnswerVote, error)
	Create(ctx context.Context, vote *domain.AnswerVote) (*domain.AnswerVote, error)
	Update(ctx context.Context, vote *domain.AnswerVote) error
	Delete(ctx context.Context, id string) error
	DeleteByVoter(ctx context.Context, voterID string) error
}
