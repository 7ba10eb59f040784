package repository

import (
	"context"

	"github.com/forumhub/backend/domain"
)

type AnswerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Answer, error)
	List(ctx context.Context) ([]domain.Answer, error)
	ListByQuestion(ctx context.Context, questionID string) ([]domain.Answer, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Answer, error)
	Create(ctx context.Context, answer *domain.Answer) (*domain.Answer, error)
	Update(ctx context.Context, answer *domain.Answer) error
	// Delete removes the answer; its votes go with it.
	Delete(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, authorID string) error
}
