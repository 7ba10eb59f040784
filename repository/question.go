package repository

import (
	"context"

	"github.com/forumhub/backend/domain"
)

type QuestionRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Question, error)
	List(ctx context.Context) ([]domain.Question, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Question, error)
	ListByTagName(ctx context.Context, tagName string) ([]domain.Question, error)
	// ListByAcceptedAnswerIDs returns questions whose accepted answer is one
	// of the given ids. Used by the user-deletion cascade repair.
	ListByAcceptedAnswerIDs(ctx context.Context, answerIDs []string) ([]domain.Question, error)
	SearchByTitle(ctx context.Context, title string) ([]domain.Question, error)
	Create(ctx context.Context, question *domain.Question) (*domain.Question, error)
	Update(ctx context.Context, question *domain.Question) error
	// Delete removes the question; its answers, tag links and votes go with it.
	Delete(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, authorID string) error
}
