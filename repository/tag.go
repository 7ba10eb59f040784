package repository

import (
	"context"

	"github.com/forumhub/backend/domain"
)

type TagRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error)

	ListForQuestion(ctx context.Context, questionID string) ([]domain.Tag, error)
	Associate(ctx context.Context, questionID, tagID string) error
	Dissociate(ctx context.Context, questionID, tagID string) error
}
