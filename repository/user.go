package repository

import (
	"context"

	"github.com/forumhub/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error

	// AdjustScore applies a delta to the user's running score total. The
	// store serializes concurrent adjustments to the same row.
	AdjustScore(ctx context.Context, id string, delta float64) error
	SetBanned(ctx context.Context, id string, banned bool) error
}
