package memory

import (
	"context"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	defer r.store.lock(ctx)()
	user, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	defer r.store.lock(ctx)()
	for _, user := range r.store.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	defer r.store.lock(ctx)()
	users := make([]domain.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}
	defer r.store.lock(ctx)()

	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	r.store.users[user.ID] = *user
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	defer r.store.lock(ctx)()

	existing, ok := r.store.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for id, other := range r.store.users {
		if id != user.ID && other.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	existing.Username = user.Username
	existing.Email = user.Email
	existing.Password = user.Password
	existing.PhoneNumber = user.PhoneNumber
	existing.UpdatedAt = now()
	r.store.users[user.ID] = existing
	*user = existing
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	defer r.store.lock(ctx)()
	if _, ok := r.store.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.store.users, id)
	return nil
}

func (r *userRepository) AdjustScore(ctx context.Context, id string, delta float64) error {
	defer r.store.lock(ctx)()
	user, ok := r.store.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Score += delta
	user.UpdatedAt = now()
	r.store.users[id] = user
	return nil
}

func (r *userRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	defer r.store.lock(ctx)()
	user, ok := r.store.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.IsBanned = banned
	user.UpdatedAt = now()
	r.store.users[id] = user
	return nil
}
