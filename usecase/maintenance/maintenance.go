// Package maintenance holds the administrative batch jobs: phone number
// format rewriting and test-account cleanup. They run on demand or on the
// cron schedule configured at boot.
package maintenance

import (
	"context"
	"strings"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

// UserRemover performs the full cascading user deletion.
type UserRemover interface {
	DeleteUser(ctx context.Context, id string) error
}

const testEmailSuffix = "@example.com"

type UseCase struct {
	users   repository.UserRepository
	remover UserRemover
	logger  *zap.Logger
}

func New(users repository.UserRepository, remover UserRemover, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:   users,
		remover: remover,
		logger:  logger,
	}
}

// UpdatePhoneNumberFormats rewrites local numbers starting with 07 to the
// international +40 prefix. Returns how many users were touched.
func (uc *UseCase) UpdatePhoneNumberFormats(ctx context.Context) (int, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return 0, err
	}

	var updated int
	for i := range users {
		user := users[i]
		if !strings.HasPrefix(user.PhoneNumber, "07") {
			continue
		}
		user.PhoneNumber = "+40" + user.PhoneNumber[1:]
		if err := uc.users.Update(ctx, &user); err != nil {
			return updated, err
		}
		updated++
	}

	uc.logger.Info("phone number formats updated", zap.Int("users", updated))
	return updated, nil
}

// CleanupTestUsers cascade-deletes every user with an @example.com address.
// Individual failures do not stop the sweep; they are accumulated and
// reported together.
func (uc *UseCase) CleanupTestUsers(ctx context.Context) (int, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return 0, err
	}

	var deleted int
	var result *multierror.Error
	for _, user := range users {
		if !strings.HasSuffix(user.Email, testEmailSuffix) {
			continue
		}
		if err := uc.remover.DeleteUser(ctx, user.ID); err != nil {
			uc.logger.Warn("test user cleanup failed",
				zap.String("user_id", user.ID),
				zap.Error(err),
			)
			result = multierror.Append(result, domain.WrapError(domain.ErrCodeInternal, "delete test user "+user.ID, err))
			continue
		}
		deleted++
	}

	uc.logger.Info("test users cleaned up", zap.Int("deleted", deleted))
	return deleted, result.ErrorOrNil()
}
