// Package user covers registration, profile updates, moderation and the
// cascading deletion that keeps votes, answers and accepted-answer pointers
// consistent when a user goes away.
package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

type UseCase struct {
	tx            repository.Transactor
	users         repository.UserRepository
	questions     repository.QuestionRepository
	answers       repository.AnswerRepository
	questionVotes repository.QuestionVoteRepository
	answerVotes   repository.AnswerVoteRepository
	logger        *zap.Logger
}

func New(
	tx repository.Transactor,
	users repository.UserRepository,
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	questionVotes repository.QuestionVoteRepository,
	answerVotes repository.AnswerVoteRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tx:            tx,
		users:         users,
		questions:     questions,
		answers:       answers,
		questionVotes: questionVotes,
		answerVotes:   answerVotes,
		logger:        logger,
	}
}

// Register creates a new user with a zero score and the USER role unless one
// is supplied. Email uniqueness is enforced.
func (uc *UseCase) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || user.Email == "" || user.Username == "" {
		return nil, domain.ErrInvalidPayload
	}

	user.ID = uuid.NewString()
	user.Score = 0
	user.IsBanned = false
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	created, err := uc.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("user registered", zap.String("user_id", created.ID))
	return created, nil
}

func (uc *UseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.users.GetByID(ctx, id)
}

func (uc *UseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	return uc.users.List(ctx)
}

// UpdateUser replaces username, email and phone number. The password only
// changes when a non-empty one is supplied.
func (uc *UseCase) UpdateUser(ctx context.Context, id string, data *domain.User) (*domain.User, error) {
	if data == nil {
		return nil, domain.ErrInvalidPayload
	}

	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Username = data.Username
	user.Email = data.Email
	user.PhoneNumber = data.PhoneNumber
	if data.Password != "" {
		user.Password = data.Password
	}
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user and repairs everything referencing them, in one
// transaction. The ordering avoids dangling references at every step: votes
// cast by the user go first, then questions that had one of the user's
// answers accepted are reset to RECEIVED, then the user's answers, then the
// user's questions with their cascades, then the user row. Scores changed by
// the removed votes are intentionally left as they are.
func (uc *UseCase) DeleteUser(ctx context.Context, id string) error {
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.users.GetByID(ctx, id); err != nil {
			return err
		}

		if err := uc.questionVotes.DeleteByVoter(ctx, id); err != nil {
			return err
		}
		if err := uc.answerVotes.DeleteByVoter(ctx, id); err != nil {
			return err
		}

		answers, err := uc.answers.ListByAuthor(ctx, id)
		if err != nil {
			return err
		}
		if len(answers) > 0 {
			answerIDs := make([]string, 0, len(answers))
			for _, a := range answers {
				answerIDs = append(answerIDs, a.ID)
			}
			affected, err := uc.questions.ListByAcceptedAnswerIDs(ctx, answerIDs)
			if err != nil {
				return err
			}
			for i := range affected {
				question := affected[i]
				question.AcceptedAnswerID = nil
				question.Status = domain.StatusReceived
				if err := uc.questions.Update(ctx, &question); err != nil {
					return err
				}
			}
		}

		if err := uc.answers.DeleteByAuthor(ctx, id); err != nil {
			return err
		}
		if err := uc.questions.DeleteByAuthor(ctx, id); err != nil {
			return err
		}
		return uc.users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.logger.Info("user deleted with cascade", zap.String("user_id", id))
	return nil
}

// Authenticate performs the placeholder credential check: a plain equality
// comparison against the stored password. Banned accounts are refused even
// with valid credentials.
func (uc *UseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if user.Password != password {
		return nil, domain.ErrUnauthorized
	}
	if user.IsBanned {
		return nil, domain.ErrUserBannedLogin
	}
	return user, nil
}

// BanUser flags the target as banned. Only moderators may do this.
func (uc *UseCase) BanUser(ctx context.Context, actingUserID, targetID string) (*domain.User, error) {
	return uc.setBanned(ctx, actingUserID, targetID, true)
}

// UnbanUser clears the banned flag. Only moderators may do this.
func (uc *UseCase) UnbanUser(ctx context.Context, actingUserID, targetID string) (*domain.User, error) {
	return uc.setBanned(ctx, actingUserID, targetID, false)
}

func (uc *UseCase) setBanned(ctx context.Context, actingUserID, targetID string, banned bool) (*domain.User, error) {
	acting, err := uc.users.GetByID(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !acting.IsModerator() {
		return nil, domain.ErrNotModerator
	}

	if err := uc.users.SetBanned(ctx, targetID, banned); err != nil {
		return nil, err
	}
	uc.logger.Info("user ban flag changed",
		zap.String("target_id", targetID),
		zap.Bool("banned", banned),
		zap.String("moderator_id", actingUserID),
	)
	return uc.users.GetByID(ctx, targetID)
}
