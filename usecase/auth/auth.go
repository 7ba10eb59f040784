// Package auth issues sessions and JWT access tokens on login. Credential
// verification is delegated to the user use case, which keeps its placeholder
// equality comparison.
package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

// Authenticator verifies credentials and resolves users.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

type UseCase struct {
	users     Authenticator
	sessions  repository.SessionRepository
	jwtSecret string
	jwtIssuer string
	logger    *zap.Logger
}

// LoginResult bundles the stored session with the signed bearer token.
type LoginResult struct {
	Session *domain.Session `json:"session"`
	Token   string          `json:"token"`
	User    *domain.User    `json:"user"`
}

func New(users Authenticator, sessions repository.SessionRepository, jwtSecret, jwtIssuer string, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:     users,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		jwtIssuer: jwtIssuer,
		logger:    logger,
	}
}

// Login checks credentials, stores a session and signs a token carrying the
// user id so the middleware can identify later requests.
func (uc *UseCase) Login(ctx context.Context, email, password string, ttl time.Duration) (*LoginResult, error) {
	user, err := uc.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := uc.signToken(user, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user logged in", zap.String("user_id", user.ID))
	return &LoginResult{Session: session, Token: token, User: user}, nil
}

func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(ttl)
	return session, nil
}

func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// RevokeUserSessions drops every live session belonging to the user, so a
// freshly banned account cannot keep acting on an old login.
func (uc *UseCase) RevokeUserSessions(ctx context.Context, userID string) error {
	if err := uc.sessions.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	uc.logger.Info("user sessions revoked", zap.String("user_id", userID))
	return nil
}

func (uc *UseCase) signToken(user *domain.User, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"iss":     uc.jwtIssuer,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.jwtSecret))
}
