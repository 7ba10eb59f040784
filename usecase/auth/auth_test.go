package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository/memory"
	userUC "github.com/forumhub/backend/usecase/user"
)

type sessionStore struct {
	sessions map[string]*domain.Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *sessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *sessionStore) Save(ctx context.Context, session *domain.Session) error {
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *sessionStore) Delete(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func (s *sessionStore) DeleteByUser(ctx context.Context, userID string) error {
	for id, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *sessionStore) Extend(ctx context.Context, id string, ttlSeconds int) error {
	session, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	return nil
}

const testSecret = "test-secret"

func newFixture(t *testing.T) (*UseCase, *sessionStore) {
	t.Helper()
	store := memory.NewStore()
	users := userUC.New(
		memory.NewTransactor(store),
		memory.NewUserRepository(store),
		memory.NewQuestionRepository(store),
		memory.NewAnswerRepository(store),
		memory.NewQuestionVoteRepository(store),
		memory.NewAnswerVoteRepository(store),
		nil,
	)
	if _, err := users.Register(context.Background(), &domain.User{
		Username: "alice",
		Email:    "alice@forumhub.dev",
		Password: "secret",
		Role:     domain.RoleModerator,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	sessions := newSessionStore()
	return New(users, sessions, testSecret, "forumhub", nil), sessions
}

func TestLogin(t *testing.T) {
	uc, sessions := newFixture(t)

	result, err := uc.Login(context.Background(), "alice@forumhub.dev", "secret", time.Hour)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token")
	}
	if result.Session == nil || result.Session.UserID != result.User.ID {
		t.Fatalf("session = %+v", result.Session)
	}
	if _, ok := sessions.sessions[result.Session.ID]; !ok {
		t.Error("session was not stored")
	}

	token, err := jwt.Parse(result.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token parse: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["user_id"] != result.User.ID {
		t.Errorf("user_id claim = %v", claims["user_id"])
	}
	if claims["role"] != string(domain.RoleModerator) {
		t.Errorf("role claim = %v", claims["role"])
	}
	if claims["iss"] != "forumhub" {
		t.Errorf("iss claim = %v", claims["iss"])
	}
}

func TestLoginBadCredentials(t *testing.T) {
	uc, _ := newFixture(t)

	if _, err := uc.Login(context.Background(), "alice@forumhub.dev", "wrong", time.Hour); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
	if _, err := uc.Login(context.Background(), "ghost@forumhub.dev", "secret", time.Hour); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("unknown email err = %v, want ErrUnauthorized", err)
	}
}

func TestLoginBannedUser(t *testing.T) {
	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	users := userUC.New(
		memory.NewTransactor(store),
		userRepo,
		memory.NewQuestionRepository(store),
		memory.NewAnswerRepository(store),
		memory.NewQuestionVoteRepository(store),
		memory.NewAnswerVoteRepository(store),
		nil,
	)
	banned, err := users.Register(context.Background(), &domain.User{
		Username: "troll",
		Email:    "troll@forumhub.dev",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := userRepo.SetBanned(context.Background(), banned.ID, true); err != nil {
		t.Fatalf("SetBanned: %v", err)
	}

	uc := New(users, newSessionStore(), testSecret, "forumhub", nil)
	if _, err := uc.Login(context.Background(), "troll@forumhub.dev", "secret", time.Hour); !errors.Is(err, domain.ErrUserBannedLogin) {
		t.Errorf("err = %v, want ErrUserBannedLogin", err)
	}
}

func TestRevokeUserSessions(t *testing.T) {
	uc, sessions := newFixture(t)

	first, err := uc.Login(context.Background(), "alice@forumhub.dev", "secret", time.Hour)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	second, err := uc.Login(context.Background(), "alice@forumhub.dev", "secret", time.Hour)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	sessions.sessions["other"] = &domain.Session{
		ID:        "other",
		UserID:    "someone-else",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	if err := uc.RevokeUserSessions(context.Background(), first.User.ID); err != nil {
		t.Fatalf("RevokeUserSessions: %v", err)
	}
	for _, id := range []string{first.Session.ID, second.Session.ID} {
		if _, ok := sessions.sessions[id]; ok {
			t.Errorf("session %s survived revocation", id)
		}
	}
	if _, ok := sessions.sessions["other"]; !ok {
		t.Error("unrelated user's session must be kept")
	}
}

func TestGetSessionExpiredIsDropped(t *testing.T) {
	uc, sessions := newFixture(t)

	sessions.sessions["stale"] = &domain.Session{
		ID:        "stale",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	if _, err := uc.GetSession(context.Background(), "stale"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
	if _, ok := sessions.sessions["stale"]; ok {
		t.Error("expired session must be deleted on read")
	}
}

func TestRefreshAndRevoke(t *testing.T) {
	uc, sessions := newFixture(t)

	result, err := uc.Login(context.Background(), "alice@forumhub.dev", "secret", time.Minute)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	refreshed, err := uc.RefreshSession(context.Background(), result.Session.ID, time.Hour)
	if err != nil {
		t.Fatalf("RefreshSession: %v", err)
	}
	if !refreshed.ExpiresAt.After(result.Session.ExpiresAt) {
		t.Error("refresh must push the expiry forward")
	}

	if err := uc.RevokeSession(context.Background(), result.Session.ID); err != nil {
		t.Fatalf("RevokeSession: %v", err)
	}
	if _, ok := sessions.sessions[result.Session.ID]; ok {
		t.Error("revoked session still stored")
	}
}
