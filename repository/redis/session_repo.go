package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

// Sessions live under forum:session:<id>. A companion set per user,
// forum:session:user:<user-id>, indexes every live session id so a
// moderator ban can revoke all of them at once.
const (
	sessionKeyPrefix = "forum:session:"
	userIndexPrefix  = "forum:session:user:"
)

type sessionRepository struct {
	client *redislib.Client
	ttl    time.Duration
}

// NewSessionRepository creates a Redis-backed session repository.
func NewSessionRepository(client *redislib.Client, ttl time.Duration) repository.SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &sessionRepository{client: client, ttl: ttl}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	if session.Role == "" {
		// rows written before roles were stored default to plain users
		session.Role = domain.RoleUser
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" || session.UserID == "" {
		return domain.ErrInvalidPayload
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.ExpiresAt.Before(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(r.ttl)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = r.ttl
	}

	// The index must outlive its longest-lived member or a ban could miss
	// sessions, so its expiry is refreshed to the same ttl on every save.
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl)
	pipe.SAdd(ctx, userIndexPrefix+session.UserID, session.ID)
	pipe.Expire(ctx, userIndexPrefix+session.UserID, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	session, err := r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+id)
	pipe.SRem(ctx, userIndexPrefix+session.UserID, id)
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteByUser drops every session indexed for the user. Ids whose session
// key already expired are swept out of the index along the way.
func (r *sessionRepository) DeleteByUser(ctx context.Context, userID string) error {
	ids, err := r.client.SMembers(ctx, userIndexPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil
		}
		return err
	}

	pipe := r.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, sessionKeyPrefix+id)
	}
	pipe.Del(ctx, userIndexPrefix+userID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *sessionRepository) Extend(ctx context.Context, id string, ttlSeconds int) error {
	duration := time.Duration(ttlSeconds) * time.Second
	if duration <= 0 {
		duration = r.ttl
	}
	return r.client.Expire(ctx, sessionKeyPrefix+id, duration).Err()
}
