package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/supplyline-web/server/internal/core/error"
	logx "github.com/supplyline-web/server/pkg/logger"
)

// Commander is the subset of redis commands the store needs. *redis.Client
// satisfies it; tests provide a small fake.
type Commander interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Store keeps sessions in Redis so they survive a gateway restart, keyed by
// the opaque session id carried in the client's cookie.
type Store struct {
	rdb Commander
	ttl time.Duration
}

func NewStore(rdb Commander, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) sessionKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}

// Put writes the session under sid, overwriting any previous value.
func (s *Store) Put(ctx context.Context, sid string, sess Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		logx.Error().Err(err).Str("userID", sess.UserID).Msg("failed to marshal session")
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.rdb.Set(ctx, s.sessionKey(sid), b, s.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("sid", sid).Msg("failed to write session to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

// Get loads the session for sid. An absent session is represented as
// (nil, nil), not an error; consuming views treat it as anonymous.
func (s *Store) Get(ctx context.Context, sid string) (*Session, error) {
	key := s.sessionKey(sid)

	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logx.Error().Err(err).Str("sid", sid).Msg("failed to load session from redis")
		return nil, errx.WrapRedis(err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		logx.Error().Err(err).Str("sid", sid).Msg("failed to unmarshal session")
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	// extend TTL on touch
	if s.ttl > 0 {
		if ok, err := s.rdb.Expire(ctx, key, s.ttl).Result(); err != nil {
			logx.Warn().Err(err).Str("sid", sid).Msg("failed to refresh session TTL")
		} else if !ok {
			logx.Warn().Str("sid", sid).Dur("ttl", s.ttl).Msg("session key vanished before TTL refresh")
		}
	}

	return &sess, nil
}

// Delete removes the session for sid. Deleting a session that does not
// exist is not an error.
func (s *Store) Delete(ctx context.Context, sid string) error {
	if err := s.rdb.Del(ctx, s.sessionKey(sid)).Err(); err != nil {
		logx.Error().Err(err).Str("sid", sid).Msg("failed to delete session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}
