package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/supplyline-web/server/internal/core/error"
	"github.com/supplyline-web/server/internal/upstream"
	logx "github.com/supplyline-web/server/pkg/logger"
)

const historyKey = "chat:messages"

// Commander is the subset of redis commands the history mirror needs.
type Commander interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	LLen(ctx context.Context, key string) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisHistory mirrors recent chat traffic into a redis list so a joining
// client can still be seeded when the marketplace API's history endpoint is
// down. Entries age out with the TTL; this is a buffer, not an archive.
type RedisHistory struct {
	rdb Commander
	ttl time.Duration
}

func NewRedisHistory(rdb Commander, ttl time.Duration) *RedisHistory {
	return &RedisHistory{rdb: rdb, ttl: ttl}
}

// Append records one message and refreshes the buffer TTL.
func (h *RedisHistory) Append(ctx context.Context, msg Message) error {
	b, err := json.Marshal(msg)
	if err != nil {
		logx.Error().Err(err).Str("sender", msg.Sender).Msg("failed to marshal chat message")
		return fmt.Errorf("marshal chat message: %w", err)
	}

	if err := h.rdb.RPush(ctx, historyKey, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", historyKey).Msg("failed to push chat message to redis")
		return errx.WrapRedis(err)
	}
	if h.ttl > 0 {
		if ok, err := h.rdb.Expire(ctx, historyKey, h.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", historyKey).Msg("failed to set expire on chat history")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", historyKey).Dur("ttl", h.ttl).Msg("failed to set TTL on chat history key")
		}
	}
	return nil
}

// Recent returns the buffered messages, oldest first.
func (h *RedisHistory) Recent(ctx context.Context) ([]Message, error) {
	rows, err := h.rdb.LRange(ctx, historyKey, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Message{}, nil
		}
		logx.Error().Err(err).Str("key", historyKey).Msg("failed to load chat history from redis")
		return nil, errx.WrapRedis(err)
	}

	msgs := make([]Message, 0, len(rows))
	for i, row := range rows {
		var m Message
		if err := json.Unmarshal([]byte(row), &m); err != nil {
			logx.Error().Err(err).Int("index", i).Msg("failed to unmarshal chat message")
			return nil, fmt.Errorf("unmarshal chat message at index %d: %w", i, err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// Count returns the number of buffered messages.
func (h *RedisHistory) Count(ctx context.Context) (int, error) {
	n, err := h.rdb.LLen(ctx, historyKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", historyKey).Msg("failed to count chat history")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

// Clear drops the buffer.
func (h *RedisHistory) Clear(ctx context.Context) error {
	if err := h.rdb.Del(ctx, historyKey).Err(); err != nil {
		logx.Error().Err(err).Str("key", historyKey).Msg("failed to clear chat history")
		return errx.WrapRedis(err)
	}
	return nil
}

// HistoryService serves the chat view's initial bulk fetch: the
// marketplace API first, the redis buffer when that fails.
type HistoryService struct {
	api    *upstream.Client
	mirror *RedisHistory
}

func NewHistoryService(api *upstream.Client, mirror *RedisHistory) *HistoryService {
	return &HistoryService{api: api, mirror: mirror}
}

// History returns the message backlog for a client joining the chat view.
func (s *HistoryService) History(ctx context.Context) ([]Message, error) {
	var msgs []Message
	if err := s.api.Get(ctx, "/messages", nil, &msgs); err != nil {
		if s.mirror == nil {
			return nil, err
		}
		logx.Warn().Err(err).Msg("message history fetch failed, serving redis mirror")
		return s.mirror.Recent(ctx)
	}
	return msgs, nil
}
