package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"qfs-ledger-gateway/internal/features/session/models"
)

// RedisStore is the durable session tier. Sessions survive gateway restarts
// and are shared across instances; they carry no TTL by default because the
// upstream backend is the authority on token expiry (the gateway only learns
// about it from a 401).
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func tokenKey(sid string) string { return fmt.Sprintf("session:token:%s", sid) }
func userKey(sid string) string  { return fmt.Sprintf("session:user:%s", sid) }

func (s *RedisStore) Set(ctx context.Context, sid, token string, profile *models.Profile) error {
	raw := []byte("null")
	if profile != nil {
		b, err := json.Marshal(profile)
		if err != nil {
			return fmt.Errorf("marshal profile: %w", err)
		}
		raw = b
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, tokenKey(sid), token, s.ttl)
	pipe.Set(ctx, userKey(sid), raw, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Token(ctx context.Context, sid string) (string, bool, error) {
	token, err := s.client.Get(ctx, tokenKey(sid)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (s *RedisStore) Profile(ctx context.Context, sid string) (*models.Profile, bool, error) {
	raw, err := s.client.Get(ctx, userKey(sid)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var profile *models.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		// The browser-era code crashed on a corrupted stored profile; here a
		// bad record degrades to "no profile".
		return nil, false, nil
	}
	if profile == nil {
		return nil, false, nil
	}
	return profile, true, nil
}

func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	return s.client.Del(ctx, tokenKey(sid), userKey(sid)).Err()
}
