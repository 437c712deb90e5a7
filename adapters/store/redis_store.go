package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/layer-3/ordauth/core"
	"github.com/layer-3/ordauth/ports"
	"github.com/redis/go-redis/v9"
)

const maxTxRetries = 8

// sessionRecord is what lands in Redis. The token itself is never stored,
// only its hash in the key.
type sessionRecord struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

var _ ports.Store = (*RedisStore)(nil)

// RedisStore is a Redis implementation of the Store interface
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "ordauth:",
	}
}

func (s *RedisStore) sessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return s.prefix + "session:" + hex.EncodeToString(sum[:])
}

func (s *RedisStore) attemptsKey(address string) string {
	return s.prefix + "attempts:" + address
}

func (s *RedisStore) nonceKey(nonce string) string {
	return s.prefix + "nonce:" + nonce
}

// Ping checks the connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// SaveSession stores a session; the key outlives the session by
// ExpiredSessionRetention so that lookups can report expiry
func (s *RedisStore) SaveSession(ctx context.Context, session core.Session) error {
	payload, err := json.Marshal(sessionRecord{
		ID:        session.ID,
		Address:   session.Address,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := session.ExpiresAt.Sub(session.CreatedAt) + ExpiredSessionRetention
	if err := s.client.Set(ctx, s.sessionKey(session.Token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession loads a session by token
func (s *RedisStore) GetSession(ctx context.Context, token string) (core.Session, error) {
	data, err := s.client.Get(ctx, s.sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return core.Session{}, core.ErrSessionNotFound
	}
	if err != nil {
		return core.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return core.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return core.Session{
		ID:        record.ID,
		Token:     token,
		Address:   record.Address,
		CreatedAt: record.CreatedAt,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

// DeleteSession removes a session
func (s *RedisStore) DeleteSession(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// UpdateAttempts runs fn inside an optimistic WATCH/MULTI transaction,
// retrying when another instance touched the same counter
func (s *RedisStore) UpdateAttempts(ctx context.Context, address string, ttl time.Duration, fn func(rec *core.AttemptRecord)) (core.AttemptRecord, error) {
	key := s.attemptsKey(address)

	var result core.AttemptRecord
	txf := func(tx *redis.Tx) error {
		var rec core.AttemptRecord

		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			if err := json.Unmarshal(data, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal attempts: %w", err)
			}
		}

		fn(&rec)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if rec.Count == 0 {
				pipe.Del(ctx, key)
				return nil
			}
			payload, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("failed to marshal attempts: %w", err)
			}
			pipe.Set(ctx, key, payload, ttl)
			return nil
		})
		if err == nil {
			result = rec
		}
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return core.AttemptRecord{}, fmt.Errorf("failed to update attempts: %w", err)
	}

	return core.AttemptRecord{}, fmt.Errorf("failed to update attempts: %w", redis.TxFailedErr)
}

// ResetAttempts forgets all attempts of address
func (s *RedisStore) ResetAttempts(ctx context.Context, address string) error {
	if err := s.client.Del(ctx, s.attemptsKey(address)).Err(); err != nil {
		return fmt.Errorf("failed to reset attempts: %w", err)
	}
	return nil
}

// ConsumeNonce marks a challenge nonce as used with SET NX
func (s *RedisStore) ConsumeNonce(ctx context.Context, nonce string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.nonceKey(nonce), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to consume nonce: %w", err)
	}
	return ok, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
