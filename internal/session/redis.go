package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"image-identifier/internal/llm"
	"image-identifier/internal/pipeline"
)

const (
	// Key prefix for session payloads
	sessionKeyPrefix = "session:"

	// Key suffix for the loading flag
	loadingKeySuffix = ":loading"
)

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(addr, password string, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
	}, nil
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func loadingKey(id uuid.UUID) string {
	return sessionKey(id) + loadingKeySuffix
}

func (s *RedisStore) Create(ctx context.Context, image llm.InlineData) (Session, error) {
	sess := Session{
		ID:        uuid.New(),
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.put(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// SaveResult rewrites the session with the new result and refreshes its TTL.
func (s *RedisStore) SaveResult(ctx context.Context, id uuid.UUID, result pipeline.Result) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.Result = &result
	return s.put(ctx, sess)
}

func (s *RedisStore) Acquire(ctx context.Context, id uuid.UUID, ttl time.Duration) error {
	ok, err := s.client.SetNX(ctx, loadingKey(id), 1, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrBusy
	}
	return nil
}

func (s *RedisStore) Release(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, loadingKey(id)).Err()
}

// Close closes the redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) put(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err()
}
