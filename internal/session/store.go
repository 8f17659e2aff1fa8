// internal/session/store.go

// Package session persists chat transcripts and the CSV analysis handle
// between CLI invocations. Redis is optional: when it is not configured the
// in-memory store is used and history lives only for one process.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"marketscout/internal/common/database"
	"marketscout/internal/models"
)

var ErrNotFound = errors.New("session not found")

// Store is the transcript persistence interface.
type Store interface {
	Save(ctx context.Context, sess *models.ChatSession) error
	Load(ctx context.Context, id string) (*models.ChatSession, error)
	Delete(ctx context.Context, id string) error
}

const keyPrefix = "marketscout:session:"

// RedisStore keeps sessions in Redis with a TTL.
type RedisStore struct {
	rdb *database.RedisClient
	ttl time.Duration
}

func NewRedisStore(rdb *database.RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, sess *models.ChatSession) error {
	sess.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.rdb.Set(ctx, keyPrefix+sess.ID, data, s.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*models.ChatSession, error) {
	data, err := s.rdb.Get(ctx, keyPrefix+id)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess models.ChatSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, keyPrefix+id)
}

// MemoryStore is the fallback when Redis is disabled.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.ChatSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.ChatSession)}
}

func (s *MemoryStore) Save(_ context.Context, sess *models.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.UpdatedAt = time.Now().UTC()
	copied := *sess
	copied.Messages = append([]models.Message(nil), sess.Messages...)
	s.sessions[sess.ID] = &copied
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (*models.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *sess
	copied.Messages = append([]models.Message(nil), sess.Messages...)
	return &copied, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
