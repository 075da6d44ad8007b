package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"image-identifier/internal/llm"
	"image-identifier/internal/pipeline"
)

// MemoryStore keeps sessions in process memory. Used when Redis is not
// configured; sessions are lost on restart and are not shared between replicas.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[uuid.UUID]*memoryEntry
}

type memoryEntry struct {
	session      Session
	expiresAt    time.Time
	loadingUntil time.Time
}

// NewMemoryStore creates an in-memory store whose sessions expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*memoryEntry),
	}
}

func (s *MemoryStore) Create(_ context.Context, image llm.InlineData) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	sess := Session{
		ID:        uuid.New(),
		Image:     image,
		CreatedAt: now.UTC(),
	}
	s.sessions[sess.ID] = &memoryEntry{session: sess, expiresAt: now.Add(s.ttl)}
	return sess, nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}
	return entry.session, nil
}

func (s *MemoryStore) SaveResult(_ context.Context, id uuid.UUID, result pipeline.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.lookup(id)
	if err != nil {
		return err
	}
	entry.session.Result = &result
	entry.expiresAt = s.now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) Acquire(_ context.Context, id uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.lookup(id)
	if err != nil {
		return err
	}
	now := s.now()
	if now.Before(entry.loadingUntil) {
		return ErrBusy
	}
	entry.loadingUntil = now.Add(ttl)
	return nil
}

func (s *MemoryStore) Release(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.sessions[id]; ok {
		entry.loadingUntil = time.Time{}
	}
	return nil
}

// Close drops all sessions.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[uuid.UUID]*memoryEntry)
	return nil
}

// lookup must be called with mu held.
func (s *MemoryStore) lookup(id uuid.UUID) (*memoryEntry, error) {
	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	return entry, nil
}

func (s *MemoryStore) sweep(now time.Time) {
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
