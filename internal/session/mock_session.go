package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"image-identifier/internal/llm"
	"image-identifier/internal/pipeline"
)

// MockStore is a mock implementation of the Store interface for testing
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, image llm.InlineData) (Session, error) {
	args := m.Called(ctx, image)
	return args.Get(0).(Session), args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, id uuid.UUID) (Session, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Session), args.Error(1)
}

func (m *MockStore) SaveResult(ctx context.Context, id uuid.UUID, result pipeline.Result) error {
	args := m.Called(ctx, id, result)
	return args.Error(0)
}

func (m *MockStore) Acquire(ctx context.Context, id uuid.UUID, ttl time.Duration) error {
	args := m.Called(ctx, id, ttl)
	return args.Error(0)
}

func (m *MockStore) Release(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
