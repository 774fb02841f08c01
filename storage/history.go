package storage

import (
	"context"
	"sync"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// HistoryStore keeps a record of every generated diary.
type HistoryStore interface {
	Save(ctx context.Context, rec dto.HistoryRecord) error
	Recent(ctx context.Context, limit int) ([]dto.HistoryRecord, error)
	Close(ctx context.Context) error
}

// ClampLimit maps a requested page size onto [1, maxHistoryLimit].
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultHistoryLimit
	case limit > maxHistoryLimit:
		return maxHistoryLimit
	default:
		return limit
	}
}

// NoopStore is used when no database is configured.
type NoopStore struct{}

func (NoopStore) Save(context.Context, dto.HistoryRecord) error { return nil }

func (NoopStore) Recent(context.Context, int) ([]dto.HistoryRecord, error) {
	return []dto.HistoryRecord{}, nil
}

func (NoopStore) Close(context.Context) error { return nil }

// MemoryStore keeps history in process, newest last. Used by the CLI and tests.
type MemoryStore struct {
	mu      sync.Mutex
	records []dto.HistoryRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, rec dto.HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

// Recent returns up to limit records, newest first.
func (m *MemoryStore) Recent(_ context.Context, limit int) ([]dto.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	limit = ClampLimit(limit)
	out := make([]dto.HistoryRecord, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func (m *MemoryStore) Close(context.Context) error { return nil }
