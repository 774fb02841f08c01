package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

func TestMemoryStoreRecent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, dto.HistoryRecord{RequestID: id, GeneratedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	recs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "c", recs[0].RequestID)
	assert.Equal(t, "b", recs[1].RequestID)
}

func TestNoopStore(t *testing.T) {
	var store HistoryStore = NoopStore{}

	require.NoError(t, store.Save(context.Background(), dto.HistoryRecord{RequestID: "x"}))
	recs, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultHistoryLimit, ClampLimit(0))
	assert.Equal(t, 5, ClampLimit(5))
	assert.Equal(t, maxHistoryLimit, ClampLimit(10000))
}
