package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "abc", "0912345", 0))
	id, ok, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "0912345", id)

	require.NoError(t, s.Clear(ctx, "abc"))
	_, ok, _ = s.Load(ctx, "abc")
	assert.False(t, ok)

	// Clearing twice is fine.
	assert.NoError(t, s.Clear(ctx, "abc"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "abc", "0912345", time.Hour))

	now = now.Add(59 * time.Minute)
	_, ok, _ := s.Load(ctx, "abc")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = s.Load(ctx, "abc")
	assert.False(t, ok)
}
