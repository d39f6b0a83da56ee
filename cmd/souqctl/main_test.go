package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souqmanaqil/internal/bootstrap"
	"souqmanaqil/internal/infrastructure/datastore"
	"souqmanaqil/internal/infrastructure/session"
)

// run executes one souqctl invocation against store.
func run(t *testing.T, store datastore.Store, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd(func(ctx context.Context) (*bootstrap.Resources, error) {
		return &bootstrap.Resources{Store: store, Sessions: session.NewMemoryStore()}, nil
	}, &out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedCreatesAdminAndListings(t *testing.T) {
	store := datastore.NewMemoryStore()

	out, err := run(t, store, "seed", "--admin-password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "admin 0900000000 ready")
	assert.Equal(t, len(sampleListings), strings.Count(out, "listing "))

	out, err = run(t, store, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0900000000")
	assert.Contains(t, out, "0911111111")

	out, err = run(t, store, "users", "list", "--role", "trader")
	require.NoError(t, err)
	assert.NotContains(t, out, "0900000000")
	assert.Contains(t, out, "0911111111")
}

func TestSeedIsRepeatable(t *testing.T) {
	store := datastore.NewMemoryStore()

	_, err := run(t, store, "seed", "--admin-password", "secret", "--listings=false")
	require.NoError(t, err)
	out, err := run(t, store, "seed", "--admin-password", "secret", "--listings=false")
	require.NoError(t, err)
	assert.Contains(t, out, "admin 0900000000 ready")
}

func TestSeedRequiresPassword(t *testing.T) {
	_, err := run(t, datastore.NewMemoryStore(), "seed")
	assert.Error(t, err)
}

func TestUsersSetRole(t *testing.T) {
	store := datastore.NewMemoryStore()
	_, err := run(t, store, "seed", "--admin-password", "secret")
	require.NoError(t, err)

	out, err := run(t, store, "users", "set-role", "0911111111", "worker")
	require.NoError(t, err)
	assert.Contains(t, out, "0911111111 is now worker")

	out, err = run(t, store, "users", "list", "--role", "worker")
	require.NoError(t, err)
	assert.Contains(t, out, "0911111111")

	_, err = run(t, store, "users", "set-role", "0911111111", "emperor")
	assert.Error(t, err)

	_, err = run(t, store, "users", "list", "--role", "emperor")
	assert.Error(t, err)
}
