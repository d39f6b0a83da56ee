package datastore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type item struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Count     int               `json:"count"`
	Tags      []string          `json:"tags,omitempty"`
	Notes     map[string]string `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Create(ctx, "items/a", item{ID: "a", Name: "first"}))
	assert.ErrorIs(t, s.Create(ctx, "items/a", item{ID: "a"}), ErrAlreadyExists)

	var got item
	require.NoError(t, s.Get(ctx, "items/a", &got))
	assert.Equal(t, "first", got.Name)

	require.NoError(t, s.Update(ctx, "items/a", map[string]interface{}{
		"name":       "renamed",
		"count":      Increment{By: 2},
		"notes.gift": "wrapped",
	}))
	require.NoError(t, s.Get(ctx, "items/a", &got))
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, "wrapped", got.Notes["gift"])

	assert.ErrorIs(t, s.Update(ctx, "items/missing", map[string]interface{}{"name": "x"}), ErrNotFound)

	require.NoError(t, s.Delete(ctx, "items/a"))
	require.NoError(t, s.Delete(ctx, "items/a"))
	assert.ErrorIs(t, s.Get(ctx, "items/a", &got), ErrNotFound)
}

func TestMemoryStoreRejectsBadPaths(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	assert.ErrorIs(t, s.Set(ctx, "items", item{}), ErrInvalidPath)
	_, err := s.List(ctx, "items/a", Query{})
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestMemoryStoreMutate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Create(ctx, "items/a", item{ID: "a", Count: 1}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var current item
			err := s.Mutate(ctx, "items/a", &current, func() (map[string]interface{}, error) {
				return map[string]interface{}{"count": current.Count + 1}, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var got item
	require.NoError(t, s.Get(ctx, "items/a", &got))
	assert.Equal(t, 21, got.Count)

	var missing item
	err := s.Mutate(ctx, "items/b", &missing, func() (map[string]interface{}, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreQuery(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Set(ctx, "items/a", item{ID: "a", Name: "x", Tags: []string{"red"}, CreatedAt: base}))
	require.NoError(t, s.Set(ctx, "items/b", item{ID: "b", Name: "y", Tags: []string{"red", "blue"}, CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, s.Set(ctx, "items/c", item{ID: "c", Name: "x", CreatedAt: base.Add(2 * time.Hour)}))
	require.NoError(t, s.Set(ctx, "other/d", item{ID: "d", Name: "x"}))

	docs, err := s.List(ctx, "items", Query{}.Where("name", OpEqual, "x").Order("createdAt", true))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "c", docs[0].ID)
	assert.Equal(t, "a", docs[1].ID)

	docs, err = s.List(ctx, "items", Query{}.Where("tags", OpArrayContains, "red").Order("createdAt", false))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)

	q := Query{}.Order("createdAt", true)
	q.Limit = 1
	docs, err = s.List(ctx, "items", q)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "c", docs[0].ID)
}

func TestMemoryStoreListGroup(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "users/1/diagnoses/a", item{ID: "a"}))
	require.NoError(t, s.Set(ctx, "users/2/diagnoses/b", item{ID: "b"}))
	require.NoError(t, s.Set(ctx, "users/2/activity/c", item{ID: "c"}))

	docs, err := s.ListGroup(ctx, "diagnoses", Query{})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "users/1/diagnoses/a", docs[0].Path)
	assert.Equal(t, "users/2/diagnoses/b", docs[1].Path)
}

func TestMemoryStoreWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewMemoryStore()

	updates := make(chan int, 16)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, "items", Query{}, func(docs []*Document) {
			updates <- len(docs)
		})
	}()

	assert.Equal(t, 0, <-updates)
	require.NoError(t, s.Set(context.Background(), "items/a", item{ID: "a"}))
	assert.Eventually(t, func() bool {
		for {
			select {
			case n := <-updates:
				if n == 1 {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestMemoryStoreWatchDoc(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewMemoryStore()

	seen := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- s.WatchDoc(ctx, "items/a", func(doc *Document) {
			if doc == nil {
				seen <- ""
				return
			}
			var v item
			_ = doc.DataTo(&v)
			seen <- v.Name
		})
	}()

	assert.Equal(t, "", <-seen)
	require.NoError(t, s.Set(context.Background(), "items/a", item{ID: "a", Name: "live"}))
	assert.Equal(t, "live", <-seen)

	cancel()
	assert.NoError(t, <-done)
}
