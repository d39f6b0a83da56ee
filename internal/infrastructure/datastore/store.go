// Package datastore is the gateway to the hierarchical document store that
// holds every marketplace record. Paths alternate collection and document
// segments ("users/0912345/diagnoses/abc") and are resolved below a fixed
// root document.
package datastore

import (
	"context"
	"errors"
	"path"
	"strings"
)

var (
	ErrNotFound      = errors.New("datastore: document not found")
	ErrAlreadyExists = errors.New("datastore: document already exists")
	ErrInvalidPath   = errors.New("datastore: invalid path")
)

type Op string

const (
	OpEqual         Op = "=="
	OpArrayContains Op = "array-contains"
)

type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

type Query struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

func (q Query) Where(field string, op Op, value interface{}) Query {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, Filter{Field: field, Op: op, Value: value})
	return q
}

func (q Query) Order(field string, descending bool) Query {
	q.OrderBy = field
	q.Descending = descending
	return q
}

// Document is a snapshot of one stored record.
type Document struct {
	ID     string
	Path   string
	decode func(v interface{}) error
}

func (d *Document) DataTo(v interface{}) error {
	return d.decode(v)
}

// Increment is an update value that adds n to a numeric field.
type Increment struct {
	By int64
}

// MutateFunc runs once the current document has been decoded into the
// caller's value and returns the partial update to apply. A nil map applies
// nothing. It may run more than once if the backend retries.
type MutateFunc func() (map[string]interface{}, error)

type Store interface {
	Get(ctx context.Context, path string, v interface{}) error
	// Create fails with ErrAlreadyExists when the document is present.
	Create(ctx context.Context, path string, v interface{}) error
	Set(ctx context.Context, path string, v interface{}) error
	// Update applies a partial write; keys may be dotted field paths.
	Update(ctx context.Context, path string, fields map[string]interface{}) error
	// Mutate is an atomic read-modify-write of one document.
	Mutate(ctx context.Context, path string, v interface{}, fn MutateFunc) error
	// Delete is idempotent.
	Delete(ctx context.Context, path string) error

	List(ctx context.Context, collection string, q Query) ([]*Document, error)
	// ListGroup lists every collection with the given name, wherever it is nested.
	ListGroup(ctx context.Context, group string, q Query) ([]*Document, error)

	// Watch calls fn with the full result set now and after every change,
	// until ctx is done. It returns nil when ctx ends the subscription.
	Watch(ctx context.Context, collection string, q Query, fn func([]*Document)) error
	WatchGroup(ctx context.Context, group string, q Query, fn func([]*Document)) error
	// WatchDoc calls fn with the document, or nil while it does not exist.
	WatchDoc(ctx context.Context, path string, fn func(*Document)) error

	Close() error
}

func Join(parts ...string) string {
	return path.Join(parts...)
}

// parent returns the collection path a document path lives in.
func parent(docPath string) string {
	i := strings.LastIndex(docPath, "/")
	if i < 0 {
		return ""
	}
	return docPath[:i]
}

func lastSegment(p string) string {
	i := strings.LastIndex(p, "/")
	return p[i+1:]
}

func validDocPath(p string) bool {
	if p == "" || strings.HasPrefix(p, "/") || strings.HasSuffix(p, "/") {
		return false
	}
	return len(strings.Split(p, "/"))%2 == 0
}

func validCollectionPath(p string) bool {
	if p == "" || strings.HasPrefix(p, "/") || strings.HasSuffix(p, "/") {
		return false
	}
	return len(strings.Split(p, "/"))%2 == 1
}

// Decode lists documents into typed values, skipping nothing.
func Decode[T any](docs []*Document) ([]*T, error) {
	out := make([]*T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := doc.DataTo(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, nil
}
