package datastore

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"souqmanaqil/pkg/logger"
)

type FirestoreStore struct {
	client *firestore.Client
	root   string
}

// NewFirestoreStore roots every path below root, which must be a document
// path ("markets/almanaqil") or empty.
func NewFirestoreStore(client *firestore.Client, root string) (*FirestoreStore, error) {
	root = strings.Trim(root, "/")
	if root != "" && !validDocPath(root) {
		return nil, fmt.Errorf("%w: root %q is not a document path", ErrInvalidPath, root)
	}
	return &FirestoreStore{
		client: client,
		root:   root,
	}, nil
}

func (s *FirestoreStore) full(p string) string {
	if s.root == "" {
		return p
	}
	return s.root + "/" + p
}

func (s *FirestoreStore) doc(p string) (*firestore.DocumentRef, error) {
	if !validDocPath(p) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	ref := s.client.Doc(s.full(p))
	if ref == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return ref, nil
}

func (s *FirestoreStore) collection(p string) (*firestore.CollectionRef, error) {
	if !validCollectionPath(p) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	ref := s.client.Collection(s.full(p))
	if ref == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return ref, nil
}

func (s *FirestoreStore) Get(ctx context.Context, p string, v interface{}) error {
	ref, err := s.doc(p)
	if err != nil {
		return err
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return err
	}

	return snap.DataTo(v)
}

func (s *FirestoreStore) Create(ctx context.Context, p string, v interface{}) error {
	ref, err := s.doc(p)
	if err != nil {
		return err
	}

	if _, err := ref.Create(ctx, v); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *FirestoreStore) Set(ctx context.Context, p string, v interface{}) error {
	ref, err := s.doc(p)
	if err != nil {
		return err
	}

	_, err = ref.Set(ctx, v)
	return err
}

func (s *FirestoreStore) Update(ctx context.Context, p string, fields map[string]interface{}) error {
	ref, err := s.doc(p)
	if err != nil {
		return err
	}

	if _, err := ref.Update(ctx, toUpdates(fields)); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *FirestoreStore) Mutate(ctx context.Context, p string, v interface{}, fn MutateFunc) error {
	ref, err := s.doc(p)
	if err != nil {
		return err
	}

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		if err := snap.DataTo(v); err != nil {
			return err
		}

		fields, err := fn()
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return tx.Update(ref, toUpdates(fields))
	})
}

func (s *FirestoreStore) Delete(ctx context.Context, p string) error {
	ref, err := s.doc(p)
	if err != nil {
		return err
	}

	_, err = ref.Delete(ctx)
	return err
}

func (s *FirestoreStore) List(ctx context.Context, collection string, q Query) ([]*Document, error) {
	ref, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	snaps, err := collect(buildQuery(ref.Query, q).Documents(ctx))
	if err != nil {
		return nil, err
	}
	return s.wrapAll(snaps), nil
}

func (s *FirestoreStore) ListGroup(ctx context.Context, group string, q Query) ([]*Document, error) {
	snaps, err := collect(buildQuery(s.client.CollectionGroup(group).Query, q).Documents(ctx))
	if err != nil {
		return nil, err
	}

	return s.wrapAll(s.inRoot(snaps)), nil
}

func (s *FirestoreStore) Watch(ctx context.Context, collection string, q Query, fn func([]*Document)) error {
	ref, err := s.collection(collection)
	if err != nil {
		return err
	}
	return s.watch(ctx, collection, buildQuery(ref.Query, q), false, fn)
}

func (s *FirestoreStore) WatchGroup(ctx context.Context, group string, q Query, fn func([]*Document)) error {
	return s.watch(ctx, group, buildQuery(s.client.CollectionGroup(group).Query, q), true, fn)
}

func (s *FirestoreStore) watch(ctx context.Context, name string, query firestore.Query, scoped bool, fn func([]*Document)) error {
	it := query.Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return nil
			}
			return err
		}

		snaps, err := collect(snap.Documents)
		if err != nil {
			logger.Warn("datastore: failed to read snapshot of %s: %v", name, err)
			continue
		}
		if scoped {
			snaps = s.inRoot(snaps)
		}
		fn(s.wrapAll(snaps))
	}
}

func (s *FirestoreStore) WatchDoc(ctx context.Context, p string, fn func(*Document)) error {
	ref, err := s.doc(p)
	if err != nil {
		return err
	}

	it := ref.Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return nil
			}
			return err
		}

		if !snap.Exists() {
			fn(nil)
			continue
		}
		fn(s.wrap(snap))
	}
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) relative(ref *firestore.DocumentRef) (string, bool) {
	const marker = "/documents/"
	i := strings.Index(ref.Path, marker)
	if i < 0 {
		return "", false
	}
	p := ref.Path[i+len(marker):]
	if s.root == "" {
		return p, true
	}
	if !strings.HasPrefix(p, s.root+"/") {
		return "", false
	}
	return strings.TrimPrefix(p, s.root+"/"), true
}

// inRoot drops documents outside our root; collection groups span the
// whole database.
func (s *FirestoreStore) inRoot(snaps []*firestore.DocumentSnapshot) []*firestore.DocumentSnapshot {
	out := snaps[:0:0]
	for _, snap := range snaps {
		if _, ok := s.relative(snap.Ref); ok {
			out = append(out, snap)
		}
	}
	return out
}

func (s *FirestoreStore) wrap(snap *firestore.DocumentSnapshot) *Document {
	p, _ := s.relative(snap.Ref)
	return &Document{
		ID:     snap.Ref.ID,
		Path:   p,
		decode: snap.DataTo,
	}
}

func (s *FirestoreStore) wrapAll(snaps []*firestore.DocumentSnapshot) []*Document {
	docs := make([]*Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, s.wrap(snap))
	}
	return docs
}

func collect(it *firestore.DocumentIterator) ([]*firestore.DocumentSnapshot, error) {
	defer it.Stop()

	var snaps []*firestore.DocumentSnapshot
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return snaps, nil
		}
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
}

func buildQuery(query firestore.Query, q Query) firestore.Query {
	for _, f := range q.Filters {
		query = query.Where(f.Field, string(f.Op), f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Descending {
			dir = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	return query
}

func toUpdates(fields map[string]interface{}) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields))
	for key, value := range fields {
		if inc, ok := value.(Increment); ok {
			value = firestore.Increment(inc.By)
		}
		updates = append(updates, firestore.Update{Path: key, Value: value})
	}
	return updates
}
