package datastore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps documents in process. It backs the development driver
// and the test suites; values round-trip through their JSON form.
type MemoryStore struct {
	mu       sync.RWMutex
	docs     map[string]map[string]interface{}
	watchers map[int]*watcher
	nextID   int
}

type watcher struct {
	match  func(docPath string) bool
	notify chan struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:     make(map[string]map[string]interface{}),
		watchers: make(map[int]*watcher),
	}
}

func (s *MemoryStore) Get(ctx context.Context, p string, v interface{}) error {
	if !validDocPath(p) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	s.mu.RLock()
	data, ok := s.docs[p]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return decodeMap(data, v)
}

func (s *MemoryStore) Create(ctx context.Context, p string, v interface{}) error {
	if !validDocPath(p) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	data, err := encodeMap(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if _, ok := s.docs[p]; ok {
		s.mu.Unlock()
		return ErrAlreadyExists
	}
	s.docs[p] = data
	s.mu.Unlock()

	s.changed(p)
	return nil
}

func (s *MemoryStore) Set(ctx context.Context, p string, v interface{}) error {
	if !validDocPath(p) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	data, err := encodeMap(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.docs[p] = data
	s.mu.Unlock()

	s.changed(p)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, p string, fields map[string]interface{}) error {
	if !validDocPath(p) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	s.mu.Lock()
	data, ok := s.docs[p]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	err := applyFields(data, fields)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.changed(p)
	return nil
}

func (s *MemoryStore) Mutate(ctx context.Context, p string, v interface{}, fn MutateFunc) error {
	if !validDocPath(p) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	s.mu.Lock()
	data, ok := s.docs[p]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	if err := decodeMap(data, v); err != nil {
		s.mu.Unlock()
		return err
	}
	fields, err := fn()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if len(fields) == 0 {
		s.mu.Unlock()
		return nil
	}
	err = applyFields(data, fields)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.changed(p)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, p string) error {
	if !validDocPath(p) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	s.mu.Lock()
	_, existed := s.docs[p]
	delete(s.docs, p)
	s.mu.Unlock()

	if existed {
		s.changed(p)
	}
	return nil
}

func (s *MemoryStore) List(ctx context.Context, collection string, q Query) ([]*Document, error) {
	if !validCollectionPath(collection) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, collection)
	}
	return s.query(func(docPath string) bool { return parent(docPath) == collection }, q)
}

func (s *MemoryStore) ListGroup(ctx context.Context, group string, q Query) ([]*Document, error) {
	return s.query(inGroup(group), q)
}

func (s *MemoryStore) Watch(ctx context.Context, collection string, q Query, fn func([]*Document)) error {
	if !validCollectionPath(collection) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, collection)
	}
	return s.watch(ctx, func(docPath string) bool { return parent(docPath) == collection }, q, fn)
}

func (s *MemoryStore) WatchGroup(ctx context.Context, group string, q Query, fn func([]*Document)) error {
	return s.watch(ctx, inGroup(group), q, fn)
}

func (s *MemoryStore) watch(ctx context.Context, match func(string) bool, q Query, fn func([]*Document)) error {
	id, w := s.subscribe(match)
	defer s.unsubscribe(id)

	for {
		docs, err := s.query(match, q)
		if err != nil {
			return err
		}
		fn(docs)

		select {
		case <-ctx.Done():
			return nil
		case <-w.notify:
		}
	}
}

func (s *MemoryStore) WatchDoc(ctx context.Context, p string, fn func(*Document)) error {
	if !validDocPath(p) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	id, w := s.subscribe(func(docPath string) bool { return docPath == p })
	defer s.unsubscribe(id)

	for {
		s.mu.RLock()
		data, ok := s.docs[p]
		var doc *Document
		if ok {
			doc = snapshot(p, data)
		}
		s.mu.RUnlock()
		fn(doc)

		select {
		case <-ctx.Done():
			return nil
		case <-w.notify:
		}
	}
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) subscribe(match func(string) bool) (int, *watcher) {
	w := &watcher{match: match, notify: make(chan struct{}, 1)}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.watchers[s.nextID] = w
	return s.nextID, w
}

func (s *MemoryStore) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.watchers, id)
}

// changed wakes watchers of p. Pending wake-ups coalesce; a watcher always
// re-reads the latest state.
func (s *MemoryStore) changed(p string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, w := range s.watchers {
		if !w.match(p) {
			continue
		}
		select {
		case w.notify <- struct{}{}:
		default:
		}
	}
}

func (s *MemoryStore) query(match func(string) bool, q Query) ([]*Document, error) {
	filters := make([]Filter, len(q.Filters))
	for i, f := range q.Filters {
		value, err := normalize(f.Value)
		if err != nil {
			return nil, err
		}
		filters[i] = Filter{Field: f.Field, Op: f.Op, Value: value}
	}

	type entry struct {
		path string
		data map[string]interface{}
	}

	s.mu.RLock()
	var entries []entry
	for p, data := range s.docs {
		if !match(p) || !matchesAll(data, filters) {
			continue
		}
		entries = append(entries, entry{path: p, data: data})
	}

	// Stable default order keeps results deterministic.
	sort.Slice(entries, func(i, j int) bool { return entries[i].path < entries[j].path })
	if q.OrderBy != "" {
		sort.SliceStable(entries, func(i, j int) bool {
			a, _ := lookup(entries[i].data, q.OrderBy)
			b, _ := lookup(entries[j].data, q.OrderBy)
			if q.Descending {
				return less(b, a)
			}
			return less(a, b)
		})
	}
	if q.Limit > 0 && len(entries) > q.Limit {
		entries = entries[:q.Limit]
	}

	docs := make([]*Document, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, snapshot(e.path, e.data))
	}
	s.mu.RUnlock()

	return docs, nil
}

func inGroup(group string) func(string) bool {
	return func(docPath string) bool {
		col := parent(docPath)
		return col != "" && lastSegment(col) == group
	}
}

// snapshot copies data so later writes do not leak into the document.
func snapshot(p string, data map[string]interface{}) *Document {
	raw, err := json.Marshal(data)
	return &Document{
		ID:   lastSegment(p),
		Path: p,
		decode: func(v interface{}) error {
			if err != nil {
				return err
			}
			return json.Unmarshal(raw, v)
		},
	}
}

func encodeMap(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("datastore: value is not an object: %w", err)
	}
	return data, nil
}

func decodeMap(data map[string]interface{}, v interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func normalize(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	err = json.Unmarshal(raw, &out)
	return out, err
}

func applyFields(data map[string]interface{}, fields map[string]interface{}) error {
	for key, value := range fields {
		parts := strings.Split(key, ".")
		node := data
		for _, part := range parts[:len(parts)-1] {
			next, ok := node[part].(map[string]interface{})
			if !ok {
				next = make(map[string]interface{})
				node[part] = next
			}
			node = next
		}
		leaf := parts[len(parts)-1]

		if inc, ok := value.(Increment); ok {
			current, _ := node[leaf].(float64)
			node[leaf] = current + float64(inc.By)
			continue
		}

		normalized, err := normalize(value)
		if err != nil {
			return err
		}
		node[leaf] = normalized
	}
	return nil
}

func lookup(data map[string]interface{}, field string) (interface{}, bool) {
	var node interface{} = data
	for _, part := range strings.Split(field, ".") {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		node, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

func matchesAll(data map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		value, ok := lookup(data, f.Field)
		if !ok {
			return false
		}
		switch f.Op {
		case OpEqual:
			if !reflect.DeepEqual(value, f.Value) {
				return false
			}
		case OpArrayContains:
			list, ok := value.([]interface{})
			if !ok {
				return false
			}
			found := false
			for _, item := range list {
				if reflect.DeepEqual(item, f.Value) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// less orders missing < bool < number < string, with RFC 3339 strings
// compared as instants.
func less(a, b interface{}) bool {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra < rb
	}
	switch av := a.(type) {
	case bool:
		return !av && b.(bool)
	case float64:
		return av < b.(float64)
	case string:
		bv := b.(string)
		ta, errA := time.Parse(time.RFC3339Nano, av)
		tb, errB := time.Parse(time.RFC3339Nano, bv)
		if errA == nil && errB == nil {
			return ta.Before(tb)
		}
		return av < bv
	}
	return false
}

func rank(v interface{}) int {
	switch v.(type) {
	case bool:
		return 1
	case float64:
		return 2
	case string:
		return 3
	}
	return 0
}
