package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"franchise-catalog/internal/common/logger"
	"franchise-catalog/internal/models"
	"franchise-catalog/internal/store"
)

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

// ==========================
// Fixtures
// ==========================

func product(t *testing.T, name string, stock int) models.Product {
	t.Helper()
	p, err := models.NewProduct(name, stock)
	require.NoError(t, err)
	return p
}

func branch(t *testing.T, name string, products ...models.Product) models.Branch {
	t.Helper()
	b, err := models.NewBranch(name, products)
	require.NoError(t, err)
	return b
}

func franchise(t *testing.T, id, name string, branches ...models.Branch) *models.Franchise {
	t.Helper()
	f, err := models.NewFranchise(id, name, branches)
	require.NoError(t, err)
	return f
}

// seeded returns an engine over a memory store holding franchise f-1 "Acme"
// with branch Store1 [Widget:3, Gadget:7] and an empty branch Store2.
func seeded(t *testing.T, opts ...Option) (*Engine, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	e := NewEngine(s, append([]Option{WithLogger(newTestLogger(t))}, opts...)...)

	_, err := e.Save(context.Background(), franchise(t, "f-1", "Acme",
		branch(t, "Store1", product(t, "Widget", 3), product(t, "Gadget", 7)),
		branch(t, "Store2"),
	))
	require.NoError(t, err)
	return e, s
}

// ==========================
// Store doubles
// ==========================

// scriptedStore wraps a store and injects failures.
type scriptedStore struct {
	store.Store

	mu            sync.Mutex
	conflictsLeft int
	getErr        error
	listErr       error
	putErr        error
	gets          int
	puts          int
}

func (s *scriptedStore) Get(ctx context.Context, id string) (*models.Franchise, error) {
	s.mu.Lock()
	s.gets++
	err := s.getErr
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, id)
}

func (s *scriptedStore) List(ctx context.Context) ([]*models.Franchise, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.Store.List(ctx)
}

func (s *scriptedStore) Put(ctx context.Context, f *models.Franchise) (*models.Franchise, error) {
	s.mu.Lock()
	s.puts++
	if s.putErr != nil {
		err := s.putErr
		s.mu.Unlock()
		return nil, err
	}
	if s.conflictsLeft > 0 {
		s.conflictsLeft--
		s.mu.Unlock()
		return nil, store.ErrVersionConflict
	}
	s.mu.Unlock()
	return s.Store.Put(ctx, f)
}

// overwriteStore ignores versions: every Put replaces the document. It models
// a plain document store without compare-and-swap.
type overwriteStore struct {
	mu   sync.Mutex
	docs map[string]store.FranchiseDocument
}

func newOverwriteStore() *overwriteStore {
	return &overwriteStore{docs: make(map[string]store.FranchiseDocument)}
}

func (s *overwriteStore) Get(_ context.Context, id string) (*models.Franchise, error) {
	s.mu.Lock()
	doc, ok := s.docs[id]
	s.mu.Unlock()
	if !ok {
		return nil, store.ErrDocumentNotFound
	}
	return store.ToEntity(doc)
}

func (s *overwriteStore) Put(_ context.Context, f *models.Franchise) (*models.Franchise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := f.WithVersion(f.Version() + 1)
	s.docs[f.ID()] = store.ToDocument(next)
	return next, nil
}

func (s *overwriteStore) List(_ context.Context) ([]*models.Franchise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Franchise, 0, len(s.docs))
	for _, doc := range s.docs {
		f, err := store.ToEntity(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// interleavingStore runs hook once, right after the first Get returns, to
// force a second writer between one mutation's read and its write.
type interleavingStore struct {
	store.Store
	once sync.Once
	hook func()
}

func (s *interleavingStore) Get(ctx context.Context, id string) (*models.Franchise, error) {
	f, err := s.Store.Get(ctx, id)
	s.once.Do(s.hook)
	return f, err
}
