// Package catalog implements the franchise aggregate mutation engine.
//
// Every edit is a read-modify-write of the whole franchise document: the
// engine loads the aggregate, locates the nested branch or product, checks
// sibling invariants, applies the change to a copy and writes it back with a
// compare-and-swap on the franchise version. A lost race re-reads and
// re-applies the edit up to MaxAttempts times.
package catalog

import (
	"context"
	"errors"

	"franchise-catalog/internal/common/config"
	"franchise-catalog/internal/common/logger"
	"franchise-catalog/internal/common/observability"
	"franchise-catalog/internal/models"
	"franchise-catalog/internal/store"
)

// DefaultMaxAttempts is the number of read-modify-write attempts per call.
const DefaultMaxAttempts = 3

// Engine is stateless apart from its configuration and safe for concurrent use.
type Engine struct {
	store               store.Store
	maxAttempts         int
	rejectNegativeStock bool
	logger              logger.Logger
	obs                 *observability.Observability
}

type Option func(*Engine)

// WithMaxAttempts bounds the optimistic retry loop. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// WithNegativeStockPolicy selects how UpdateStock treats a negative value:
// config.NegativeStockAllow stores it as given, config.NegativeStockReject
// fails with InvalidProduct.
func WithNegativeStockPolicy(policy string) Option {
	return func(e *Engine) {
		e.rejectNegativeStock = policy == config.NegativeStockReject
	}
}

func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithObservability(o *observability.Observability) Option {
	return func(e *Engine) { e.obs = o }
}

func NewEngine(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:       s,
		maxAttempts: DefaultMaxAttempts,
		logger:      logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Save stores f. An existing id is overwritten without re-checking the name;
// a new id is inserted only if no stored franchise has the same name.
func (e *Engine) Save(ctx context.Context, f *models.Franchise) (*models.Franchise, error) {
	var saved *models.Franchise
	err := e.observe(ctx, opSave, f.ID(), func(ctx context.Context) error {
		for attempt := 1; attempt <= e.maxAttempts; attempt++ {
			_, err := e.store.Get(ctx, f.ID())
			switch {
			case err == nil:
				saved, err = e.saveExisting(ctx, f)
				return err
			case !errors.Is(err, store.ErrDocumentNotFound):
				return err
			}

			saved, err = e.saveNew(ctx, f)
			if errors.Is(err, store.ErrVersionConflict) {
				// another writer inserted the id first
				e.recordConflict(opSave, f.ID(), attempt)
				continue
			}
			return err
		}
		return concurrentModification(f.ID(), e.maxAttempts)
	})
	return saved, err
}

func (e *Engine) saveExisting(ctx context.Context, f *models.Franchise) (*models.Franchise, error) {
	return e.mutate(ctx, opSave, f.ID(), func(current *models.Franchise) (*models.Franchise, error) {
		return f.WithVersion(current.Version()), nil
	})
}

func (e *Engine) saveNew(ctx context.Context, f *models.Franchise) (*models.Franchise, error) {
	all, err := e.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if FranchiseNameTaken(f.Name(), "", all) {
		return nil, duplicateFranchiseName(f.Name())
	}
	return e.store.Put(ctx, f.WithVersion(0))
}

// FindByID returns the stored franchise or FranchiseNotFound.
func (e *Engine) FindByID(ctx context.Context, id string) (*models.Franchise, error) {
	f, err := e.store.Get(ctx, id)
	if errors.Is(err, store.ErrDocumentNotFound) {
		return nil, franchiseNotFound(id)
	}
	return f, err
}

func (e *Engine) FindAll(ctx context.Context) ([]*models.Franchise, error) {
	return e.store.List(ctx)
}
