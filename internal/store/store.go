// Package store persists franchise aggregates as whole documents.
//
// Every implementation supports compare-and-swap writes keyed on
// models.Franchise.Version: a franchise with version 0 may only be inserted,
// and any other version must match the stored revision exactly. A successful
// Put returns the franchise with its version advanced by one.
package store

import (
	"context"
	"errors"

	"franchise-catalog/internal/models"
)

var (
	// ErrDocumentNotFound is returned by Get when no document has the id.
	ErrDocumentNotFound = errors.New("franchise document not found")

	// ErrVersionConflict is returned by Put when the stored revision differs
	// from the franchise's version, including inserts over an existing id.
	ErrVersionConflict = errors.New("franchise version conflict")
)

// Store is the aggregate persistence port used by the catalog engine.
type Store interface {
	Get(ctx context.Context, id string) (*models.Franchise, error)
	Put(ctx context.Context, f *models.Franchise) (*models.Franchise, error)
	List(ctx context.Context) ([]*models.Franchise, error)
}

// Pinger is implemented by backends that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}
