// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"franchise-catalog/internal/models"
)

const createFranchisesTable = `CREATE TABLE IF NOT EXISTS franchises (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	document   JSONB NOT NULL,
	version    BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const (
	selectFranchiseQuery = `SELECT document, version FROM franchises WHERE id = $1`
	listFranchisesQuery  = `SELECT document, version FROM franchises ORDER BY created_at, id`
	insertFranchiseQuery = `INSERT INTO franchises (id, name, document, version) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`
	updateFranchiseQuery = `UPDATE franchises SET name = $2, document = $3, version = $4, updated_at = NOW() WHERE id = $1 AND version = $5`
)

// PostgresStore keeps each franchise as a JSONB document row. The version
// column is authoritative and guards updates.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the franchises table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createFranchisesTable); err != nil {
		return fmt.Errorf("create franchises table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*models.Franchise, error) {
	var (
		document []byte
		version  int64
	)
	err := s.db.QueryRowContext(ctx, selectFranchiseQuery, id).Scan(&document, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query franchise %s: %w", id, err)
	}

	f, err := decode(document)
	if err != nil {
		return nil, err
	}
	return f.WithVersion(version), nil
}

func (s *PostgresStore) Put(ctx context.Context, f *models.Franchise) (*models.Franchise, error) {
	next := f.Version() + 1
	payload, err := encode(f, next)
	if err != nil {
		return nil, err
	}

	var res sql.Result
	if f.Version() == 0 {
		res, err = s.db.ExecContext(ctx, insertFranchiseQuery, f.ID(), f.Name(), payload, next)
	} else {
		res, err = s.db.ExecContext(ctx, updateFranchiseQuery, f.ID(), f.Name(), payload, next, f.Version())
	}
	if err != nil {
		return nil, fmt.Errorf("write franchise %s: %w", f.ID(), err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("write franchise %s: %w", f.ID(), err)
	}
	if affected == 0 {
		return nil, ErrVersionConflict
	}
	return f.WithVersion(next), nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Franchise, error) {
	rows, err := s.db.QueryContext(ctx, listFranchisesQuery)
	if err != nil {
		return nil, fmt.Errorf("list franchises: %w", err)
	}
	defer rows.Close()

	out := []*models.Franchise{}
	for rows.Next() {
		var (
			document []byte
			version  int64
		)
		if err := rows.Scan(&document, &version); err != nil {
			return nil, fmt.Errorf("scan franchise: %w", err)
		}
		f, err := decode(document)
		if err != nil {
			return nil, err
		}
		out = append(out, f.WithVersion(version))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list franchises: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
