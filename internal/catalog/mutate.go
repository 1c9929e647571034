// internal/catalog/mutate.go
package catalog

import (
	"context"
	"errors"

	"franchise-catalog/internal/common/metrics"
	"franchise-catalog/internal/models"
	"franchise-catalog/internal/store"
)

// transform edits a loaded franchise. It must be pure: the retry loop may
// call it several times with fresh snapshots.
type transform func(current *models.Franchise) (*models.Franchise, error)

// mutate runs read, transform, compare-and-swap write. Only a version
// conflict is retried; every other error ends the call with nothing written.
func (e *Engine) mutate(ctx context.Context, op, id string, apply transform) (*models.Franchise, error) {
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		current, err := e.store.Get(ctx, id)
		if errors.Is(err, store.ErrDocumentNotFound) {
			return nil, franchiseNotFound(id)
		}
		if err != nil {
			return nil, err
		}

		next, err := apply(current)
		if err != nil {
			return nil, err
		}

		saved, err := e.store.Put(ctx, next)
		if errors.Is(err, store.ErrVersionConflict) {
			e.recordConflict(op, id, attempt)
			continue
		}
		if err != nil {
			return nil, err
		}
		return saved, nil
	}
	return nil, concurrentModification(id, e.maxAttempts)
}

func (e *Engine) recordConflict(op, id string, attempt int) {
	metrics.CatalogVersionConflicts.WithLabelValues(op).Inc()
	e.logger.Debug("version conflict, retrying", map[string]interface{}{
		"operation":   op,
		"franchiseId": id,
		"attempt":     attempt,
	})
}
