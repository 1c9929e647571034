// internal/catalog/observe.go
package catalog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "franchise-catalog/internal/common/errors"
	"franchise-catalog/internal/common/metrics"
)

// Operation names used as metric labels and span suffixes.
const (
	opSave            = "save"
	opAddBranch       = "add_branch"
	opAddProduct      = "add_product"
	opRemoveProduct   = "remove_product"
	opUpdateStock     = "update_stock"
	opRenameFranchise = "rename_franchise"
	opRenameBranch    = "rename_branch"
	opRenameProduct   = "rename_product"
	opTopProducts     = "top_products"
)

// observe wraps one engine call in a span, metrics and a log line. Errors
// pass through untouched.
func (e *Engine) observe(ctx context.Context, op, franchiseID string, fn func(ctx context.Context) error) error {
	ctx, span := e.obs.StartSpan(ctx, "catalog."+op, attribute.String("franchise.id", franchiseID))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	outcome := outcomeOf(err)
	metrics.CatalogOperations.WithLabelValues(op, outcome).Inc()
	metrics.CatalogOperationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	e.obs.RecordOperation(ctx, op, outcome, elapsed)

	fields := map[string]interface{}{
		"operation":   op,
		"franchiseId": franchiseID,
		"durationMs":  elapsed.Milliseconds(),
	}
	switch outcome {
	case metrics.OutcomeSuccess:
		e.logger.Info("catalog operation completed", fields)
	case metrics.OutcomeError:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		fields["error"] = err
		e.logger.Error("catalog operation failed", fields)
	default:
		span.SetStatus(codes.Error, outcome)
		fields["errorCode"] = string(apperrors.Normalize(err).Code)
		e.logger.Warn("catalog operation rejected", fields)
	}
	return err
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	var std *apperrors.StandardError
	if !apperrors.As(err, &std) {
		return metrics.OutcomeError
	}
	if std.Code == apperrors.ErrCodeConcurrentModification {
		return metrics.OutcomeConflict
	}
	return metrics.OutcomeRejected
}

func franchiseNotFound(id string) error {
	return apperrors.NewFranchiseNotFoundError(id)
}

func duplicateFranchiseName(name string) error {
	return apperrors.NewDuplicateFranchiseNameError(name)
}

func concurrentModification(id string, attempts int) error {
	return apperrors.NewConcurrentModificationError(id, attempts)
}
