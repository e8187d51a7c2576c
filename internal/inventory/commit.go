package inventory

import (
	"context"

	"equiptrack/internal/domain"
	"equiptrack/internal/metrics"

	"go.uber.org/zap"
)

// Commit attempts write against the store and then runs apply on the snapshot
// regardless of the outcome. A failed write is returned as a warning, never rolled back.
func (r *Repository) Commit(ctx context.Context, op string, write func(context.Context) error, apply func()) *domain.PersistenceError {
	var warning *domain.PersistenceError
	if write != nil {
		if err := write(ctx); err != nil {
			warning = &domain.PersistenceError{Op: op, Err: err}
			metrics.PersistenceFailures.WithLabelValues(op).Inc()
			r.log.Warn("store write failed, committed locally", zap.String("op", op), zap.Error(err))
		}
	}
	if apply != nil {
		apply()
	}
	return warning
}
