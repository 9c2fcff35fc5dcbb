package repository

import (
	"context"

	"github.com/polkiloo/factra/internal/domain/model"
)

// SyncRunRepository records the outcome of snapshot refreshes.
type SyncRunRepository interface {
	Record(ctx context.Context, report model.SyncReport) (*model.SyncReport, error)
	Latest(ctx context.Context) (*model.SyncReport, error)
}
