package usecase

import (
	"context"

	"github.com/polkiloo/factra/internal/domain/model"
	"github.com/polkiloo/factra/internal/domain/repository"
)

// SyncUseCase keeps the history of snapshot refreshes.
type SyncUseCase struct {
	runs repository.SyncRunRepository
}

// NewSyncUseCase constructs SyncUseCase.
func NewSyncUseCase(runs repository.SyncRunRepository) *SyncUseCase {
	return &SyncUseCase{runs: runs}
}

// Record persists a finished refresh.
func (u *SyncUseCase) Record(ctx context.Context, report model.SyncReport) (*model.SyncReport, error) {
	return u.runs.Record(ctx, report)
}

// Latest returns the most recent refresh or domain ErrNotFound.
func (u *SyncUseCase) Latest(ctx context.Context) (*model.SyncReport, error) {
	return u.runs.Latest(ctx)
}
