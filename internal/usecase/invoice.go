package usecase

import (
	"context"
	"fmt"

	"github.com/polkiloo/factra/internal/domain/model"
	"github.com/polkiloo/factra/internal/domain/repository"
)

// InvoiceUseCase encapsulates access to the persisted invoice snapshot.
type InvoiceUseCase struct {
	invoices repository.InvoiceRepository
}

// NewInvoiceUseCase constructs InvoiceUseCase.
func NewInvoiceUseCase(invoices repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices}
}

// Store persists records. Records failing validation are rejected before any write.
func (u *InvoiceUseCase) Store(ctx context.Context, records []model.InvoiceRecord) error {
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("invoice %d: %w", rec.ID, err)
		}
	}
	return u.invoices.UpsertBatch(ctx, records)
}

// List returns every stored invoice ordered by id.
func (u *InvoiceUseCase) List(ctx context.Context) ([]model.InvoiceRecord, error) {
	return u.invoices.List(ctx)
}

// Get returns a single invoice or domain ErrNotFound.
func (u *InvoiceUseCase) Get(ctx context.Context, id int64) (*model.InvoiceRecord, error) {
	return u.invoices.GetByID(ctx, id)
}
