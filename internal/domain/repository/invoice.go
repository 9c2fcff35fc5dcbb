package repository

import (
	"context"

	"github.com/polkiloo/factra/internal/domain/model"
)

// InvoiceRepository caches the latest known state of every invoice.
type InvoiceRepository interface {
	UpsertBatch(ctx context.Context, records []model.InvoiceRecord) error
	List(ctx context.Context) ([]model.InvoiceRecord, error)
	GetByID(ctx context.Context, id int64) (*model.InvoiceRecord, error)
}
