package test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/factra/internal/adapter/ledger"
	"github.com/polkiloo/factra/internal/domain/model"
)

// LedgerClientStub serves invoices from memory and counts concurrent reads.
type LedgerClientStub struct {
	Invoices  map[int64]model.RawInvoice
	CountFn   func(context.Context) (int64, error)
	InvoiceFn func(context.Context, int64) (model.RawInvoice, error)

	mu       sync.Mutex
	active   int32
	MaxSeen  int32
	Requests int32
}

// Count returns the configured override or the number of stored invoices.
func (s *LedgerClientStub) Count(ctx context.Context) (int64, error) {
	if s.CountFn != nil {
		return s.CountFn(ctx)
	}
	return int64(len(s.Invoices)), nil
}

// Invoice returns a stored tuple, tracking how many reads run at once.
func (s *LedgerClientStub) Invoice(ctx context.Context, id int64) (model.RawInvoice, error) {
	atomic.AddInt32(&s.Requests, 1)
	current := atomic.AddInt32(&s.active, 1)
	defer atomic.AddInt32(&s.active, -1)

	s.mu.Lock()
	if current > s.MaxSeen {
		s.MaxSeen = current
	}
	s.mu.Unlock()

	if s.InvoiceFn != nil {
		return s.InvoiceFn(ctx, id)
	}
	raw, ok := s.Invoices[id]
	if !ok {
		return model.RawInvoice{}, ledger.ErrInvoiceNotFound
	}
	return raw, nil
}

// MaxConcurrent reports the highest number of overlapping Invoice calls.
func (s *LedgerClientStub) MaxConcurrent() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.MaxSeen
}

// RawInvoice builds a valid ledger tuple for tests.
func RawInvoice(id int64, face int64, status model.Status, dueDate int64) model.RawInvoice {
	return model.RawInvoice{
		ID:           id,
		Issuer:       "0x1111111111111111111111111111111111111111",
		Buyer:        string(model.ZeroAddress),
		Amount:       decimal.NewFromInt(face),
		DueDate:      dueDate,
		Status:       int64(status),
		BusinessName: "Business",
		Sector:       "Energy",
		Rating:       40,
		DiscountRate: 5,
	}
}

var _ ledger.Client = (*LedgerClientStub)(nil)
