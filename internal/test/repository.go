package test

import (
	"context"
	"sort"
	"sync"

	domainErrors "github.com/polkiloo/factra/internal/domain/errors"
	"github.com/polkiloo/factra/internal/domain/model"
)

// InvoiceRepositoryStub keeps invoices in memory keyed by id.
type InvoiceRepositoryStub struct {
	mu       sync.Mutex
	Records  map[int64]model.InvoiceRecord
	ListErr  error
	StoreErr error
}

// NewInvoiceRepositoryStub seeds the stub with records.
func NewInvoiceRepositoryStub(records ...model.InvoiceRecord) *InvoiceRepositoryStub {
	s := &InvoiceRepositoryStub{Records: make(map[int64]model.InvoiceRecord)}
	for _, r := range records {
		s.Records[r.ID] = r
	}
	return s
}

func (s *InvoiceRepositoryStub) UpsertBatch(_ context.Context, records []model.InvoiceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StoreErr != nil {
		return s.StoreErr
	}
	if s.Records == nil {
		s.Records = make(map[int64]model.InvoiceRecord)
	}
	for _, r := range records {
		if existing, ok := s.Records[r.ID]; ok && existing.Status > r.Status {
			continue
		}
		s.Records[r.ID] = r
	}
	return nil
}

func (s *InvoiceRepositoryStub) List(context.Context) ([]model.InvoiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	out := make([]model.InvoiceRecord, 0, len(s.Records))
	for _, r := range s.Records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InvoiceRepositoryStub) GetByID(_ context.Context, id int64) (*model.InvoiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.Records[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &r, nil
}

// SyncRunRepositoryStub stores refresh reports in memory.
type SyncRunRepositoryStub struct {
	mu        sync.Mutex
	Reports   []model.SyncReport
	RecordErr error
}

func (s *SyncRunRepositoryStub) Record(_ context.Context, report model.SyncReport) (*model.SyncReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RecordErr != nil {
		return nil, s.RecordErr
	}
	report.ID = int64(len(s.Reports) + 1)
	s.Reports = append(s.Reports, report)
	return &report, nil
}

func (s *SyncRunRepositoryStub) Latest(context.Context) (*model.SyncReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Reports) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	latest := s.Reports[len(s.Reports)-1]
	return &latest, nil
}

// HealthCheckerStub reports a fixed health result.
type HealthCheckerStub struct {
	Err error
}

func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}
