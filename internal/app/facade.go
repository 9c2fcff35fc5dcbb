package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/polkiloo/factra/internal/domain/model"
	"github.com/polkiloo/factra/internal/engine"
	"github.com/polkiloo/factra/internal/engine/lifecycle"
	"github.com/polkiloo/factra/internal/engine/marketplace"
	"github.com/polkiloo/factra/internal/snapshot"
	"github.com/polkiloo/factra/internal/usecase"
)

// SnapshotLoader reads the full invoice set from the ledger.
type SnapshotLoader interface {
	Load(ctx context.Context) (*snapshot.Snapshot, error)
}

// HealthChecker reports whether the snapshot store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// FactoringFacade serves the read-side views over the cached invoice snapshot
// and refreshes that snapshot from the ledger.
type FactoringFacade struct {
	invoices *usecase.InvoiceUseCase
	syncs    *usecase.SyncUseCase
	loader   SnapshotLoader
	health   HealthChecker
	logger   *slog.Logger
	now      func() time.Time
}

func NewFactoringFacade(invoices *usecase.InvoiceUseCase, syncs *usecase.SyncUseCase, loader SnapshotLoader, health HealthChecker, logger *slog.Logger) *FactoringFacade {
	return &FactoringFacade{
		invoices: invoices,
		syncs:    syncs,
		loader:   loader,
		health:   health,
		logger:   logger,
		now:      time.Now,
	}
}

// records returns the cached snapshot; an unavailable store yields no records.
func (f *FactoringFacade) records(ctx context.Context) []model.InvoiceRecord {
	records, err := f.invoices.List(ctx)
	if err != nil {
		f.logger.Warn("invoice snapshot unavailable", slog.String("error", err.Error()))
		return nil
	}
	return records
}

func (f *FactoringFacade) Marketplace(ctx context.Context, filters marketplace.Filters) []marketplace.Listing {
	return engine.QueryMarketplace(f.records(ctx), filters, f.now())
}

func (f *FactoringFacade) Sectors(ctx context.Context) []string {
	return marketplace.Sectors(f.records(ctx))
}

func (f *FactoringFacade) Portfolio(ctx context.Context, viewer model.Address) model.PortfolioSummary {
	return engine.Aggregate(f.records(ctx), viewer, f.now())
}

func (f *FactoringFacade) Invoice(ctx context.Context, id int64) (*engine.Detail, error) {
	rec, err := f.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := engine.Describe(*rec, f.now())
	return &detail, nil
}

// IssuedInvoices lists invoices the viewer issued, in id order.
func (f *FactoringFacade) IssuedInvoices(ctx context.Context, viewer model.Address) []engine.Detail {
	if viewer.IsZero() {
		return []engine.Detail{}
	}
	return engine.DescribeAll(f.records(ctx), f.now(), func(r model.InvoiceRecord) bool {
		return r.Validate() == nil && lifecycle.OwnedByIssuer(r, viewer)
	})
}

// FundedInvoices lists currently funded invoices, optionally only those the viewer bought.
func (f *FactoringFacade) FundedInvoices(ctx context.Context, viewer model.Address, mineOnly bool) []engine.Detail {
	return engine.DescribeAll(f.records(ctx), f.now(), func(r model.InvoiceRecord) bool {
		if r.Validate() != nil || r.Status != model.StatusFunded {
			return false
		}
		return !mineOnly || lifecycle.FundedByInvestor(r, viewer)
	})
}

func (f *FactoringFacade) SyncStatus(ctx context.Context) (*model.SyncReport, error) {
	return f.syncs.Latest(ctx)
}

// RefreshSnapshot loads the ledger, stores valid records and records the outcome.
func (f *FactoringFacade) RefreshSnapshot(ctx context.Context) (*model.SyncReport, error) {
	report := model.SyncReport{StartedAt: f.now().UTC()}

	snap, err := f.loader.Load(ctx)
	if err == nil {
		report.Total = int(snap.Total)
		report.Loaded = len(snap.Records)
		report.Missing = len(snap.Missing)
		report.Invalid = len(snap.Invalid)
		err = f.invoices.Store(ctx, snap.Records)
	}
	report.FinishedAt = f.now().UTC()
	if err != nil {
		report.Error = err.Error()
	}

	if errors.Is(err, context.Canceled) {
		return nil, err
	}

	saved, recErr := f.syncs.Record(ctx, report)
	if recErr != nil {
		f.logger.Error("record sync run failed", slog.String("error", recErr.Error()))
		saved = &report
	}
	if err != nil {
		return saved, err
	}
	return saved, nil
}

func (f *FactoringFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
