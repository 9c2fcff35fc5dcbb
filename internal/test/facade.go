package test

import (
	"context"

	domainErrors "github.com/polkiloo/factra/internal/domain/errors"
	"github.com/polkiloo/factra/internal/domain/model"
	"github.com/polkiloo/factra/internal/engine"
	"github.com/polkiloo/factra/internal/engine/marketplace"
)

// FactoringFacadeStub implements the HTTP-facing facade with overridable behaviour.
type FactoringFacadeStub struct {
	MarketplaceFn func(ctx context.Context, filters marketplace.Filters) []marketplace.Listing
	SectorsFn     func(ctx context.Context) []string
	PortfolioFn   func(ctx context.Context, viewer model.Address) model.PortfolioSummary
	IssuedFn      func(ctx context.Context, viewer model.Address) []engine.Detail
	FundedFn      func(ctx context.Context, viewer model.Address, mineOnly bool) []engine.Detail
	InvoiceFn     func(ctx context.Context, id int64) (*engine.Detail, error)
	SyncStatusFn  func(ctx context.Context) (*model.SyncReport, error)
	HealthFn      func(ctx context.Context) error
}

func (s FactoringFacadeStub) Marketplace(ctx context.Context, filters marketplace.Filters) []marketplace.Listing {
	if s.MarketplaceFn != nil {
		return s.MarketplaceFn(ctx, filters)
	}
	return nil
}

func (s FactoringFacadeStub) Sectors(ctx context.Context) []string {
	if s.SectorsFn != nil {
		return s.SectorsFn(ctx)
	}
	return []string{}
}

func (s FactoringFacadeStub) Portfolio(ctx context.Context, viewer model.Address) model.PortfolioSummary {
	if s.PortfolioFn != nil {
		return s.PortfolioFn(ctx, viewer)
	}
	return model.PortfolioSummary{}
}

func (s FactoringFacadeStub) IssuedInvoices(ctx context.Context, viewer model.Address) []engine.Detail {
	if s.IssuedFn != nil {
		return s.IssuedFn(ctx, viewer)
	}
	return nil
}

func (s FactoringFacadeStub) FundedInvoices(ctx context.Context, viewer model.Address, mineOnly bool) []engine.Detail {
	if s.FundedFn != nil {
		return s.FundedFn(ctx, viewer, mineOnly)
	}
	return nil
}

func (s FactoringFacadeStub) Invoice(ctx context.Context, id int64) (*engine.Detail, error) {
	if s.InvoiceFn != nil {
		return s.InvoiceFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s FactoringFacadeStub) SyncStatus(ctx context.Context) (*model.SyncReport, error) {
	if s.SyncStatusFn != nil {
		return s.SyncStatusFn(ctx)
	}
	return nil, domainErrors.ErrNotFound
}

func (s FactoringFacadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
