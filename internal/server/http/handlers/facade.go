package handlers

import (
	"context"

	"github.com/polkiloo/factra/internal/domain/model"
	"github.com/polkiloo/factra/internal/engine"
	"github.com/polkiloo/factra/internal/engine/marketplace"
)

// MarketplaceFacade exposes the open-invoice listing.
type MarketplaceFacade interface {
	Marketplace(ctx context.Context, filters marketplace.Filters) []marketplace.Listing
	Sectors(ctx context.Context) []string
}

// PortfolioFacade provides viewer-scoped dashboard views.
type PortfolioFacade interface {
	Portfolio(ctx context.Context, viewer model.Address) model.PortfolioSummary
	IssuedInvoices(ctx context.Context, viewer model.Address) []engine.Detail
	FundedInvoices(ctx context.Context, viewer model.Address, mineOnly bool) []engine.Detail
}

// InvoiceFacade resolves single invoices.
type InvoiceFacade interface {
	Invoice(ctx context.Context, id int64) (*engine.Detail, error)
}

// SyncFacade reports snapshot freshness and store health.
type SyncFacade interface {
	SyncStatus(ctx context.Context) (*model.SyncReport, error)
	Health(ctx context.Context) error
}

// FactoringFacade aggregates the full set of operations used across handlers.
type FactoringFacade interface {
	MarketplaceFacade
	PortfolioFacade
	InvoiceFacade
	SyncFacade
}
