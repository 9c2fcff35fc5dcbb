// Package engine is the single entry point UI-facing code uses to derive
// invoice economics, lifecycle state, dashboard statistics and listings.
package engine

import (
	"time"

	"github.com/polkiloo/factra/internal/domain/model"
	"github.com/polkiloo/factra/internal/engine/economics"
	"github.com/polkiloo/factra/internal/engine/lifecycle"
	"github.com/polkiloo/factra/internal/engine/marketplace"
	"github.com/polkiloo/factra/internal/engine/portfolio"
)

// Detail is the per-invoice view: record, economics and lifecycle state.
type Detail struct {
	Record         model.InvoiceRecord
	Economics      economics.Economics
	Classification lifecycle.Classification
}

// ComputeEconomics derives funding amount, profit, yield and days to maturity for r.
func ComputeEconomics(r model.InvoiceRecord, now time.Time) economics.Economics {
	return economics.Compute(r, now)
}

// Classify reports the lifecycle flags of r as of now.
func Classify(r model.InvoiceRecord, now time.Time) lifecycle.Classification {
	return lifecycle.Classify(r, now)
}

// Aggregate summarises the viewer's issued and funded invoices.
func Aggregate(records []model.InvoiceRecord, viewer model.Address, now time.Time) model.PortfolioSummary {
	return portfolio.Aggregate(records, viewer, now)
}

// QueryMarketplace returns fundable listings matching filters, sorted.
func QueryMarketplace(records []model.InvoiceRecord, filters marketplace.Filters, now time.Time) []marketplace.Listing {
	return marketplace.Query(records, filters, now)
}

// Describe builds the detail view of r as of now.
func Describe(r model.InvoiceRecord, now time.Time) Detail {
	return Detail{
		Record:         r,
		Economics:      economics.Compute(r, now),
		Classification: lifecycle.Classify(r, now),
	}
}

// DescribeAll builds detail views for every record matching keep, preserving order.
func DescribeAll(records []model.InvoiceRecord, now time.Time, keep func(model.InvoiceRecord) bool) []Detail {
	details := make([]Detail, 0, len(records))
	for _, r := range records {
		if keep != nil && !keep(r) {
			continue
		}
		details = append(details, Describe(r, now))
	}
	return details
}
