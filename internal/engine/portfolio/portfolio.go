package portfolio

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/factra/internal/domain/model"
	"github.com/polkiloo/factra/internal/engine/lifecycle"
)

// Aggregate folds a snapshot into dashboard statistics for viewer.
// Market-wide figures cover every fundable invoice; funded figures and the
// expected payout only cover invoices the viewer bought. An absent viewer
// gets zero viewer-scoped metrics. Invalid records are skipped.
func Aggregate(records []model.InvoiceRecord, viewer model.Address, now time.Time) model.PortfolioSummary {
	summary := model.PortfolioSummary{
		CreatedTotalFace: decimal.Zero,
		FundedTotalFace:  decimal.Zero,
		ExpectedPayout:   decimal.Zero,
		IssuedTotalFace:  decimal.Zero,
	}

	for _, r := range records {
		if err := r.Validate(); err != nil {
			summary.Skipped++
			continue
		}

		if lifecycle.IsFundable(r) {
			summary.CreatedCount++
			summary.CreatedTotalFace = summary.CreatedTotalFace.Add(r.FaceAmount)
		}

		if lifecycle.OwnedByIssuer(r, viewer) {
			summary.IssuedCount++
			summary.IssuedTotalFace = summary.IssuedTotalFace.Add(r.FaceAmount)
		}

		if !lifecycle.FundedByInvestor(r, viewer) {
			continue
		}
		summary.FundedCount++
		summary.FundedTotalFace = summary.FundedTotalFace.Add(r.FaceAmount)
		if lifecycle.IsNearMaturity(r, now) {
			summary.ExpectedPayout = summary.ExpectedPayout.Add(r.FaceAmount)
		}
	}

	return summary
}
