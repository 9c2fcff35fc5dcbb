package model

import "github.com/shopspring/decimal"

// PortfolioSummary holds dashboard statistics for one viewer.
type PortfolioSummary struct {
	CreatedCount     int
	CreatedTotalFace decimal.Decimal
	FundedCount      int
	FundedTotalFace  decimal.Decimal
	ExpectedPayout   decimal.Decimal

	IssuedCount     int
	IssuedTotalFace decimal.Decimal

	// Skipped counts records dropped because they failed validation.
	Skipped int
}
