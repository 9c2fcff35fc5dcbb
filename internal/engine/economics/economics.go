package economics

import (
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/factra/internal/domain/errors"
	"github.com/polkiloo/factra/internal/domain/model"
)

const (
	secondsPerDay = 86400
	daysPerYear   = 365

	// BaseUnitDecimals is the number of decimals between a whole coin and its base unit.
	BaseUnitDecimals = 18
	// DisplayPlaces is the precision used for percentages shown to users.
	DisplayPlaces = 2
)

var hundred = decimal.NewFromInt(100)

// Economics holds the derived investor-side figures for one invoice.
// Percentages are unrounded; call Rounded before presenting them.
type Economics struct {
	FundingAmount  decimal.Decimal
	Profit         decimal.Decimal
	YieldPct       decimal.Decimal
	ROIPct         decimal.Decimal
	DaysToMaturity int64
}

// Compute derives every economic figure of r as of now.
func Compute(r model.InvoiceRecord, now time.Time) Economics {
	funding := FundingAmount(r)
	return Economics{
		FundingAmount:  funding,
		Profit:         r.FaceAmount.Sub(funding),
		YieldPct:       AnnualizedYield(r, now),
		ROIPct:         returnOnFunding(r.FaceAmount.Sub(funding), funding),
		DaysToMaturity: DaysToMaturity(r, now),
	}
}

// Rounded returns a copy with percentages rounded for display.
func (e Economics) Rounded() Economics {
	e.YieldPct = RoundPct(e.YieldPct)
	e.ROIPct = RoundPct(e.ROIPct)
	return e
}

// FundingAmount is what an investor pays: face * (100 - discount) / 100, truncated.
func FundingAmount(r model.InvoiceRecord) decimal.Decimal {
	keep := decimal.NewFromInt(int64(model.MaxDiscountRate - r.DiscountRate))
	return r.FaceAmount.Mul(keep).Shift(-2).Truncate(0)
}

// InvestorProfit is the gap between face value and funding amount.
func InvestorProfit(r model.InvoiceRecord) decimal.Decimal {
	return r.FaceAmount.Sub(FundingAmount(r))
}

// DaysToMaturity counts whole days until the due date, rounding partial days up.
// Past-due invoices report zero.
func DaysToMaturity(r model.InvoiceRecord, now time.Time) int64 {
	remaining := r.DueDate.Unix() - now.Unix()
	if remaining <= 0 {
		return 0
	}
	return (remaining + secondsPerDay - 1) / secondsPerDay
}

// AnnualizedYield converts the discount into a simple-interest annual percentage.
// An invoice at or past maturity yields zero.
func AnnualizedYield(r model.InvoiceRecord, now time.Time) decimal.Decimal {
	yield, err := annualize(r.DiscountRate, DaysToMaturity(r, now))
	if err != nil {
		return decimal.Zero
	}
	return yield
}

func annualize(discount int, days int64) (decimal.Decimal, error) {
	if days <= 0 {
		return decimal.Zero, domainErrors.ErrDegenerateInput
	}
	return decimal.NewFromInt(int64(discount) * daysPerYear).Div(decimal.NewFromInt(days)), nil
}

// ReturnOnFunding is profit as a percentage of the funding amount.
func ReturnOnFunding(r model.InvoiceRecord) decimal.Decimal {
	funding := FundingAmount(r)
	return returnOnFunding(r.FaceAmount.Sub(funding), funding)
}

func returnOnFunding(profit, funding decimal.Decimal) decimal.Decimal {
	if funding.IsZero() {
		return decimal.Zero
	}
	return profit.Mul(hundred).Div(funding)
}

// RoundPct rounds a percentage to two decimal places.
func RoundPct(pct decimal.Decimal) decimal.Decimal {
	return pct.Round(DisplayPlaces)
}

// FormatBTC renders a base-unit amount in whole coins with the given precision.
func FormatBTC(amount decimal.Decimal, places int32) string {
	return amount.Shift(-BaseUnitDecimals).StringFixed(places)
}

// FormatRating renders a rating stored in tenths, e.g. 42 -> "4.2".
func FormatRating(rating int) string {
	return decimal.New(int64(rating), -1).StringFixed(1)
}
