package lifecycle

import (
	"time"

	"github.com/polkiloo/factra/internal/domain/model"
)

// NearMaturityWindow is how close to its due date a funded invoice must be
// to count towards the expected payout.
const NearMaturityWindow = 30 * 24 * time.Hour

// Classification is the lifecycle view of one invoice at a point in time.
type Classification struct {
	State        model.Status
	Fundable     bool
	NearMaturity bool
	Terminal     bool
}

// Classify evaluates every lifecycle predicate for r as of now.
func Classify(r model.InvoiceRecord, now time.Time) Classification {
	return Classification{
		State:        r.Status,
		Fundable:     IsFundable(r),
		NearMaturity: IsNearMaturity(r, now),
		Terminal:     r.Status.IsTerminal(),
	}
}

// IsFundable reports whether the invoice is still open to investors.
func IsFundable(r model.InvoiceRecord) bool {
	return r.Status == model.StatusCreated
}

// IsNearMaturity reports whether a funded invoice falls due within the window.
// Overdue funded invoices count as near maturity.
func IsNearMaturity(r model.InvoiceRecord, now time.Time) bool {
	return r.Status == model.StatusFunded && r.DueDate.Before(now.Add(NearMaturityWindow))
}

// OwnedByIssuer reports whether addr issued the invoice.
func OwnedByIssuer(r model.InvoiceRecord, addr model.Address) bool {
	return r.Issuer.Equal(addr)
}

// FundedByInvestor reports whether addr is the buyer of a currently funded invoice.
func FundedByInvestor(r model.InvoiceRecord, addr model.Address) bool {
	return r.Status == model.StatusFunded && r.Buyer.Equal(addr)
}
