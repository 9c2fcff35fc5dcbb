package marketplace

import (
	"cmp"
	"fmt"
	"sort"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/factra/internal/domain/errors"
	"github.com/polkiloo/factra/internal/domain/model"
	"github.com/polkiloo/factra/internal/engine/economics"
	"github.com/polkiloo/factra/internal/engine/lifecycle"
)

// SortKey selects the listing order.
type SortKey string

const (
	SortByYield    SortKey = "yield"
	SortByAmount   SortKey = "amount"
	SortByMaturity SortKey = "maturity"

	// AllSectors disables the sector filter.
	AllSectors = "all"
)

// ParseSortKey accepts yield, amount or maturity; empty means yield.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case "":
		return SortByYield, nil
	case SortByYield, SortByAmount, SortByMaturity:
		return key, nil
	default:
		return "", fmt.Errorf("%w: %q", domainErrors.ErrInvalidSortKey, s)
	}
}

// Filters narrows and orders the marketplace listing.
type Filters struct {
	Search string
	Sector string
	Sort   SortKey
}

// Listing pairs an open invoice with its economics.
type Listing struct {
	Record    model.InvoiceRecord
	Economics economics.Economics
}

// Query lists fundable invoices matching filters, ordered by the sort key.
// Ties are broken by ascending invoice id.
func Query(records []model.InvoiceRecord, filters Filters, now time.Time) []Listing {
	search := strings.ToLower(strings.TrimSpace(filters.Search))
	sector := strings.TrimSpace(filters.Sector)
	if strings.EqualFold(sector, AllSectors) {
		sector = ""
	}

	listings := make([]Listing, 0, len(records))
	for _, r := range records {
		if r.Validate() != nil || !lifecycle.IsFundable(r) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.BusinessName), search) {
			continue
		}
		if sector != "" && !strings.EqualFold(r.Sector, sector) {
			continue
		}
		listings = append(listings, Listing{Record: r, Economics: economics.Compute(r, now)})
	}

	compare := compareFor(filters.Sort)
	sort.SliceStable(listings, func(i, j int) bool {
		if c := compare(listings[i], listings[j]); c != 0 {
			return c < 0
		}
		return listings[i].Record.ID < listings[j].Record.ID
	})
	return listings
}

func compareFor(key SortKey) func(a, b Listing) int {
	switch key {
	case SortByAmount:
		return func(a, b Listing) int { return b.Record.FaceAmount.Cmp(a.Record.FaceAmount) }
	case SortByMaturity:
		return func(a, b Listing) int { return cmp.Compare(a.Economics.DaysToMaturity, b.Economics.DaysToMaturity) }
	default:
		return func(a, b Listing) int { return b.Economics.YieldPct.Cmp(a.Economics.YieldPct) }
	}
}

// Sectors lists the distinct sectors of fundable invoices in alphabetical order.
func Sectors(records []model.InvoiceRecord) []string {
	seen := make(map[string]struct{})
	sectors := make([]string, 0)
	for _, r := range records {
		name := strings.TrimSpace(r.Sector)
		if name == "" || !lifecycle.IsFundable(r) || r.Validate() != nil {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		sectors = append(sectors, name)
	}
	sort.Slice(sectors, func(i, j int) bool {
		return strings.ToLower(sectors[i]) < strings.ToLower(sectors[j])
	})
	return sectors
}
