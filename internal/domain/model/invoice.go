package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/factra/internal/domain/errors"
)

const (
	// MaxRating is the upper bound of the rating scale stored in tenths.
	MaxRating = 50
	// MaxDiscountRate is the exclusive upper bound of the discount percentage.
	MaxDiscountRate = 100

	rawInvoiceFields = 10
)

// RawInvoice is the positional tuple returned by the ledger for a single invoice:
// [id, issuer, buyer, amount, dueDate, status, businessName, sector, rating, discountRate].
type RawInvoice struct {
	ID           int64
	Issuer       string
	Buyer        string
	Amount       decimal.Decimal
	DueDate      int64
	Status       int64
	BusinessName string
	Sector       string
	Rating       int64
	DiscountRate int64
}

// InvoiceRecord is a validated, immutable view of one invoice.
type InvoiceRecord struct {
	ID           int64
	Issuer       Address
	Buyer        Address
	FaceAmount   decimal.Decimal
	DueDate      time.Time
	Status       Status
	BusinessName string
	Sector       string
	Rating       int
	DiscountRate int
}

// FromRaw converts a ledger tuple into a validated record.
func FromRaw(raw RawInvoice) (InvoiceRecord, error) {
	if raw.ID < 1 {
		return InvoiceRecord{}, &domainErrors.ValidationError{Field: "id", Reason: fmt.Sprintf("%d must be positive", raw.ID)}
	}
	if err := validateAmount(raw.Amount); err != nil {
		return InvoiceRecord{}, err
	}
	if raw.DiscountRate < 0 || raw.DiscountRate >= MaxDiscountRate {
		return InvoiceRecord{}, &domainErrors.ValidationError{Field: "discountRate", Reason: fmt.Sprintf("%d outside [0,%d)", raw.DiscountRate, MaxDiscountRate)}
	}
	if raw.Rating < 0 || raw.Rating > MaxRating {
		return InvoiceRecord{}, &domainErrors.ValidationError{Field: "rating", Reason: fmt.Sprintf("%d outside [0,%d]", raw.Rating, MaxRating)}
	}
	status, ok := ParseStatus(raw.Status)
	if !ok {
		return InvoiceRecord{}, &domainErrors.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown code %d", raw.Status)}
	}

	return InvoiceRecord{
		ID:           raw.ID,
		Issuer:       Address(strings.ToLower(strings.TrimSpace(raw.Issuer))),
		Buyer:        Address(strings.ToLower(strings.TrimSpace(raw.Buyer))),
		FaceAmount:   raw.Amount,
		DueDate:      time.Unix(raw.DueDate, 0).UTC(),
		Status:       status,
		BusinessName: raw.BusinessName,
		Sector:       raw.Sector,
		Rating:       int(raw.Rating),
		DiscountRate: int(raw.DiscountRate),
	}, nil
}

// Validate re-checks the record invariants.
func (r InvoiceRecord) Validate() error {
	if r.ID < 1 {
		return &domainErrors.ValidationError{Field: "id", Reason: fmt.Sprintf("%d must be positive", r.ID)}
	}
	if err := validateAmount(r.FaceAmount); err != nil {
		return err
	}
	switch {
	case r.DiscountRate < 0 || r.DiscountRate >= MaxDiscountRate:
		return &domainErrors.ValidationError{Field: "discountRate", Reason: fmt.Sprintf("%d outside [0,%d)", r.DiscountRate, MaxDiscountRate)}
	case r.Rating < 0 || r.Rating > MaxRating:
		return &domainErrors.ValidationError{Field: "rating", Reason: fmt.Sprintf("%d outside [0,%d]", r.Rating, MaxRating)}
	case !r.Status.Valid():
		return &domainErrors.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown code %d", r.Status)}
	}
	return nil
}

// UnmarshalJSON decodes the positional ledger tuple. Integer members may be
// JSON numbers or decimal strings, since uint256 values arrive quoted.
func (r *RawInvoice) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode invoice tuple: %w", err)
	}
	if len(fields) != rawInvoiceFields {
		return fmt.Errorf("decode invoice tuple: expected %d fields, got %d", rawInvoiceFields, len(fields))
	}

	var out RawInvoice
	ints := []struct {
		name string
		idx  int
		dst  *int64
	}{
		{"id", 0, &out.ID},
		{"dueDate", 4, &out.DueDate},
		{"status", 5, &out.Status},
		{"rating", 8, &out.Rating},
		{"discountRate", 9, &out.DiscountRate},
	}
	for _, f := range ints {
		v, err := decodeInt(fields[f.idx])
		if err != nil {
			return fmt.Errorf("decode invoice %s: %w", f.name, err)
		}
		*f.dst = v
	}

	strs := []struct {
		name string
		idx  int
		dst  *string
	}{
		{"issuer", 1, &out.Issuer},
		{"buyer", 2, &out.Buyer},
		{"businessName", 6, &out.BusinessName},
		{"sector", 7, &out.Sector},
	}
	for _, f := range strs {
		if err := json.Unmarshal(fields[f.idx], f.dst); err != nil {
			return fmt.Errorf("decode invoice %s: %w", f.name, err)
		}
	}

	if err := out.Amount.UnmarshalJSON(fields[3]); err != nil {
		return fmt.Errorf("decode invoice amount: %w", err)
	}

	*r = out
	return nil
}

// MarshalJSON encodes the record back into the ledger tuple form.
func (r RawInvoice) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{
		r.ID,
		r.Issuer,
		r.Buyer,
		r.Amount.String(),
		r.DueDate,
		r.Status,
		r.BusinessName,
		r.Sector,
		r.Rating,
		r.DiscountRate,
	})
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &domainErrors.ValidationError{Field: "faceAmount", Reason: "must be positive"}
	}
	if !amount.IsInteger() {
		return &domainErrors.ValidationError{Field: "faceAmount", Reason: "must be a whole number of base units"}
	}
	return nil
}

func decodeInt(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		return strconv.ParseInt(s, 10, 64)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n.Int64()
}
