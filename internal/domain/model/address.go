package model

import (
	"encoding/hex"
	"strings"

	domainErrors "github.com/polkiloo/factra/internal/domain/errors"
)

// ZeroAddress is the ledger placeholder for "no account".
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

// Address is a 20-byte account identifier in 0x-prefixed hex form.
type Address string

// ParseAddress validates and normalizes a hex account address to lower case.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if len(s) != 42 || !strings.HasPrefix(strings.ToLower(s), "0x") {
		return "", domainErrors.ErrInvalidAddress
	}
	if _, err := hex.DecodeString(s[2:]); err != nil {
		return "", domainErrors.ErrInvalidAddress
	}
	return Address(strings.ToLower(s)), nil
}

// IsZero reports whether the address is absent or the zero placeholder.
func (a Address) IsZero() bool {
	return a == "" || strings.EqualFold(string(a), string(ZeroAddress))
}

// Equal compares two addresses case-insensitively. Absent addresses never match.
func (a Address) Equal(other Address) bool {
	if a.IsZero() || other.IsZero() {
		return false
	}
	return strings.EqualFold(string(a), string(other))
}

func (a Address) String() string {
	return string(a)
}
