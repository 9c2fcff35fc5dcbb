// Package address renders wallet addresses in mixed-case checksum form.
package address

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Checksum returns the EIP-55 form of a 0x-prefixed 20-byte hex address.
// Input that is not a well-formed address is returned unchanged.
func Checksum(addr string) string {
	if len(addr) != 42 || !strings.HasPrefix(strings.ToLower(addr), "0x") {
		return addr
	}
	lower := strings.ToLower(addr[2:])
	if _, err := hex.DecodeString(lower); err != nil {
		return addr
	}

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	digest := h.Sum(nil)

	out := make([]byte, 0, 42)
	out = append(out, '0', 'x')
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if c >= 'a' && c <= 'f' && nibble&0x0f >= 8 {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// IsChecksummed reports whether a mixed-case address carries a valid checksum.
// All-lowercase and all-uppercase addresses carry no checksum and are accepted.
func IsChecksummed(addr string) bool {
	if len(addr) != 42 {
		return false
	}
	body := addr[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	return Checksum(addr) == addr
}
