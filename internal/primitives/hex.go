package primitives

import (
	"encoding/hex"
	"strings"

	coreerr "github.com/x402-foundation/walletcore/errors"
)

// HexEncode renders b as a lowercase "0x"-prefixed hex string.
func HexEncode(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// HexDecode parses a "0x"-prefixed or bare hex string.
func HexDecode(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, coreerr.Serialization("hex: invalid input: %v", err)
	}
	return b, nil
}
