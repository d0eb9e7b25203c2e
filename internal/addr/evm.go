// Package addr implements the per-family address codecs of §4.4: deriving
// a network address from a public key and, where the encoding supports it,
// decoding/validating one back.
package addr

import (
	"strings"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/hashing"
	"github.com/x402-foundation/walletcore/internal/primitives"
)

// EVMAddress derives the 20-byte EVM address from a secp256k1 public key,
// compressed (33 bytes) or uncompressed (65 bytes, 0x04 prefix).
func EVMAddress(pubKey []byte) ([20]byte, error) {
	uncompressed, err := toUncompressed(pubKey)
	if err != nil {
		return [20]byte{}, err
	}
	digest := hashing.Keccak256(uncompressed[1:])
	var out [20]byte
	copy(out[:], digest[12:])
	return out, nil
}

func toUncompressed(pubKey []byte) ([]byte, error) {
	switch len(pubKey) {
	case 65:
		if pubKey[0] != 0x04 {
			return nil, coreerr.Validation("addr/evm: uncompressed key must start with 0x04")
		}
		return pubKey, nil
	case 33:
		x, y := gethcrypto.DecompressPubkey(pubKey)
		if x == nil {
			return nil, coreerr.Validation("addr/evm: invalid compressed public key")
		}
		out := make([]byte, 65)
		out[0] = 0x04
		xb, yb := x.Bytes(), y.Bytes()
		copy(out[1+32-len(xb):33], xb)
		copy(out[33+32-len(yb):65], yb)
		return out, nil
	default:
		return nil, coreerr.Validation("addr/evm: public key must be 33 or 65 bytes, got %d", len(pubKey))
	}
}

// EIP55Checksum renders a 20-byte address with EIP-55 mixed-case checksum:
// a hex nibble is upper-cased iff the corresponding nibble of
// keccak256(lowercase_hex_without_0x) is >= 8.
func EIP55Checksum(addr [20]byte) string {
	lower := primitives.HexEncode(addr[:])[2:] // strip 0x
	hash := hashing.Keccak256([]byte(lower))

	out := make([]byte, len(lower))
	for i, c := range []byte(lower) {
		if c >= '0' && c <= '9' {
			out[i] = c
			continue
		}
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			out[i] = c - 'a' + 'A'
		} else {
			out[i] = c
		}
	}
	return "0x" + string(out)
}

// ParseEVMAddress decodes a 0x-prefixed hex address, rejecting a mixed-case
// string whose EIP-55 checksum does not match its own casing.
func ParseEVMAddress(s string) ([20]byte, error) {
	raw, err := primitives.HexDecode(s)
	if err != nil {
		return [20]byte{}, coreerr.Validation("addr/evm: %v", err)
	}
	if len(raw) != 20 {
		return [20]byte{}, coreerr.Validation("addr/evm: address must decode to 20 bytes, got %d", len(raw))
	}
	var out [20]byte
	copy(out[:], raw)

	body := strings.TrimPrefix(s, "0x")
	body = strings.TrimPrefix(body, "0X")
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return out, nil
	}
	want := EIP55Checksum(out)
	if !strings.EqualFold(want, s) || want[2:] != body {
		return [20]byte{}, coreerr.Validation("addr/evm: EIP-55 checksum mismatch for %q", s)
	}
	return out, nil
}
