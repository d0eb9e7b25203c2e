package primitives

import (
	"bytes"

	"github.com/mr-tron/base58"

	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/hashing"
)

// Base58Encode encodes b as Base58 (Bitcoin alphabet), preserving leading
// zero bytes as leading '1' characters.
func Base58Encode(b []byte) string {
	return base58.Encode(b)
}

// Base58Decode reverses Base58Encode.
func Base58Decode(s string) ([]byte, error) {
	return base58.Decode(s)
}

// Base58CheckEncode encodes version||payload with a trailing 4-byte
// double-SHA-256 checksum, then Base58-encodes the result.
func Base58CheckEncode(version byte, payload []byte) string {
	body := append([]byte{version}, payload...)
	sum := hashing.DoubleSHA256(body)
	full := append(body, sum[:4]...)
	return base58.Encode(full)
}

// Base58CheckDecode reverses Base58CheckEncode, verifying the checksum.
func Base58CheckDecode(s string) (version byte, payload []byte, err error) {
	full, derr := base58.Decode(s)
	if derr != nil {
		return 0, nil, derr
	}
	if len(full) < 5 {
		return 0, nil, coreerr.Validation("base58check: payload too short")
	}
	body, checksum := full[:len(full)-4], full[len(full)-4:]
	sum := hashing.DoubleSHA256(body)
	if !bytes.Equal(sum[:4], checksum) {
		return 0, nil, coreerr.Validation("base58check: checksum mismatch")
	}
	return body[0], body[1:], nil
}
