package addr

import (
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/primitives"
)

// SolanaAddress is base58(ed25519_pk); per spec.md §9's explicit redesign
// note, Solana addresses are the raw Ed25519 public key and nothing else —
// no hashing step, unlike every other family here.
func SolanaAddress(pubKey []byte) (string, error) {
	if len(pubKey) != 32 {
		return "", coreerr.Validation("addr/solana: ed25519 public key must be 32 bytes, got %d", len(pubKey))
	}
	return primitives.Base58Encode(pubKey), nil
}

// ParseSolanaAddress decodes a base58 Solana address back to its raw
// 32-byte Ed25519 public key.
func ParseSolanaAddress(s string) ([32]byte, error) {
	raw, err := primitives.Base58Decode(s)
	if err != nil {
		return [32]byte{}, coreerr.Validation("addr/solana: %v", err)
	}
	if len(raw) != 32 {
		return [32]byte{}, coreerr.Validation("addr/solana: decoded address must be 32 bytes, got %d", len(raw))
	}
	var out [32]byte
	copy(out[:], raw)
	return out, nil
}
