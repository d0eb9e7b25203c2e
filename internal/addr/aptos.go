package addr

import (
	"strings"

	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/hashing"
	"github.com/x402-foundation/walletcore/internal/primitives"
)

// aptosSingleKeyScheme is the authentication-key scheme byte Aptos appends
// before hashing an Ed25519 public key into a 32-byte account address.
const aptosSingleKeyScheme = 0x00

// AptosAddress derives the 32-byte account address: the AuthenticationKey
// sha3_256(pubkey || scheme), rendered as 0x + hex with leading zeros kept
// (full 64 hex chars), matching on-chain canonical form.
func AptosAddress(ed25519PubKey []byte) (string, error) {
	if len(ed25519PubKey) != 32 {
		return "", coreerr.Validation("addr/aptos: ed25519 public key must be 32 bytes, got %d", len(ed25519PubKey))
	}
	buf := make([]byte, 0, 33)
	buf = append(buf, ed25519PubKey...)
	buf = append(buf, aptosSingleKeyScheme)
	digest := hashing.SHA3_256(buf)
	return primitives.HexEncode(digest[:]), nil
}

// AptosAddressShort renders the same address with leading zero bytes elided
// for display, per spec.md §4.4's "compact hex (leading-zero elision for
// display)" wording.
func AptosAddressShort(full string) string {
	body := strings.TrimPrefix(full, "0x")
	body = strings.TrimLeft(body, "0")
	if body == "" {
		body = "0"
	}
	return "0x" + body
}
