package addr

import (
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/hashing"
	"github.com/x402-foundation/walletcore/internal/primitives"
)

// CosmosAddress encodes Bech32(hrp, sha256(pubKey)[:20]) for a secp256k1
// public key, per the Cosmos SDK's AccAddress convention. hrp is a
// per-chain attribute (e.g. "cosmos", "osmo") supplied by config.ChainConfig.
func CosmosAddress(hrp string, pubKey []byte) (string, error) {
	digest := hashing.SHA256(pubKey)
	fiveBit, err := primitives.ConvertBits(digest[:20], 8, 5, true)
	if err != nil {
		return "", coreerr.Internal("addr/cosmos: %v", err)
	}
	return primitives.EncodeBech32(hrp, fiveBit, primitives.VariantBech32)
}

// DecodeCosmosAddress decodes a Bech32 Cosmos address, returning its HRP and
// 20-byte payload.
func DecodeCosmosAddress(s string) (hrp string, payload []byte, err error) {
	hrp, fiveBit, err := primitives.DecodeBech32(s, primitives.VariantBech32)
	if err != nil {
		return "", nil, coreerr.Validation("addr/cosmos: %v", err)
	}
	payload, err = primitives.ConvertBits(fiveBit, 5, 8, false)
	if err != nil {
		return "", nil, coreerr.Validation("addr/cosmos: %v", err)
	}
	if len(payload) != 20 {
		return "", nil, coreerr.Validation("addr/cosmos: decoded payload must be 20 bytes, got %d", len(payload))
	}
	return hrp, payload, nil
}
