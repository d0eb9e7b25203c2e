package script

import (
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/hashing"
	"github.com/x402-foundation/walletcore/internal/primitives"
)

// TapLeafHash computes TapLeaf.hash = tagged_hash("TapLeaf",
// leafVersion || compact_size(len(script)) || script), per BIP-341.
func TapLeafHash(leafVersion byte, leafScript Script) [32]byte {
	buf := make([]byte, 0, 1+9+len(leafScript))
	buf = append(buf, leafVersion)
	buf = append(buf, primitives.VarIntBitcoin(uint64(len(leafScript)))...)
	buf = append(buf, leafScript...)
	return hashing.TaggedHash("TapLeaf", buf)
}

// TaprootOutputKey computes the BIP-341 key-path output key: given an
// internal x-only key and optional script-tree Merkle root (nil/empty for a
// key-path-only output), returns the output key's x coordinate and its
// parity bit.
func TaprootOutputKey(xOnlyInternalKey []byte, merkleRoot []byte) (outputKey [32]byte, parity byte, err error) {
	outputKey, parity, err = hashing.TweakXOnlyKey(xOnlyInternalKey, merkleRoot)
	if err != nil {
		return [32]byte{}, 0, coreerr.Crypto("taproot: %v", err)
	}
	return outputKey, parity, nil
}
