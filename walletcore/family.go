package walletcore

import (
	"github.com/x402-foundation/walletcore/config"
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/signers"
)

// familyAdapter is the fixed, small method set spec.md §9's redesign note
// calls for: "per-family modules behind an internal trait/interface with
// preimage, serialize, txid". Adding a chain family is implemented as one
// new config.Family constant and one new adapter registered in
// adapterFor, never a type switch scattered through the orchestrator.
type familyAdapter interface {
	build(Intent) (UnsignedTx, error)
	preimages(UnsignedTx) ([]PreimageRequest, error)
	// assemble attaches signatures (ordered by PreimageRequest.Index) to an
	// UnsignedTx. pubKeys is the same-length, same-order set of public keys
	// the orchestrator already collected per SignerRef (spec.md §4.8 step
	// 2) — most families ignore it (the signature alone is enough, or the
	// public key was already baked into the intent), Bitcoin's P2WPKH
	// witness stack is the one shape that needs it at assembly time.
	assemble(tx UnsignedTx, sigs []signers.RawSignature, pubKeys [][]byte) (SignedTx, error)
	serialize(SignedTx) (wireBytes []byte, txid string, err error)
}

func adapterFor(family config.Family) (familyAdapter, error) {
	switch family {
	case config.FamilyEVM:
		return evmAdapter{}, nil
	case config.FamilyBitcoin:
		return bitcoinAdapter{}, nil
	case config.FamilyCosmos:
		return cosmosAdapter{}, nil
	case config.FamilySolana:
		return solanaAdapter{}, nil
	case config.FamilyERC4337:
		return erc4337Adapter{}, nil
	default:
		return nil, coreerr.Validation("walletcore: unsupported chain family %q", family)
	}
}
