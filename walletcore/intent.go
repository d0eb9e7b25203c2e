// Package walletcore is the facade spec.md §6 exposes: Addresses, Build,
// Preimages, Assemble, and Serialize, dispatching across the five chain
// families behind the closed config.Family sum type rather than runtime
// type assertions on caller-supplied config (spec.md §9's redesign note).
package walletcore

import (
	"github.com/x402-foundation/walletcore/chains/btc"
	"github.com/x402-foundation/walletcore/chains/cosmos"
	"github.com/x402-foundation/walletcore/chains/evm"
	"github.com/x402-foundation/walletcore/chains/solana"
	"github.com/x402-foundation/walletcore/config"
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/signers"
)

// ERC4337Intent carries exactly one of a v0.6 or v0.7 UserOperation plus
// the EntryPoint/chain context its hash is computed over.
type ERC4337Intent struct {
	EntryPoint [20]byte
	ChainID    uint64
	V06        *evm.UserOperationV06
	V07        *evm.UserOperationV07
}

// Intent is the tagged union of per-family transaction intents: exactly
// one of the five payload fields is set, selected by Family. SignerRefs
// names, in the order each family produces signature preimages, which
// derived key signs each one — one entry for EVM/Cosmos/Solana/ERC4337,
// one per input for Bitcoin.
type Intent struct {
	Family config.Family

	EVM     *evm.Intent
	Bitcoin *btc.Intent
	Cosmos  *cosmos.Intent
	Solana  *solana.Intent
	ERC4337 *ERC4337Intent

	SignerRefs []signers.KeyRef
}

func (in Intent) validate() error {
	set := 0
	for _, present := range []bool{in.EVM != nil, in.Bitcoin != nil, in.Cosmos != nil, in.Solana != nil, in.ERC4337 != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return coreerr.Validation("walletcore: intent must carry exactly one family payload, got %d", set)
	}
	if len(in.SignerRefs) == 0 {
		return coreerr.Validation("walletcore: intent requires at least one signer reference")
	}
	return nil
}
