package walletcore

import (
	"github.com/x402-foundation/walletcore/chains/btc"
	"github.com/x402-foundation/walletcore/chains/cosmos"
	"github.com/x402-foundation/walletcore/chains/evm"
	"github.com/x402-foundation/walletcore/chains/solana"
	"github.com/x402-foundation/walletcore/config"
	"github.com/x402-foundation/walletcore/signers"
)

// erc4337Unsigned holds the version-appropriate packed UserOperation
// together with the EntryPoint/chain context its hash binds to.
type erc4337Unsigned struct {
	entryPoint [20]byte
	chainID    uint64
	v06        *evm.UserOperationV06
	v07        *evm.PackedUserOperation
}

// UnsignedTx is the "Ready(unsigned)" state of spec.md §4.7's state
// machine: a built, not-yet-signed transaction in exactly one family's
// native shape, carried alongside the SignerRefs Build copied from Intent.
type UnsignedTx struct {
	Family config.Family

	evmTx     *evm.UnsignedTx
	bitcoinTx *btc.UnsignedTx
	cosmosTx  *cosmos.UnsignedTx
	solanaMsg *solana.Message
	erc4337Tx *erc4337Unsigned

	signerRefs []signers.KeyRef
}

// PreimageRequest is one digest the orchestrator must obtain a signature
// over: Index positions it against SignerRefs/UnsignedTx.signerRefs (one
// entry for EVM/Cosmos/Solana/ERC4337, one per Bitcoin input).
type PreimageRequest struct {
	Index  int
	Ref    signers.KeyRef
	Curve  signers.Curve
	Digest []byte
}

// SignedTx is the "Signed(tx)" state: an UnsignedTx with a signature
// attached per PreimageRequest, ready for Serialize.
type SignedTx struct {
	Family config.Family

	evmTx     *evm.SignedTx
	bitcoinTx *btc.SignedTx
	cosmosTx  struct {
		unsigned   cosmos.UnsignedTx
		signatures [][]byte
	}
	solanaTx  *solana.Transaction
	erc4337Tx *signedERC4337
}

type signedERC4337 struct {
	entryPoint [20]byte
	chainID    uint64
	v06        *evm.UserOperationV06
	v07        *evm.PackedUserOperation
	signature  []byte
}
