package walletcore

import (
	"github.com/x402-foundation/walletcore/chains/cosmos"
	"github.com/x402-foundation/walletcore/config"
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/signers"
)

type cosmosAdapter struct{}

func (cosmosAdapter) build(in Intent) (UnsignedTx, error) {
	if in.Cosmos == nil {
		return UnsignedTx{}, coreerr.Validation("walletcore: cosmos family requires Intent.Cosmos")
	}
	if len(in.SignerRefs) != 1 {
		return UnsignedTx{}, coreerr.Validation("walletcore: cosmos requires exactly one signer reference, got %d", len(in.SignerRefs))
	}
	tx, err := cosmos.Build(*in.Cosmos)
	if err != nil {
		return UnsignedTx{}, err
	}
	return UnsignedTx{Family: config.FamilyCosmos, cosmosTx: &tx, signerRefs: in.SignerRefs}, nil
}

func (cosmosAdapter) preimages(tx UnsignedTx) ([]PreimageRequest, error) {
	if tx.cosmosTx == nil {
		return nil, coreerr.Internal("walletcore: cosmos adapter received a non-cosmos UnsignedTx")
	}
	digest := cosmos.Preimage(*tx.cosmosTx)
	return []PreimageRequest{{
		Index:  0,
		Ref:    tx.signerRefs[0],
		Curve:  signers.CurveSecp256k1ECDSA,
		Digest: digest[:],
	}}, nil
}

func (cosmosAdapter) assemble(tx UnsignedTx, sigs []signers.RawSignature, _ [][]byte) (SignedTx, error) {
	if len(sigs) != 1 {
		return SignedTx{}, coreerr.Validation("walletcore: cosmos assemble expects exactly one signature, got %d", len(sigs))
	}
	// SIGN_MODE_DIRECT signatures are the raw 64-byte r‖s pair, never a
	// recoverable 65-byte form; strip any trailing recovery id a Signer
	// implementation shared with EVM/Bitcoin may have appended.
	sig := sigs[0].Bytes
	if len(sig) == 65 {
		sig = sig[:64]
	}
	out := SignedTx{Family: config.FamilyCosmos}
	out.cosmosTx.unsigned = *tx.cosmosTx
	out.cosmosTx.signatures = [][]byte{sig}
	return out, nil
}

func (cosmosAdapter) serialize(tx SignedTx) ([]byte, string, error) {
	raw := cosmos.Serialize(tx.cosmosTx.unsigned, tx.cosmosTx.signatures)
	return raw, cosmos.TxHash(raw), nil
}
