package walletcore

import (
	"github.com/x402-foundation/walletcore/chains/solana"
	"github.com/x402-foundation/walletcore/config"
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/signers"
)

type solanaAdapter struct{}

func (solanaAdapter) build(in Intent) (UnsignedTx, error) {
	if in.Solana == nil {
		return UnsignedTx{}, coreerr.Validation("walletcore: solana family requires Intent.Solana")
	}
	msg, err := solana.Build(*in.Solana)
	if err != nil {
		return UnsignedTx{}, err
	}
	if len(in.SignerRefs) != int(msg.Header.NumRequiredSignatures) {
		return UnsignedTx{}, coreerr.Validation(
			"walletcore: solana requires %d signer references (one per required signature), got %d",
			msg.Header.NumRequiredSignatures, len(in.SignerRefs))
	}
	return UnsignedTx{Family: config.FamilySolana, solanaMsg: &msg, signerRefs: in.SignerRefs}, nil
}

// preimages returns one request per required signature, each over the full
// serialized Message — spec.md §4.7: "Ed25519 consumes them directly, no
// pre-hash". SignerRefs[i] must name the key controlling AccountKeys[i],
// the ordering solana.Build fixes by construction (signer accounts sort
// first, fee payer pinned to index 0).
func (solanaAdapter) preimages(tx UnsignedTx) ([]PreimageRequest, error) {
	if tx.solanaMsg == nil {
		return nil, coreerr.Internal("walletcore: solana adapter received a non-solana UnsignedTx")
	}
	msg := tx.solanaMsg.Serialize()
	n := int(tx.solanaMsg.Header.NumRequiredSignatures)
	reqs := make([]PreimageRequest, n)
	for i := 0; i < n; i++ {
		reqs[i] = PreimageRequest{Index: i, Ref: tx.signerRefs[i], Curve: signers.CurveEd25519, Digest: msg}
	}
	return reqs, nil
}

func (solanaAdapter) assemble(tx UnsignedTx, sigs []signers.RawSignature, _ [][]byte) (SignedTx, error) {
	n := int(tx.solanaMsg.Header.NumRequiredSignatures)
	if len(sigs) != n {
		return SignedTx{}, coreerr.Validation("walletcore: solana assemble expects %d signatures, got %d", n, len(sigs))
	}
	sigArr := make([][64]byte, n)
	for i, s := range sigs {
		if len(s.Bytes) != 64 {
			return SignedTx{}, coreerr.Validation("walletcore: solana signature %d must be 64 bytes, got %d", i, len(s.Bytes))
		}
		copy(sigArr[i][:], s.Bytes)
	}
	out := &solana.Transaction{Signatures: sigArr, Message: *tx.solanaMsg}
	return SignedTx{Family: config.FamilySolana, solanaTx: out}, nil
}

func (solanaAdapter) serialize(tx SignedTx) ([]byte, string, error) {
	if tx.solanaTx == nil {
		return nil, "", coreerr.Internal("walletcore: solana adapter received a non-solana SignedTx")
	}
	id, err := tx.solanaTx.TxID()
	if err != nil {
		return nil, "", err
	}
	return tx.solanaTx.Serialize(), id, nil
}
