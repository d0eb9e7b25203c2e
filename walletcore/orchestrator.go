package walletcore

import (
	"context"

	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/signers"
)

// SignResult is the orchestrator's final output: the broadcastable wire
// bytes and the chain's canonical transaction id, per spec.md §4.8 step 5.
type SignResult struct {
	WireBytes []byte
	TxID      string
}

// Orchestrator drives the L7 pipeline spec.md §4.8 describes, uniformly
// across every chain family and every Signer variant (local, hardware,
// remote — §4.9). It holds no state; Sign is the only entry point.
type Orchestrator struct {
	core WalletCore
}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator() *Orchestrator { return &Orchestrator{core: WalletCore{}} }

// Sign runs spec.md §4.8's five steps: build the unsigned transaction,
// collect the signer-supplied public keys, compute each required
// pre-image, request a signature for each from signer, attach the
// signatures in the family's prescribed placement, and serialize. The only
// suspension points are the calls into keyProvider and signer — everything
// else here is synchronous, per §5's concurrency model.
func (o *Orchestrator) Sign(ctx context.Context, intent Intent, keyProvider signers.KeyProvider, signer signers.Signer) (SignResult, error) {
	unsigned, err := o.core.Build(intent)
	if err != nil {
		return SignResult{}, err
	}

	pubKeys := make([][]byte, len(intent.SignerRefs))
	for i, ref := range intent.SignerRefs {
		pub, err := keyProvider.PublicKey(ctx, ref)
		if err != nil {
			return SignResult{}, err
		}
		pubKeys[i] = pub
	}

	reqs, err := o.core.Preimages(unsigned)
	if err != nil {
		return SignResult{}, err
	}

	if err := checkCapabilities(signer, reqs); err != nil {
		return SignResult{}, err
	}

	sigs := make([]signers.RawSignature, len(reqs))
	for _, req := range reqs {
		sig, err := signer.Sign(ctx, req.Ref, req.Digest)
		if err != nil {
			return SignResult{}, err
		}
		sigs[req.Index] = sig
	}

	signed, err := o.core.Assemble(unsigned, sigs, pubKeys)
	if err != nil {
		return SignResult{}, err
	}

	wireBytes, txid, err := o.core.Serialize(signed)
	if err != nil {
		return SignResult{}, err
	}
	return SignResult{WireBytes: wireBytes, TxID: txid}, nil
}

func checkCapabilities(signer signers.Signer, reqs []PreimageRequest) error {
	caps := make(map[signers.Curve]bool)
	for _, c := range signer.Capabilities() {
		caps[c] = true
	}
	for _, req := range reqs {
		if !caps[req.Curve] {
			return coreerr.Signer(coreerr.ReasonUnsupportedCurve, "", nil).WithStep("sign")
		}
	}
	return nil
}
