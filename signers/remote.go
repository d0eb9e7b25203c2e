package signers

import (
	"context"

	coreerr "github.com/x402-foundation/walletcore/errors"
)

// RemoteSession is the network boundary a RemoteSigner drives — a
// session-linked mobile wallet or a custodial signing service reached over
// an established channel (WalletConnect-style pairing, a gRPC session, an
// HTTP API with a bearer session token). RemoteSigner owns none of that
// transport detail, only the request/response shape.
type RemoteSession interface {
	// FetchPublicKey resolves ref's public key over the session.
	FetchPublicKey(ctx context.Context, ref KeyRef) ([]byte, error)

	// RequestSignature submits preimage for signing over the session and
	// blocks until the remote party responds, the session expires, or ctx
	// is canceled.
	RequestSignature(ctx context.Context, ref KeyRef, preimage []byte) ([]byte, error)
}

// RemoteSigner adapts a network/session-linked signer (spec.md §4.9's
// "RemoteSigner (network or session-linked wallet)") to the Signer
// contract. Unlike HardwareSigner it has no local device to poll — every
// call is a round trip. A failed round trip surfaces as
// errors.ReasonCommunicationTimeout when ctx is done and as
// errors.ReasonBackend otherwise.
type RemoteSigner struct {
	session      RemoteSession
	capabilities []Curve
}

// NewRemoteSigner wraps session, advertising capabilities as the curves the
// remote party has indicated it can sign for.
func NewRemoteSigner(session RemoteSession, capabilities []Curve) *RemoteSigner {
	return &RemoteSigner{session: session, capabilities: append([]Curve{}, capabilities...)}
}

// Capabilities reports the curves this session was constructed to support.
func (s *RemoteSigner) Capabilities() []Curve {
	return append([]Curve{}, s.capabilities...)
}

// PublicKey delegates to the session's public key lookup.
func (s *RemoteSigner) PublicKey(ctx context.Context, ref KeyRef) ([]byte, error) {
	pub, err := s.session.FetchPublicKey(ctx, ref)
	if err != nil {
		return nil, classifyRemoteErr(ctx, err, "get_public_key")
	}
	return pub, nil
}

// Sign delegates to the session's signing round trip, normalizing both
// transport failures and session expiry to the same Signer-kind error
// taxonomy HardwareSigner uses, so the orchestrator need not special-case
// custody type when handling a failed signature request.
func (s *RemoteSigner) Sign(ctx context.Context, ref KeyRef, preimage []byte) (RawSignature, error) {
	sig, err := s.session.RequestSignature(ctx, ref, preimage)
	if err != nil {
		return RawSignature{}, classifyRemoteErr(ctx, err, "sign")
	}
	return RawSignature{Curve: ref.Curve, Bytes: sig}, nil
}

func classifyRemoteErr(ctx context.Context, err error, step string) error {
	if ce, ok := err.(*coreerr.CoreError); ok {
		return ce
	}
	if ctx.Err() != nil {
		return coreerr.Signer(coreerr.ReasonCommunicationTimeout, "", ctx.Err()).WithStep(step)
	}
	return coreerr.Signer(coreerr.ReasonBackend, "", err).WithStep(step)
}
