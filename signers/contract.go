// Package signers defines the external-signer contract (L8) the
// orchestrator drives uniformly across local, hardware, and remote key
// custody, and provides the in-process LocalSigner implementation.
package signers

import "context"

// Curve names one of the signing schemes a KeyRef resolves to; a Signer
// implementation advertises which of these it supports via Capabilities.
type Curve string

const (
	CurveSecp256k1ECDSA   Curve = "secp256k1-ecdsa"
	CurveSecp256k1Schnorr Curve = "secp256k1-schnorr"
	CurveEd25519          Curve = "ed25519"
)

// KeyRef identifies one signing key by its HD derivation path; Curve
// selects which tree (BIP-32 secp256k1 or SLIP-0010 Ed25519) and signing
// scheme that path resolves under.
type KeyRef struct {
	Curve Curve
	Path  string
}

// RawSignature is the signer's output for one preimage: the raw
// curve-specific signature bytes (65-byte r‖s‖recId for ECDSA, 64-byte
// R‖s for Schnorr/Ed25519) and the curve that produced them, so a caller
// need not separately track which scheme was requested.
type RawSignature struct {
	Curve Curve
	Bytes []byte
}

// KeyProvider resolves a KeyRef to its public key, without revealing any
// private material — the orchestrator uses this to populate a builder's
// signer slots (spec.md §4.8 step 2) independently of signing itself.
type KeyProvider interface {
	PublicKey(ctx context.Context, ref KeyRef) ([]byte, error)
}

// Signer is the polymorphic external-signer contract (spec.md §4.9):
// uniform across LocalSigner, HardwareSigner, and RemoteSigner. Sign may
// suspend indefinitely for hardware/remote implementations and may fail
// with a *errors.CoreError carrying errors.ReasonUserRejected or
// errors.ReasonCommunicationTimeout; the orchestrator treats all three
// implementations identically beyond that contract.
type Signer interface {
	// Capabilities lists the curves this signer can produce signatures
	// for; the orchestrator checks membership before issuing a Sign call.
	Capabilities() []Curve

	// Sign requests a signature over preimage (a bytes32 digest for
	// ECDSA/Schnorr/most families, or the raw message for Ed25519, which
	// hashes internally) using the key at ref.
	Sign(ctx context.Context, ref KeyRef, preimage []byte) (RawSignature, error)
}

// KeySigner composes KeyProvider and Signer — the combination a LocalSigner
// satisfies, and the minimum a caller needs to both place public keys and
// request signatures against the same key material.
type KeySigner interface {
	KeyProvider
	Signer
}
