package signers

import (
	"context"

	coreerr "github.com/x402-foundation/walletcore/errors"
)

// HardwareTransport is the narrow device-facing boundary a HardwareSigner
// drives. Implementations talk to a specific device family (Ledger, Trezor,
// a secure enclave) over whatever protocol that device uses; HardwareSigner
// itself knows nothing about USB/HID/BLE framing.
type HardwareTransport interface {
	// GetPublicKey asks the device for the public key at ref without any
	// user interaction (most hardware wallets serve this from firmware
	// without a confirmation screen).
	GetPublicKey(ctx context.Context, ref KeyRef) ([]byte, error)

	// RequestSignature asks the device to sign preimage at ref. This is
	// expected to block on a physical user confirmation; callers should
	// pass a ctx with a deadline or rely on the transport's own timeout.
	RequestSignature(ctx context.Context, ref KeyRef, preimage []byte) ([]byte, error)
}

// HardwareSigner adapts a physical signing device to the Signer contract
// (spec.md §4.9's "HardwareSigner (delegates to a connected device)").
// Sign may suspend for as long as the user takes to approve or reject on
// the device; the transport is responsible for surfacing that as either a
// result, a user-rejection, or a communication timeout.
type HardwareSigner struct {
	transport    HardwareTransport
	capabilities []Curve
}

// NewHardwareSigner wraps transport, advertising capabilities as the set of
// curves the underlying device supports.
func NewHardwareSigner(transport HardwareTransport, capabilities []Curve) *HardwareSigner {
	return &HardwareSigner{transport: transport, capabilities: append([]Curve{}, capabilities...)}
}

// Capabilities reports the curves this device was constructed to support.
func (s *HardwareSigner) Capabilities() []Curve {
	return append([]Curve{}, s.capabilities...)
}

// PublicKey delegates to the transport's no-confirmation public key query.
func (s *HardwareSigner) PublicKey(ctx context.Context, ref KeyRef) ([]byte, error) {
	pub, err := s.transport.GetPublicKey(ctx, ref)
	if err != nil {
		return nil, coreerr.Signer(coreerr.ReasonBackend, "", err).WithStep("get_public_key")
	}
	return pub, nil
}

// Sign delegates to the transport's confirmation-gated signing flow. A
// transport is expected to classify a declined confirmation itself via
// coreerr.ReasonUserRejected. A transport error returned after ctx is done
// surfaces as ReasonCommunicationTimeout, and any other transport error as
// ReasonBackend, so callers can distinguish "try again" from "the user said no".
func (s *HardwareSigner) Sign(ctx context.Context, ref KeyRef, preimage []byte) (RawSignature, error) {
	sig, err := s.transport.RequestSignature(ctx, ref, preimage)
	if err != nil {
		if ce, ok := err.(*coreerr.CoreError); ok {
			return RawSignature{}, ce
		}
		if ctx.Err() != nil {
			return RawSignature{}, coreerr.Signer(coreerr.ReasonCommunicationTimeout, "", ctx.Err())
		}
		return RawSignature{}, coreerr.Signer(coreerr.ReasonBackend, "", err).WithStep("sign")
	}
	return RawSignature{Curve: ref.Curve, Bytes: sig}, nil
}
