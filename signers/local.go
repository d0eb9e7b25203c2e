package signers

import (
	"context"
	"crypto/ed25519"
	"sync"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/hashing"
	"github.com/x402-foundation/walletcore/internal/keys"
)

// LocalSigner holds a derived HD seed in-process and signs directly against
// it — spec.md §4.9's "LocalSigner (holds derived secrets in-process)"
// variant. Keys are derived on demand from KeyRef.Path and cached so a
// path used across multiple signing requests is not re-derived each time.
type LocalSigner struct {
	seed keys.Seed

	mu    sync.Mutex
	nodes map[string]*keys.KeyNode
}

// NewLocalSigner wraps a BIP-39 seed for in-process derivation and signing.
func NewLocalSigner(seed keys.Seed) *LocalSigner {
	return &LocalSigner{seed: seed, nodes: make(map[string]*keys.KeyNode)}
}

// Capabilities reports the three curves LocalSigner can produce.
func (s *LocalSigner) Capabilities() []Curve {
	return []Curve{CurveSecp256k1ECDSA, CurveSecp256k1Schnorr, CurveEd25519}
}

func (s *LocalSigner) node(ref KeyRef) (*keys.KeyNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cacheKey := string(ref.Curve) + ":" + ref.Path
	if n, ok := s.nodes[cacheKey]; ok {
		return n, nil
	}

	var (
		n   *keys.KeyNode
		err error
	)
	switch ref.Curve {
	case CurveSecp256k1ECDSA, CurveSecp256k1Schnorr:
		n, err = keys.DeriveSecp256k1Path(s.seed, ref.Path)
	case CurveEd25519:
		n, err = keys.DeriveEd25519Path(s.seed, ref.Path)
	default:
		return nil, coreerr.Signer(coreerr.ReasonUnsupportedCurve, "", nil).WithStep("derive")
	}
	if err != nil {
		return nil, err
	}
	s.nodes[cacheKey] = n
	return n, nil
}

// PublicKey derives and returns the public key at ref.
func (s *LocalSigner) PublicKey(_ context.Context, ref KeyRef) ([]byte, error) {
	n, err := s.node(ref)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, n.PubKey...), nil
}

// Sign derives the key at ref and signs preimage using the scheme ref.Curve
// names.
func (s *LocalSigner) Sign(_ context.Context, ref KeyRef, preimage []byte) (RawSignature, error) {
	n, err := s.node(ref)
	if err != nil {
		return RawSignature{}, err
	}

	switch ref.Curve {
	case CurveSecp256k1ECDSA:
		priv, err := gethcrypto.ToECDSA(n.Priv)
		if err != nil {
			return RawSignature{}, coreerr.Crypto("local_signer: invalid secp256k1 scalar: %v", err)
		}
		sig, err := hashing.EcdsaSign(preimage, priv)
		if err != nil {
			return RawSignature{}, err
		}
		out := make([]byte, 65)
		copy(out[:32], sig.R[:])
		copy(out[32:64], sig.S[:])
		out[64] = sig.RecID
		return RawSignature{Curve: ref.Curve, Bytes: out}, nil

	case CurveSecp256k1Schnorr:
		priv, err := gethcrypto.ToECDSA(n.Priv)
		if err != nil {
			return RawSignature{}, coreerr.Crypto("local_signer: invalid secp256k1 scalar: %v", err)
		}
		sig, err := hashing.SchnorrSign(preimage, priv)
		if err != nil {
			return RawSignature{}, err
		}
		return RawSignature{Curve: ref.Curve, Bytes: append([]byte{}, sig[:]...)}, nil

	case CurveEd25519:
		priv := ed25519.NewKeyFromSeed(n.Priv)
		sig, err := hashing.Ed25519Sign(preimage, priv)
		if err != nil {
			return RawSignature{}, err
		}
		return RawSignature{Curve: ref.Curve, Bytes: append([]byte{}, sig[:]...)}, nil

	default:
		return RawSignature{}, coreerr.Signer(coreerr.ReasonUnsupportedCurve, "", nil).WithStep("sign")
	}
}
