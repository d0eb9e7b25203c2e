package hashing

import (
	"crypto/ed25519"

	coreerr "github.com/x402-foundation/walletcore/errors"
)

// Ed25519Signature is the 64-byte RFC 8032 signature.
type Ed25519Signature [64]byte

// Ed25519Sign signs msg (no pre-hash) with a 64-byte ed25519.PrivateKey
// (the form ed25519.NewKeyFromSeed derives from a 32-byte seed).
func Ed25519Sign(msg []byte, priv ed25519.PrivateKey) (Ed25519Signature, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return Ed25519Signature{}, coreerr.Crypto("ed25519_sign: private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(priv))
	}
	sig := ed25519.Sign(priv, msg)
	var out Ed25519Signature
	copy(out[:], sig)
	return out, nil
}

// Ed25519Verify verifies a signature against a 32-byte public key.
func Ed25519Verify(pub ed25519.PublicKey, msg []byte, sig Ed25519Signature) bool {
	return ed25519.Verify(pub, msg, sig[:])
}

// Ed25519FromSeed derives the (private key, public key) pair from a 32-byte
// seed, as used by SLIP-0010 derivation.
func Ed25519FromSeed(seed []byte) (ed25519.PrivateKey, ed25519.PublicKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, nil, coreerr.Crypto("ed25519: seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return priv, pub, nil
}
