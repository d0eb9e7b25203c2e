package hashing

import (
	"crypto/ecdsa"
	"math/big"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	coreerr "github.com/x402-foundation/walletcore/errors"
)

// secp256k1N is the order of the secp256k1 group, read from go-ethereum's
// curve parameters rather than hardcoded.
var secp256k1N = gethcrypto.S256().Params().N

// EcdsaSignature is the raw (r, s, recId) triple produced by secp256k1
// signing, already normalized to low-S per BIP-62/EIP-2.
type EcdsaSignature struct {
	R     [32]byte
	S     [32]byte
	RecID byte
}

var secp256k1HalfOrder = new(big.Int).Rsh(secp256k1N, 1)

// EcdsaSign signs a 32-byte message digest with a secp256k1 private key
// using RFC-6979 deterministic nonces (go-ethereum's crypto.Sign already
// derives the nonce deterministically from the message and key) and
// normalizes s to the lower half of the group order.
func EcdsaSign(msg32 []byte, priv *ecdsa.PrivateKey) (EcdsaSignature, error) {
	if len(msg32) != 32 {
		return EcdsaSignature{}, coreerr.Crypto("ecdsa_sign: message must be 32 bytes, got %d", len(msg32))
	}
	if priv == nil || priv.D == nil || priv.D.Sign() == 0 || priv.D.Cmp(secp256k1N) >= 0 {
		return EcdsaSignature{}, coreerr.Crypto("ecdsa_sign: invalid private scalar")
	}

	sig, err := gethcrypto.Sign(msg32, priv)
	if err != nil {
		return EcdsaSignature{}, coreerr.Crypto("ecdsa_sign: %v", err)
	}
	// sig is 65 bytes: r(32) || s(32) || v(1), v in {0,1}.
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	recID := sig[64]

	if s.Cmp(secp256k1HalfOrder) > 0 {
		s = new(big.Int).Sub(secp256k1N, s)
		recID ^= 1
	}

	var out EcdsaSignature
	r.FillBytes(out.R[:])
	s.FillBytes(out.S[:])
	out.RecID = recID
	return out, nil
}

// EcdsaRecover recovers the uncompressed public key from a signature and
// message digest, used for self-verification and address derivation checks.
func EcdsaRecover(msg32 []byte, sig EcdsaSignature) ([]byte, error) {
	full := make([]byte, 65)
	copy(full[0:32], sig.R[:])
	copy(full[32:64], sig.S[:])
	full[64] = sig.RecID
	pub, err := gethcrypto.Ecrecover(msg32, full)
	if err != nil {
		return nil, coreerr.Crypto("ecdsa_recover: %v", err)
	}
	return pub, nil
}

// IsLowS reports whether s is in the lower half of the secp256k1 group order.
func IsLowS(s *big.Int) bool {
	return s.Cmp(secp256k1HalfOrder) <= 0
}
