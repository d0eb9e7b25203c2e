// Package hashing wraps the pure hash functions and curve operations the
// core depends on: SHA-256, double-SHA-256, Keccak-256, RIPEMD-160,
// BLAKE2b-256, BIP-340 tagged hashes, secp256k1 ECDSA/Schnorr, and Ed25519.
package hashing

import (
	"crypto/sha256"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for BTC HASH160
	"golang.org/x/crypto/sha3"
)

// SHA256 returns the single SHA-256 digest of data.
func SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// DoubleSHA256 returns SHA-256(SHA-256(data)), Bitcoin's hashing primitive.
func DoubleSHA256(data []byte) [32]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

// Keccak256 returns the Keccak-256 digest used by EVM addresses, RLP
// sighashes, and EIP-712 struct hashing.
func Keccak256(data ...[]byte) []byte {
	return gethcrypto.Keccak256(data...)
}

// RIPEMD160 returns the RIPEMD-160 digest.
func RIPEMD160(data []byte) [20]byte {
	h := ripemd160.New()
	h.Write(data)
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Hash160 is RIPEMD160(SHA256(data)), Bitcoin's public-key/script hash.
func Hash160(data []byte) [20]byte {
	sha := SHA256(data)
	return RIPEMD160(sha[:])
}

// Blake2b256 returns the 32-byte BLAKE2b digest. No address codec in this
// module calls it: Cardano uses Blake2b224 and Aptos uses SHA3-256.
func Blake2b256(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

// Blake2b224 returns the 28-byte BLAKE2b digest CIP-19 uses for Cardano
// key hashes.
func Blake2b224(data []byte) [28]byte {
	h, _ := blake2b.New(28, nil)
	h.Write(data)
	var out [28]byte
	copy(out[:], h.Sum(nil))
	return out
}

// SHA3_256 returns the standard (non-Keccak-padded) SHA3-256 digest, used by
// Aptos's authentication-key derivation.
func SHA3_256(data []byte) [32]byte {
	return sha3.Sum256(data)
}

// TaggedHash implements BIP-340's domain-separated hash:
// sha256(sha256(tag) || sha256(tag) || msg).
func TaggedHash(tag string, msg []byte) [32]byte {
	tagHash := sha256.Sum256([]byte(tag))
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	h.Write(msg)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
