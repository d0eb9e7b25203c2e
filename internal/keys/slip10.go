package keys

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"

	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/hashing"
)

// MasterKeyEd25519 derives the SLIP-0010 Ed25519 master node:
// HMAC-SHA512("ed25519 seed", seed).
func MasterKeyEd25519(seed Seed) (*KeyNode, error) {
	mac := hmac.New(sha512.New, []byte("ed25519 seed"))
	mac.Write(seed[:])
	sum := mac.Sum(nil)

	il, ir := sum[:32], sum[32:]
	node := &KeyNode{Priv: il, Curve: Ed25519Curve}
	copy(node.ChainCode[:], ir)
	node.PubKey = ed25519PubFromSeed(il)
	return node, nil
}

// DeriveChildEd25519 derives one SLIP-0010 Ed25519 child step. SLIP-0010
// defines hardened-only derivation for Ed25519: every index is forced into
// the hardened range, and a request for a non-hardened child is rejected
// rather than silently hardened.
func DeriveChildEd25519(parent *KeyNode, index uint32, hardened bool) (*KeyNode, error) {
	if parent.Curve != Ed25519Curve {
		return nil, coreerr.Validation("slip10: parent node is not on ed25519")
	}
	if !hardened {
		return nil, coreerr.Validation("slip10: ed25519 supports hardened derivation only").
			WithStep("derive_child")
	}

	childIndex := index | HardenedOffset

	data := make([]byte, 0, 1+32+4)
	data = append(data, 0x00)
	data = append(data, parent.Priv...)
	data = append(data, beU32(childIndex)...)

	mac := hmac.New(sha512.New, parent.ChainCode[:])
	mac.Write(data)
	sum := mac.Sum(nil)
	il, ir := sum[:32], sum[32:]

	node := &KeyNode{
		Priv:       il,
		Depth:      parent.Depth + 1,
		ChildIndex: childIndex,
		Curve:      Ed25519Curve,
	}
	copy(node.ChainCode[:], ir)
	copy(node.ParentFP[:], fingerprintEd25519(parent.PubKey))
	node.PubKey = ed25519PubFromSeed(il)
	return node, nil
}

func ed25519PubFromSeed(seed []byte) []byte {
	priv := ed25519.NewKeyFromSeed(seed)
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, priv[ed25519.SeedSize:])
	return pub
}

func fingerprintEd25519(pubKey []byte) []byte {
	// SLIP-0010 fingerprints an ed25519 node from 0x00||pubkey, mirroring
	// the serP(K) convention BIP-32 uses for secp256k1 compressed points.
	buf := make([]byte, 0, 1+len(pubKey))
	buf = append(buf, 0x00)
	buf = append(buf, pubKey...)
	h := hashing.Hash160(buf)
	return h[:4]
}
