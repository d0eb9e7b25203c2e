package keys

import (
	"crypto/hmac"
	"crypto/sha512"
	"math/big"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/hashing"
)

// CurveTag is the closed set of curves a KeyNode may be tagged with.
type CurveTag int

const (
	Secp256k1 CurveTag = iota
	Ed25519Curve
)

// HardenedOffset is added to a child index to request hardened derivation.
const HardenedOffset = uint32(0x80000000)

// KeyNode is an HD tree node: a private scalar (or, for watch-only trees,
// absent), a chain code, and positional metadata.
type KeyNode struct {
	Priv       []byte // 32 bytes; nil for public-only nodes
	PubKey     []byte // compressed (secp256k1) or raw 32-byte (ed25519)
	ChainCode  [32]byte
	Depth      uint8
	ParentFP   [4]byte
	ChildIndex uint32
	Curve      CurveTag
}

// Wipe zeroizes the private scalar.
func (n *KeyNode) Wipe() {
	for i := range n.Priv {
		n.Priv[i] = 0
	}
}

var secp256k1N = gethcrypto.S256().Params().N

// MasterKeySecp256k1 derives the BIP-32 master node:
// HMAC-SHA512("Bitcoin seed", seed).
func MasterKeySecp256k1(seed Seed) (*KeyNode, error) {
	mac := hmac.New(sha512.New, []byte("Bitcoin seed"))
	mac.Write(seed[:])
	sum := mac.Sum(nil)

	il, ir := sum[:32], sum[32:]
	k := new(big.Int).SetBytes(il)
	if k.Sign() == 0 || k.Cmp(secp256k1N) >= 0 {
		return nil, coreerr.Crypto("bip32: invalid master key derived from seed")
	}

	node := &KeyNode{Priv: il, Curve: Secp256k1}
	copy(node.ChainCode[:], ir)
	node.PubKey = compressedPubKey(il)
	return node, nil
}

func compressedPubKey(priv []byte) []byte {
	x, y := gethcrypto.S256().ScalarBaseMult(priv)
	return compressPoint(x, y)
}

func compressPoint(x, y *big.Int) []byte {
	out := make([]byte, 33)
	if y.Bit(0) == 0 {
		out[0] = 0x02
	} else {
		out[0] = 0x03
	}
	xb := x.Bytes()
	copy(out[33-len(xb):], xb)
	return out
}

// DeriveChildSecp256k1 derives one BIP-32 child step. hardened requests
// data = 0x00||kpar||i; normal requests data = serP(Kpar)||i. Hardened
// derivation requires the parent's private scalar.
func DeriveChildSecp256k1(parent *KeyNode, index uint32, hardened bool) (*KeyNode, error) {
	if parent.Curve != Secp256k1 {
		return nil, coreerr.Validation("bip32: parent node is not on secp256k1")
	}
	if hardened && parent.Priv == nil {
		return nil, coreerr.Crypto("bip32: hardened derivation requires the private scalar")
	}

	var childIndex uint32
	if hardened {
		childIndex = index | HardenedOffset
	} else {
		childIndex = index
	}

	var data []byte
	if hardened {
		data = append([]byte{0x00}, parent.Priv...)
	} else {
		data = append([]byte{}, parent.PubKey...)
	}
	data = append(data, beU32(childIndex)...)

	mac := hmac.New(sha512.New, parent.ChainCode[:])
	mac.Write(data)
	sum := mac.Sum(nil)
	il, ir := sum[:32], sum[32:]

	ilNum := new(big.Int).SetBytes(il)
	if ilNum.Cmp(secp256k1N) >= 0 {
		return nil, coreerr.Crypto("bip32: derived IL is out of range, try next index")
	}

	var childPriv []byte
	if parent.Priv != nil {
		parentD := new(big.Int).SetBytes(parent.Priv)
		childD := new(big.Int).Add(ilNum, parentD)
		childD.Mod(childD, secp256k1N)
		if childD.Sign() == 0 {
			return nil, coreerr.Crypto("bip32: derived child key is zero, try next index")
		}
		childPriv = make([]byte, 32)
		childD.FillBytes(childPriv)
	}

	node := &KeyNode{
		Priv:       childPriv,
		ChainCode:  [32]byte{},
		Depth:      parent.Depth + 1,
		ChildIndex: childIndex,
		Curve:      Secp256k1,
	}
	copy(node.ChainCode[:], ir)
	copy(node.ParentFP[:], fingerprint(parent.PubKey))
	if childPriv != nil {
		node.PubKey = compressedPubKey(childPriv)
	}
	return node, nil
}

func fingerprint(pubKey []byte) []byte {
	h := hashing.Hash160(pubKey)
	return h[:4]
}

func beU32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}
