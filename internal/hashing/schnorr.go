package hashing

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	coreerr "github.com/x402-foundation/walletcore/errors"
)

// SchnorrSignature is the 64-byte (R.x, s) BIP-340 signature.
type SchnorrSignature [64]byte

var curve = gethcrypto.S256()

func curveParams() elliptic.CurveParams { return *curve.Params() }

// liftX lifts an x-only coordinate to the curve point with even y, per
// BIP-340's lift_x(x). Returns an error if x is not on the curve.
func liftX(x *big.Int) (y *big.Int, err error) {
	p := curveParams().P
	// y^2 = x^3 + 7 mod p
	x3 := new(big.Int).Exp(x, big.NewInt(3), p)
	ySq := new(big.Int).Add(x3, big.NewInt(7))
	ySq.Mod(ySq, p)
	y = new(big.Int).ModSqrt(ySq, p)
	if y == nil {
		return nil, coreerr.Crypto("schnorr: x is not a valid curve x-coordinate")
	}
	if y.Bit(0) != 0 {
		y = new(big.Int).Sub(p, y)
	}
	return y, nil
}

// SchnorrSign signs a 32-byte message per BIP-340. It takes no auxiliary
// randomness argument: aux is always 32 zero bytes, so signing is
// deterministic.
func SchnorrSign(msg32 []byte, priv *ecdsa.PrivateKey) (SchnorrSignature, error) {
	if len(msg32) != 32 {
		return SchnorrSignature{}, coreerr.Crypto("schnorr_sign: message must be 32 bytes, got %d", len(msg32))
	}
	n := curveParams().N
	d0 := priv.D
	if d0.Sign() == 0 || d0.Cmp(n) >= 0 {
		return SchnorrSignature{}, coreerr.Crypto("schnorr_sign: invalid private scalar")
	}

	Px, Py := curve.ScalarBaseMult(d0.Bytes())
	d := new(big.Int).Set(d0)
	if Py.Bit(0) != 0 {
		d = new(big.Int).Sub(n, d)
	}

	aux := make([]byte, 32) // zero auxiliary randomness per BIP-340 test vectors
	t := xorBytes(leftPad32(d.Bytes()), TaggedHash("BIP0340/aux", aux)[:])

	xOnlyPx := leftPad32(Px.Bytes())
	kHashInput := append(append([]byte{}, t...), append(xOnlyPx, msg32...)...)
	kHash := TaggedHash("BIP0340/nonce", kHashInput)
	k0 := new(big.Int).Mod(new(big.Int).SetBytes(kHash[:]), n)
	if k0.Sign() == 0 {
		return SchnorrSignature{}, coreerr.Crypto("schnorr_sign: derived nonce is zero")
	}

	Rx, Ry := curve.ScalarBaseMult(k0.Bytes())
	k := new(big.Int).Set(k0)
	if Ry.Bit(0) != 0 {
		k = new(big.Int).Sub(n, k)
	}

	rBytes := leftPad32(Rx.Bytes())
	eHashInput := append(append([]byte{}, rBytes...), append(xOnlyPx, msg32...)...)
	eHash := TaggedHash("BIP0340/challenge", eHashInput)
	e := new(big.Int).Mod(new(big.Int).SetBytes(eHash[:]), n)

	s := new(big.Int).Mod(new(big.Int).Add(k, new(big.Int).Mul(e, d)), n)

	var out SchnorrSignature
	copy(out[:32], rBytes)
	copy(out[32:], leftPad32(s.Bytes()))
	return out, nil
}

// SchnorrVerify verifies a BIP-340 signature against an x-only public key.
func SchnorrVerify(msg32 []byte, pubX []byte, sig SchnorrSignature) (bool, error) {
	n := curveParams().N
	p := curveParams().P

	px := new(big.Int).SetBytes(pubX)
	py, err := liftX(px)
	if err != nil {
		return false, err
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:])
	if r.Cmp(p) >= 0 || s.Cmp(n) >= 0 {
		return false, nil
	}

	eHashInput := append(append([]byte{}, leftPad32(r.Bytes())...), append(leftPad32(px.Bytes()), msg32...)...)
	eHash := TaggedHash("BIP0340/challenge", eHashInput)
	e := new(big.Int).Mod(new(big.Int).SetBytes(eHash[:]), n)

	sGx, sGy := curve.ScalarBaseMult(s.Bytes())
	eNeg := new(big.Int).Sub(n, e)
	ePx, ePy := curve.ScalarMult(px, py, eNeg.Bytes())
	Rx, Ry := curve.Add(sGx, sGy, ePx, ePy)
	if Rx.Sign() == 0 && Ry.Sign() == 0 {
		return false, nil
	}
	if Ry.Bit(0) != 0 {
		return false, nil
	}
	return Rx.Cmp(r) == 0, nil
}

// TweakXOnlyKey implements BIP-341's key tweak: given internal x-only key P
// and a (possibly empty, for key-path-only outputs) Merkle root, computes
// t = int(tagged_hash("TapTweak", P || root)), Q = P + t*G, and returns Q's
// x-only coordinate plus its parity bit (Q.y & 1).
func TweakXOnlyKey(xOnlyInternalKey []byte, merkleRoot []byte) (outputKey [32]byte, parity byte, err error) {
	if len(xOnlyInternalKey) != 32 {
		return [32]byte{}, 0, coreerr.Crypto("taproot_tweak: internal key must be 32 bytes, got %d", len(xOnlyInternalKey))
	}
	px := new(big.Int).SetBytes(xOnlyInternalKey)
	py, err := liftX(px)
	if err != nil {
		return [32]byte{}, 0, err
	}

	tweakInput := append(append([]byte{}, xOnlyInternalKey...), merkleRoot...)
	tHash := TaggedHash("TapTweak", tweakInput)
	n := curveParams().N
	t := new(big.Int).Mod(new(big.Int).SetBytes(tHash[:]), n)

	tGx, tGy := curve.ScalarBaseMult(t.Bytes())
	Qx, Qy := curve.Add(px, py, tGx, tGy)
	if Qx.Sign() == 0 && Qy.Sign() == 0 {
		return [32]byte{}, 0, coreerr.Crypto("taproot_tweak: tweaked point is the point at infinity")
	}

	var out [32]byte
	copy(out[:], leftPad32(Qx.Bytes()))
	parity = byte(Qy.Bit(0))
	return out, parity, nil
}

func leftPad32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
