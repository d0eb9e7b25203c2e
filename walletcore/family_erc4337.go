package walletcore

import (
	"encoding/hex"

	"github.com/x402-foundation/walletcore/chains/evm"
	"github.com/x402-foundation/walletcore/config"
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/signers"
)

type erc4337Adapter struct{}

func (erc4337Adapter) build(in Intent) (UnsignedTx, error) {
	if in.ERC4337 == nil {
		return UnsignedTx{}, coreerr.Validation("walletcore: erc4337 family requires Intent.ERC4337")
	}
	if len(in.SignerRefs) != 1 {
		return UnsignedTx{}, coreerr.Validation("walletcore: erc4337 requires exactly one signer reference, got %d", len(in.SignerRefs))
	}
	hasV06 := in.ERC4337.V06 != nil
	hasV07 := in.ERC4337.V07 != nil
	if hasV06 == hasV07 {
		return UnsignedTx{}, coreerr.Validation("walletcore: erc4337 intent must set exactly one of V06 or V07")
	}

	u := &erc4337Unsigned{entryPoint: in.ERC4337.EntryPoint, chainID: in.ERC4337.ChainID}
	if hasV06 {
		u.v06 = in.ERC4337.V06
	} else {
		packed := evm.PackV07(*in.ERC4337.V07)
		u.v07 = &packed
	}
	return UnsignedTx{Family: config.FamilyERC4337, erc4337Tx: u, signerRefs: in.SignerRefs}, nil
}

func (erc4337Adapter) preimages(tx UnsignedTx) ([]PreimageRequest, error) {
	if tx.erc4337Tx == nil {
		return nil, coreerr.Internal("walletcore: erc4337 adapter received a non-erc4337 UnsignedTx")
	}
	u := tx.erc4337Tx

	var (
		digest [32]byte
		err    error
	)
	if u.v06 != nil {
		digest, err = evm.UserOpHash(*u.v06, u.entryPoint, u.chainID)
	} else {
		digest, err = evm.UserOpHash(*u.v07, u.entryPoint, u.chainID)
	}
	if err != nil {
		return nil, err
	}
	return []PreimageRequest{{
		Index:  0,
		Ref:    tx.signerRefs[0],
		Curve:  signers.CurveSecp256k1ECDSA,
		Digest: digest[:],
	}}, nil
}

func (erc4337Adapter) assemble(tx UnsignedTx, sigs []signers.RawSignature, _ [][]byte) (SignedTx, error) {
	if len(sigs) != 1 {
		return SignedTx{}, coreerr.Validation("walletcore: erc4337 assemble expects exactly one signature, got %d", len(sigs))
	}
	u := tx.erc4337Tx
	out := &signedERC4337{entryPoint: u.entryPoint, chainID: u.chainID, v06: u.v06, v07: u.v07, signature: sigs[0].Bytes}
	return SignedTx{Family: config.FamilyERC4337, erc4337Tx: out}, nil
}

// serialize recomputes the UserOperation hash and appends the signature.
// Rendering the ERC-4337 bundler RPC's `0x`-prefixed hex JSON document is
// left to the caller (spec.md §6 names that format but this core's
// wire-format authority stops at producing signed bytes and a txid, not a
// JSON document); the "wire bytes" here are the digest this core already
// computed for hashing, concatenated with the trailing signature.
func (erc4337Adapter) serialize(tx SignedTx) ([]byte, string, error) {
	if tx.erc4337Tx == nil {
		return nil, "", coreerr.Internal("walletcore: erc4337 adapter received a non-erc4337 SignedTx")
	}
	u := tx.erc4337Tx

	var (
		digest [32]byte
		err    error
	)
	if u.v06 != nil {
		digest, err = evm.UserOpHash(*u.v06, u.entryPoint, u.chainID)
	} else {
		digest, err = evm.UserOpHash(*u.v07, u.entryPoint, u.chainID)
	}
	if err != nil {
		return nil, "", err
	}

	wire := append(append([]byte{}, digest[:]...), u.signature...)
	return wire, "0x" + hex.EncodeToString(digest[:]), nil
}
