package walletcore

import (
	"encoding/hex"
	"math/big"

	"github.com/x402-foundation/walletcore/chains/evm"
	"github.com/x402-foundation/walletcore/config"
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/signers"
)

type evmAdapter struct{}

func (evmAdapter) build(in Intent) (UnsignedTx, error) {
	if in.EVM == nil {
		return UnsignedTx{}, coreerr.Validation("walletcore: evm family requires Intent.EVM")
	}
	if len(in.SignerRefs) != 1 {
		return UnsignedTx{}, coreerr.Validation("walletcore: evm requires exactly one signer reference, got %d", len(in.SignerRefs))
	}
	tx, err := evm.Build(*in.EVM)
	if err != nil {
		return UnsignedTx{}, err
	}
	return UnsignedTx{Family: config.FamilyEVM, evmTx: &tx, signerRefs: in.SignerRefs}, nil
}

func (evmAdapter) preimages(tx UnsignedTx) ([]PreimageRequest, error) {
	if tx.evmTx == nil {
		return nil, coreerr.Internal("walletcore: evm adapter received a non-evm UnsignedTx")
	}
	digest, err := evm.Preimage(*tx.evmTx)
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

func (evmAdapter) assemble(tx UnsignedTx, sigs []signers.RawSignature, _ [][]byte) (SignedTx, error) {
	if len(sigs) != 1 {
		return SignedTx{}, coreerr.Validation("walletcore: evm assemble expects exactly one signature, got %d", len(sigs))
	}
	sig, err := decodeECDSASignature(sigs[0].Bytes, tx.evmTx.ChainID, tx.evmTx.Type)
	if err != nil {
		return SignedTx{}, err
	}
	return SignedTx{Family: config.FamilyEVM, evmTx: &evm.SignedTx{Unsigned: *tx.evmTx, Signature: sig}}, nil
}

func (evmAdapter) serialize(tx SignedTx) ([]byte, string, error) {
	if tx.evmTx == nil {
		return nil, "", coreerr.Internal("walletcore: evm adapter received a non-evm SignedTx")
	}
	raw, err := evm.Serialize(tx.evmTx.Unsigned, tx.evmTx.Signature)
	if err != nil {
		return nil, "", err
	}
	id := evm.TxID(raw)
	return raw, "0x" + hex.EncodeToString(id[:]), nil
}

// decodeECDSASignature splits a LocalSigner/HardwareSigner/RemoteSigner's
// raw 65-byte r‖s‖recId output into the (R, S, V/YParity) triple each EVM
// envelope's Serialize expects, applying the EIP-155 v formula for legacy.
func decodeECDSASignature(raw []byte, chainID uint64, txType evm.TxType) (evm.Signature, error) {
	if len(raw) != 65 {
		return evm.Signature{}, coreerr.Validation("walletcore: evm signature must be 65 bytes (r‖s‖recId), got %d", len(raw))
	}
	r := new(big.Int).SetBytes(raw[:32])
	s := new(big.Int).SetBytes(raw[32:64])
	recID := raw[64]

	sig := evm.Signature{R: r, S: s, YParity: recID}
	if txType == evm.TypeLegacy {
		sig.V = evm.EIP155V(chainID, recID)
	}
	return sig, nil
}
