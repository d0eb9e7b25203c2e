package walletcore

import (
	"encoding/hex"

	"github.com/x402-foundation/walletcore/chains/btc"
	"github.com/x402-foundation/walletcore/config"
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/signers"
)

type bitcoinAdapter struct{}

func (bitcoinAdapter) build(in Intent) (UnsignedTx, error) {
	if in.Bitcoin == nil {
		return UnsignedTx{}, coreerr.Validation("walletcore: bitcoin family requires Intent.Bitcoin")
	}
	if len(in.SignerRefs) != len(in.Bitcoin.Inputs) {
		return UnsignedTx{}, coreerr.Validation(
			"walletcore: bitcoin requires one signer reference per input, got %d refs for %d inputs",
			len(in.SignerRefs), len(in.Bitcoin.Inputs))
	}
	tx, err := btc.Build(*in.Bitcoin)
	if err != nil {
		return UnsignedTx{}, err
	}
	return UnsignedTx{Family: config.FamilyBitcoin, bitcoinTx: &tx, signerRefs: in.SignerRefs}, nil
}

// p2wpkhScriptCode extracts scriptCode from a standard P2WPKH witness
// program (0x00 0x14 <20-byte-hash>) per BIP-143; P2WSH inputs, where
// scriptCode is the redeem script rather than derivable from the witness
// program, are out of scope here (see chains/btc/sighash.go's note on
// script-path coverage).
func p2wpkhScriptCode(witnessProgram []byte) ([]byte, error) {
	if len(witnessProgram) != 22 || witnessProgram[0] != 0x00 || witnessProgram[1] != 0x14 {
		return nil, coreerr.Validation("walletcore: expected a P2WPKH witness program, got %d bytes", len(witnessProgram))
	}
	return btc.ScriptCodeP2WPKH(witnessProgram[2:]), nil
}

func (bitcoinAdapter) preimages(tx UnsignedTx) ([]PreimageRequest, error) {
	if tx.bitcoinTx == nil {
		return nil, coreerr.Internal("walletcore: bitcoin adapter received a non-bitcoin UnsignedTx")
	}
	unsigned := *tx.bitcoinTx

	prevAmounts := make([]int64, len(unsigned.Inputs))
	prevScripts := make([][]byte, len(unsigned.Inputs))
	for i, in := range unsigned.Inputs {
		prevAmounts[i] = in.Amount
		prevScripts[i] = in.PrevScript
	}

	reqs := make([]PreimageRequest, len(unsigned.Inputs))
	for i, in := range unsigned.Inputs {
		var (
			digest [32]byte
			curve  = signers.CurveSecp256k1ECDSA
		)
		switch in.ScriptKind {
		case btc.ScriptLegacy:
			digest = btc.LegacySighash(unsigned, i, in.PrevScript, in.SighashFlags)
		case btc.ScriptV0Witness:
			scriptCode, err := p2wpkhScriptCode(in.PrevScript)
			if err != nil {
				return nil, err
			}
			digest = btc.SegwitV0Sighash(unsigned, i, scriptCode, in.Amount, in.SighashFlags)
		case btc.ScriptTaproot:
			digest = btc.TaprootSighash(unsigned, i, prevAmounts, prevScripts, in.SighashFlags, nil)
			curve = signers.CurveSecp256k1Schnorr
		default:
			return nil, coreerr.Validation("walletcore: unsupported bitcoin script kind %d at input %d", in.ScriptKind, i)
		}
		reqs[i] = PreimageRequest{Index: i, Ref: tx.signerRefs[i], Curve: curve, Digest: digest[:]}
	}
	return reqs, nil
}

func (bitcoinAdapter) assemble(tx UnsignedTx, sigs []signers.RawSignature, pubKeys [][]byte) (SignedTx, error) {
	unsigned := *tx.bitcoinTx
	if len(sigs) != len(unsigned.Inputs) {
		return SignedTx{}, coreerr.Validation("walletcore: bitcoin assemble expects one signature per input, got %d for %d inputs", len(sigs), len(unsigned.Inputs))
	}
	if len(pubKeys) != len(unsigned.Inputs) {
		return SignedTx{}, coreerr.Validation("walletcore: bitcoin assemble expects one public key per input, got %d for %d inputs", len(pubKeys), len(unsigned.Inputs))
	}

	witnesses := make([]btc.InputWitness, len(unsigned.Inputs))
	for i, in := range unsigned.Inputs {
		hashType := byte(in.SighashFlags)
		switch in.ScriptKind {
		case btc.ScriptLegacy:
			sigWithType := append(append([]byte{}, sigs[i].Bytes...), hashType)
			witnesses[i] = btc.InputWitness{ScriptSig: sigWithType}
		case btc.ScriptV0Witness:
			sigWithType := append(append([]byte{}, sigs[i].Bytes...), hashType)
			witnesses[i] = btc.InputWitness{Witness: [][]byte{sigWithType, pubKeys[i]}}
		case btc.ScriptTaproot:
			sig := append([]byte{}, sigs[i].Bytes...)
			if in.SighashFlags != 0 {
				sig = append(sig, hashType)
			}
			witnesses[i] = btc.InputWitness{Witness: [][]byte{sig}}
		default:
			return SignedTx{}, coreerr.Validation("walletcore: unsupported bitcoin script kind %d at input %d", in.ScriptKind, i)
		}
	}
	return SignedTx{Family: config.FamilyBitcoin, bitcoinTx: &btc.SignedTx{Unsigned: unsigned, Witnesses: witnesses}}, nil
}

func (bitcoinAdapter) serialize(tx SignedTx) ([]byte, string, error) {
	if tx.bitcoinTx == nil {
		return nil, "", coreerr.Internal("walletcore: bitcoin adapter received a non-bitcoin SignedTx")
	}
	scriptSigs := make([][]byte, len(tx.bitcoinTx.Witnesses))
	for i, w := range tx.bitcoinTx.Witnesses {
		scriptSigs[i] = w.ScriptSig
	}
	raw := btc.Serialize(tx.bitcoinTx.Unsigned, tx.bitcoinTx.Witnesses)
	txid := btc.TxID(tx.bitcoinTx.Unsigned, scriptSigs)
	return raw, hex.EncodeToString(txid[:]), nil
}
