package btc

import (
	"github.com/x402-foundation/walletcore/internal/hashing"
	"github.com/x402-foundation/walletcore/internal/primitives"
)

// LegacySighash computes the pre-SegWit sighash for input index i: the full
// transaction serialized with every scriptSig blanked except input i's,
// which carries subscript (the previous output's scriptPubKey, or the
// redeem script for P2SH), followed by a 4-byte little-endian hash type,
// double-SHA256'd.
func LegacySighash(tx UnsignedTx, index int, subscript []byte, hashType SighashFlag) [32]byte {
	scriptSigs := make([][]byte, len(tx.Inputs))
	scriptSigs[index] = subscript
	preimage := serializeLegacy(tx, scriptSigs)
	preimage = append(preimage, primitives.EncodeU32LE(uint32(hashType))...)
	return hashing.DoubleSHA256(preimage)
}

// scriptCodeP2WPKH builds the length-prefixed P2WPKH scriptCode BIP-143
// requires: 0x1976a914{hash160(pk)}88ac, including the 0x19 length byte.
func scriptCodeP2WPKH(pubKeyHash160 []byte) []byte {
	body := []byte{0x76, 0xa9, 0x14}
	body = append(body, pubKeyHash160...)
	body = append(body, 0x88, 0xac)
	return append([]byte{byte(len(body))}, body...)
}

// ScriptCodeP2WPKH is the exported form of scriptCodeP2WPKH, for callers
// assembling a BIP-143 preimage outside this package.
func ScriptCodeP2WPKH(pubKeyHash160 []byte) []byte { return scriptCodeP2WPKH(pubKeyHash160) }

func dsha256Concat(parts ...[]byte) [32]byte {
	var buf []byte
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return hashing.DoubleSHA256(buf)
}

// SegwitV0Sighash computes the BIP-143 sighash for input index, given the
// scriptCode applicable to that input (ScriptCodeP2WPKH for P2WPKH; the
// witness script itself for P2WSH) and that input's previous-output amount.
func SegwitV0Sighash(tx UnsignedTx, index int, scriptCode []byte, amount int64, hashType SighashFlag) [32]byte {
	anyoneCanPay := hashType&SighashAnyoneCanPay != 0
	baseType := hashType &^ SighashAnyoneCanPay

	var hashPrevouts [32]byte
	if !anyoneCanPay {
		var buf []byte
		for _, in := range tx.Inputs {
			buf = append(buf, encodeOutPoint(in.PrevOut)...)
		}
		hashPrevouts = hashing.DoubleSHA256(buf)
	}

	var hashSequence [32]byte
	if !anyoneCanPay && baseType != SighashNone && baseType != SighashSingle {
		var buf []byte
		for _, in := range tx.Inputs {
			buf = append(buf, primitives.EncodeU32LE(in.Sequence)...)
		}
		hashSequence = hashing.DoubleSHA256(buf)
	}

	var hashOutputs [32]byte
	switch {
	case baseType != SighashNone && baseType != SighashSingle:
		var buf []byte
		for _, o := range tx.Outputs {
			buf = append(buf, encodeOutput(o)...)
		}
		hashOutputs = hashing.DoubleSHA256(buf)
	case baseType == SighashSingle && index < len(tx.Outputs):
		hashOutputs = hashing.DoubleSHA256(encodeOutput(tx.Outputs[index]))
	}

	in := tx.Inputs[index]
	var preimage []byte
	preimage = append(preimage, primitives.EncodeU32LE(uint32(tx.Version))...)
	preimage = append(preimage, hashPrevouts[:]...)
	preimage = append(preimage, hashSequence[:]...)
	preimage = append(preimage, encodeOutPoint(in.PrevOut)...)
	preimage = append(preimage, encodeScript(scriptCode)...)
	preimage = append(preimage, primitives.EncodeU64LE(uint64(amount))...)
	preimage = append(preimage, primitives.EncodeU32LE(in.Sequence)...)
	preimage = append(preimage, hashOutputs[:]...)
	preimage = append(preimage, primitives.EncodeU32LE(tx.Locktime)...)
	preimage = append(preimage, primitives.EncodeU32LE(uint32(hashType))...)

	return hashing.DoubleSHA256(preimage)
}

// TaprootSighash computes the BIP-341 key-path-spend sighash for input
// index, over all previous outputs' amounts and scriptPubKeys (required for
// every input regardless of which one is being signed). annex, when
// non-nil, is the raw annex including its 0x50 prefix byte. This covers the
// key-path case (no script-path leaf, ext_flag=0); script-path spends would
// additionally mix in the tapleaf hash and key version, which this core
// does not yet build transactions against.
func TaprootSighash(tx UnsignedTx, index int, prevAmounts []int64, prevScripts [][]byte, hashType SighashFlag, annex []byte) [32]byte {
	anyoneCanPay := hashType&SighashAnyoneCanPay != 0
	outputType := hashType &^ SighashAnyoneCanPay

	var msg []byte
	msg = append(msg, byte(hashType))
	msg = append(msg, primitives.EncodeU32LE(uint32(tx.Version))...)
	msg = append(msg, primitives.EncodeU32LE(tx.Locktime)...)

	if !anyoneCanPay {
		var outpoints, amounts, scriptPubKeys, sequences []byte
		for i, in := range tx.Inputs {
			outpoints = append(outpoints, encodeOutPoint(in.PrevOut)...)
			amounts = append(amounts, primitives.EncodeU64LE(uint64(prevAmounts[i]))...)
			scriptPubKeys = append(scriptPubKeys, encodeScript(prevScripts[i])...)
			sequences = append(sequences, primitives.EncodeU32LE(in.Sequence)...)
		}
		shaPrevouts := hashing.SHA256(outpoints)
		shaAmounts := hashing.SHA256(amounts)
		shaScriptPubkeys := hashing.SHA256(scriptPubKeys)
		shaSequences := hashing.SHA256(sequences)
		msg = append(msg, shaPrevouts[:]...)
		msg = append(msg, shaAmounts[:]...)
		msg = append(msg, shaScriptPubkeys[:]...)
		msg = append(msg, shaSequences[:]...)
	}

	if outputType == SighashAll || outputType == 0 {
		var outputs []byte
		for _, o := range tx.Outputs {
			outputs = append(outputs, encodeOutput(o)...)
		}
		shaOutputs := hashing.SHA256(outputs)
		msg = append(msg, shaOutputs[:]...)
	}

	const extFlagKeyPath = 0
	spendType := byte(extFlagKeyPath * 2)
	if annex != nil {
		spendType |= 1
	}
	msg = append(msg, spendType)

	if anyoneCanPay {
		in := tx.Inputs[index]
		msg = append(msg, encodeOutPoint(in.PrevOut)...)
		msg = append(msg, primitives.EncodeU64LE(uint64(prevAmounts[index]))...)
		msg = append(msg, encodeScript(prevScripts[index])...)
		msg = append(msg, primitives.EncodeU32LE(in.Sequence)...)
	} else {
		msg = append(msg, primitives.EncodeU32LE(uint32(index))...)
	}

	if annex != nil {
		shaAnnex := hashing.SHA256(encodeScript(annex))
		msg = append(msg, shaAnnex[:]...)
	}

	if outputType == SighashSingle && index < len(tx.Outputs) {
		shaSingleOutput := hashing.SHA256(encodeOutput(tx.Outputs[index]))
		msg = append(msg, shaSingleOutput[:]...)
	}

	return hashing.TaggedHash("TapSighash", append([]byte{0x00}, msg...))
}
