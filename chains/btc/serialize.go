package btc

import "github.com/x402-foundation/walletcore/internal/primitives"

func encodeOutPoint(o OutPoint) []byte {
	out := make([]byte, 0, 36)
	out = append(out, o.TxID[:]...)
	out = append(out, primitives.EncodeU32LE(o.Vout)...)
	return out
}

func encodeScript(s []byte) []byte {
	out := primitives.VarIntBitcoin(uint64(len(s)))
	return append(out, s...)
}

func encodeOutput(o Output) []byte {
	out := primitives.EncodeU64LE(uint64(o.Amount))
	out = append(out, encodeScript(o.ScriptPubKey)...)
	return out
}

// serializeLegacy renders the non-witness transaction serialization used
// for legacy txid computation and as the basis for pre-SegWit sighashes.
// scriptSigs supplies the per-input scriptSig to embed (nil/empty for an
// unsigned or witness-signed input).
func serializeLegacy(tx UnsignedTx, scriptSigs [][]byte) []byte {
	var out []byte
	out = append(out, primitives.EncodeU32LE(uint32(tx.Version))...)
	out = append(out, primitives.VarIntBitcoin(uint64(len(tx.Inputs)))...)
	for i, in := range tx.Inputs {
		out = append(out, encodeOutPoint(in.PrevOut)...)
		var sigScript []byte
		if i < len(scriptSigs) {
			sigScript = scriptSigs[i]
		}
		out = append(out, encodeScript(sigScript)...)
		out = append(out, primitives.EncodeU32LE(in.Sequence)...)
	}
	out = append(out, primitives.VarIntBitcoin(uint64(len(tx.Outputs)))...)
	for _, o := range tx.Outputs {
		out = append(out, encodeOutput(o)...)
	}
	out = append(out, primitives.EncodeU32LE(tx.Locktime)...)
	return out
}

// serializeWitness renders the full SegWit-marked serialization: version,
// marker(0x00)+flag(0x01), inputs (scriptSig per input), outputs, a witness
// stack per input, locktime.
func serializeWitness(tx UnsignedTx, scriptSigs [][]byte, witnesses [][][]byte) []byte {
	var out []byte
	out = append(out, primitives.EncodeU32LE(uint32(tx.Version))...)
	out = append(out, 0x00, 0x01)
	out = append(out, primitives.VarIntBitcoin(uint64(len(tx.Inputs)))...)
	for i, in := range tx.Inputs {
		out = append(out, encodeOutPoint(in.PrevOut)...)
		var sigScript []byte
		if i < len(scriptSigs) {
			sigScript = scriptSigs[i]
		}
		out = append(out, encodeScript(sigScript)...)
		out = append(out, primitives.EncodeU32LE(in.Sequence)...)
	}
	out = append(out, primitives.VarIntBitcoin(uint64(len(tx.Outputs)))...)
	for _, o := range tx.Outputs {
		out = append(out, encodeOutput(o)...)
	}
	for i := range tx.Inputs {
		var stack [][]byte
		if i < len(witnesses) {
			stack = witnesses[i]
		}
		out = append(out, primitives.VarIntBitcoin(uint64(len(stack)))...)
		for _, item := range stack {
			out = append(out, encodeScript(item)...)
		}
	}
	out = append(out, primitives.EncodeU32LE(tx.Locktime)...)
	return out
}

func hasWitnessData(witnesses [][][]byte) bool {
	for _, w := range witnesses {
		if len(w) > 0 {
			return true
		}
	}
	return false
}

// Serialize renders the final broadcastable transaction bytes, using the
// SegWit-marked form only when at least one input actually carries witness
// data, per Bitcoin Core's serialization convention.
func Serialize(tx UnsignedTx, witnesses []InputWitness) []byte {
	scriptSigs := make([][]byte, len(witnesses))
	stacks := make([][][]byte, len(witnesses))
	for i, w := range witnesses {
		scriptSigs[i] = w.ScriptSig
		stacks[i] = w.Witness
	}
	if hasWitnessData(stacks) {
		return serializeWitness(tx, scriptSigs, stacks)
	}
	return serializeLegacy(tx, scriptSigs)
}
