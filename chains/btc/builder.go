package btc

import (
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/hashing"
)

// Intent is the semantic description of a Bitcoin transaction to build:
// ordered inputs (with UTxO metadata) and outputs. Change, if any, is the
// caller's responsibility — per spec.md §9's explicit correction, the
// builder never synthesizes a change output.
type Intent struct {
	Version  int32
	Inputs   []Input
	Outputs  []Output
	Locktime uint32
}

// Build validates the intent and returns the canonical UnsignedTx.
// Enforces sum(outputs) <= sum(inputs); the difference is the implicit
// miner fee.
func Build(intent Intent) (UnsignedTx, error) {
	if len(intent.Inputs) == 0 {
		return UnsignedTx{}, coreerr.Validation("btc: at least one input is required")
	}
	if len(intent.Outputs) == 0 {
		return UnsignedTx{}, coreerr.Validation("btc: at least one output is required")
	}

	var totalIn, totalOut int64
	for _, in := range intent.Inputs {
		if in.Amount < 0 {
			return UnsignedTx{}, coreerr.Validation("btc: input amount must be non-negative")
		}
		totalIn += in.Amount
	}
	for _, o := range intent.Outputs {
		if o.Amount < 0 {
			return UnsignedTx{}, coreerr.Validation("btc: output amount must be non-negative")
		}
		totalOut += o.Amount
	}
	if totalOut > totalIn {
		return UnsignedTx{}, coreerr.Validation("btc: insufficient input: outputs %d exceed inputs %d", totalOut, totalIn).WithStep("build")
	}

	version := intent.Version
	if version == 0 {
		version = 2
	}
	return UnsignedTx{
		Version:  version,
		Inputs:   intent.Inputs,
		Outputs:  intent.Outputs,
		Locktime: intent.Locktime,
	}, nil
}

func reverse32(b [32]byte) [32]byte {
	var out [32]byte
	for i := range b {
		out[i] = b[31-i]
	}
	return out
}

// TxID computes the legacy (non-witness) txid: dSHA256 of the non-witness
// serialization, byte-reversed to match Bitcoin's conventional display
// order.
func TxID(tx UnsignedTx, scriptSigs [][]byte) [32]byte {
	digest := hashing.DoubleSHA256(serializeLegacy(tx, scriptSigs))
	return reverse32(digest)
}

// WTxID computes the witness txid: dSHA256 of the full (possibly
// witness-marked) serialization, byte-reversed.
func WTxID(tx UnsignedTx, witnesses []InputWitness) [32]byte {
	digest := hashing.DoubleSHA256(Serialize(tx, witnesses))
	return reverse32(digest)
}
