// Package btc builds and hashes Bitcoin transactions across the legacy,
// SegWit v0, and Taproot script families.
package btc

import "github.com/x402-foundation/walletcore/internal/script"

// ScriptKind names the signing scheme an input's previous output requires.
type ScriptKind int

const (
	ScriptLegacy ScriptKind = iota // pre-SegWit P2PKH/P2SH, legacy sighash
	ScriptV0Witness                // P2WPKH/P2WSH, BIP-143 sighash
	ScriptTaproot                  // P2TR, BIP-341 sighash
)

// SighashFlag is the low byte of a BIP-143/341 sighash type.
type SighashFlag byte

const (
	SighashAll          SighashFlag = 0x01
	SighashNone         SighashFlag = 0x02
	SighashSingle       SighashFlag = 0x03
	SighashAnyoneCanPay SighashFlag = 0x80
)

// OutPoint references a previous transaction's output.
type OutPoint struct {
	TxID [32]byte // internal (natural, non-reversed) byte order
	Vout uint32
}

// Input is one transaction input together with the UTxO metadata required
// to compute its sighash: the previous output's script and amount, and a
// hint at which signing scheme that script requires.
type Input struct {
	PrevOut      OutPoint
	PrevScript   script.Script
	Amount       int64 // satoshis
	Sequence     uint32
	ScriptKind   ScriptKind
	SighashFlags SighashFlag
}

// Output is one transaction output.
type Output struct {
	Amount       int64 // satoshis
	ScriptPubKey script.Script
}

// UnsignedTx is the canonical pre-signature Bitcoin transaction.
type UnsignedTx struct {
	Version  int32
	Inputs   []Input
	Outputs  []Output
	Locktime uint32
}

// InputWitness is the signature material attached to one input: a scriptSig
// (legacy) and/or witness stack (SegWit), mutually applicable depending on
// ScriptKind.
type InputWitness struct {
	ScriptSig script.Script
	Witness   [][]byte
}

// SignedTx pairs an UnsignedTx with one InputWitness per input.
type SignedTx struct {
	Unsigned  UnsignedTx
	Witnesses []InputWitness
}
