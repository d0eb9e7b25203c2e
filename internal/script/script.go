// Package script builds and recognizes Bitcoin Script byte sequences and
// implements the BIP-341 Taproot leaf/tweak hashes, the protobuf wire
// encoder Cosmos signing uses, and the BCS primitives Aptos needs. Solana's
// short-vec length prefix lives in internal/primitives.
package script

import (
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/primitives"
)

// Opcodes named by the template builders/recognizers below.
const (
	OpDup         = 0x76
	OpHash160     = 0xa9
	OpEqualVerify = 0x88
	OpCheckSig    = 0xac
	OpEqual       = 0x87
	Op0           = 0x00
	Op1           = 0x51

	opPushData1 = 0x4c
	opPushData2 = 0x4d
	opPushData4 = 0x4e
)

// Script is a compiled Bitcoin Script byte sequence.
type Script []byte

// Builder accumulates opcodes and data pushes into a Script.
type Builder struct {
	buf []byte
}

// NewBuilder returns an empty script builder.
func NewBuilder() *Builder { return &Builder{} }

// AddOp appends a single opcode byte.
func (b *Builder) AddOp(op byte) *Builder {
	b.buf = append(b.buf, op)
	return b
}

// AddData appends a minimal data push per spec.md §4.5's four-tier rule:
// direct length byte for <0x4c, OP_PUSHDATA1/2/4 beyond that.
func (b *Builder) AddData(data []byte) *Builder {
	n := len(data)
	switch {
	case n < opPushData1:
		b.buf = append(b.buf, byte(n))
	case n <= 0xff:
		b.buf = append(b.buf, opPushData1, byte(n))
	case n <= 0xffff:
		b.buf = append(b.buf, opPushData2)
		b.buf = append(b.buf, primitives.EncodeU16LE(uint16(n))...)
	default:
		b.buf = append(b.buf, opPushData4)
		b.buf = append(b.buf, primitives.EncodeU32LE(uint32(n))...)
	}
	b.buf = append(b.buf, data...)
	return b
}

// Script returns the compiled byte sequence.
func (b *Builder) Script() Script { return Script(b.buf) }

// P2PKH builds OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG.
func P2PKH(hash160 []byte) (Script, error) {
	if len(hash160) != 20 {
		return nil, coreerr.Validation("script: p2pkh hash must be 20 bytes, got %d", len(hash160))
	}
	return NewBuilder().
		AddOp(OpDup).
		AddOp(OpHash160).
		AddData(hash160).
		AddOp(OpEqualVerify).
		AddOp(OpCheckSig).
		Script(), nil
}

// P2SH builds OP_HASH160 <20-byte hash> OP_EQUAL.
func P2SH(hash160 []byte) (Script, error) {
	if len(hash160) != 20 {
		return nil, coreerr.Validation("script: p2sh hash must be 20 bytes, got %d", len(hash160))
	}
	return NewBuilder().
		AddOp(OpHash160).
		AddData(hash160).
		AddOp(OpEqual).
		Script(), nil
}

// P2WPKH builds OP_0 <20-byte hash> (the SegWit v0 witness program script).
func P2WPKH(hash160 []byte) (Script, error) {
	if len(hash160) != 20 {
		return nil, coreerr.Validation("script: p2wpkh hash must be 20 bytes, got %d", len(hash160))
	}
	return NewBuilder().AddOp(Op0).AddData(hash160).Script(), nil
}

// P2TR builds OP_1 <32-byte x-only key> (the Taproot witness program
// script).
func P2TR(xOnlyKey []byte) (Script, error) {
	if len(xOnlyKey) != 32 {
		return nil, coreerr.Validation("script: p2tr key must be 32 bytes, got %d", len(xOnlyKey))
	}
	return NewBuilder().AddOp(Op1).AddData(xOnlyKey).Script(), nil
}

// IsP2PKH reports whether s matches OP_DUP OP_HASH160 <20> ... OP_EQUALVERIFY OP_CHECKSIG.
func IsP2PKH(s Script) bool {
	return len(s) == 25 &&
		s[0] == OpDup && s[1] == OpHash160 && s[2] == 20 &&
		s[23] == OpEqualVerify && s[24] == OpCheckSig
}

// IsP2SH reports whether s matches OP_HASH160 <20> OP_EQUAL.
func IsP2SH(s Script) bool {
	return len(s) == 23 && s[0] == OpHash160 && s[1] == 20 && s[22] == OpEqual
}

// IsP2WPKH reports whether s matches OP_0 <20>.
func IsP2WPKH(s Script) bool {
	return len(s) == 22 && s[0] == Op0 && s[1] == 20
}

// IsP2TR reports whether s matches OP_1 <32>.
func IsP2TR(s Script) bool {
	return len(s) == 34 && s[0] == Op1 && s[1] == 32
}
