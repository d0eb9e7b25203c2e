// Package evm builds, hashes, and serializes Ethereum-family transactions:
// legacy, EIP-1559, EIP-7702 authorizations, and ERC-4337 UserOperations.
package evm

import "math/big"

// TxType is the EIP-2718 envelope type byte; 0 denotes the unprefixed
// legacy RLP list rather than a literal byte 0x00 prefix.
type TxType byte

const (
	TypeLegacy   TxType = 0
	TypeAccessList TxType = 1 // EIP-2930
	TypeDynamicFee TxType = 2 // EIP-1559
	TypeSetCode  TxType = 4   // EIP-7702
)

// AccessTuple is one entry of an EIP-2930/1559/7702 access list.
type AccessTuple struct {
	Address     [20]byte
	StorageKeys [][32]byte
}

// Authorization is one EIP-7702 `authorizationList` entry: an EOA
// authorizing code at Address to run under its account, signed separately
// from the outer transaction.
type Authorization struct {
	ChainID uint64
	Address [20]byte
	Nonce   uint64
	YParity byte
	R, S    *big.Int
}

// UnsignedTx is the canonical, fully-structured pre-signature EVM
// transaction (§3 "For EVM" unsigned-transaction fields).
type UnsignedTx struct {
	Type    TxType
	ChainID uint64

	Nonce    uint64
	GasLimit uint64
	To       *[20]byte // nil denotes contract creation
	Value    *big.Int
	Data     []byte

	// Legacy / pre-1559 fee field.
	GasPrice *big.Int

	// EIP-1559 fee fields.
	MaxPriorityFeePerGas *big.Int
	MaxFeePerGas         *big.Int

	AccessList        []AccessTuple
	AuthorizationList []Authorization // EIP-7702, type 4 only
}

// Signature is the EVM (r, s, v-or-yParity) ECDSA signature triple.
type Signature struct {
	R, S    *big.Int
	V       uint64 // legacy: full EIP-155 v; typed: 27/28 is never used, YParity is
	YParity byte   // typed envelopes (1/2/4)
}

// SignedTx pairs an UnsignedTx with its attached signature.
type SignedTx struct {
	Unsigned  UnsignedTx
	Signature Signature
}
