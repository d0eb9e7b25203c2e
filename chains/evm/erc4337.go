package evm

import (
	"math/big"

	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/hashing"
)

// UserOperationV06 is the pre-v0.7 (EntryPoint 0.6) UserOperation shape,
// with gas fields carried individually rather than packed.
type UserOperationV06 struct {
	Sender               [20]byte
	Nonce                uint64
	InitCode             []byte
	CallData             []byte
	CallGasLimit         uint64
	VerificationGasLimit uint64
	PreVerificationGas   uint64
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	PaymasterAndData     []byte
	Signature            []byte
}

// UserOperationV07 is the EntryPoint 0.7 UserOperation shape with separated
// factory/paymaster fields, packed into a PackedUserOperation for hashing.
type UserOperationV07 struct {
	Sender             [20]byte
	Nonce              uint64
	Factory            *[20]byte
	FactoryData        []byte
	CallData           []byte
	VerificationGasLimit uint64
	CallGasLimit         uint64
	PreVerificationGas   uint64
	MaxPriorityFeePerGas *big.Int
	MaxFeePerGas         *big.Int

	Paymaster                     *[20]byte
	PaymasterVerificationGasLimit uint64
	PaymasterPostOpGasLimit       uint64
	PaymasterData                 []byte

	Signature []byte
}

// PackedUserOperation is the wire-level v0.7/v0.8 EntryPoint struct: gas
// limits and fees collapsed into two bytes32 fields, factory/paymaster
// collapsed into initCode/paymasterAndData.
type PackedUserOperation struct {
	Sender             [20]byte
	Nonce              uint64
	InitCode           []byte
	CallData           []byte
	AccountGasLimits   [32]byte
	PreVerificationGas uint64
	GasFees            [32]byte
	PaymasterAndData   []byte
	Signature          []byte
}

func u128BE(v uint64) []byte {
	out := make([]byte, 16)
	big.NewInt(0).SetUint64(v).FillBytes(out)
	return out
}

// PackV07 assembles a v0.7 UserOperation into its wire-level packed form
// per spec.md §4.6: accountGasLimits = verificationGasLimit‖callGasLimit,
// gasFees = maxPriorityFeePerGas‖maxFeePerGas, initCode = factory‖
// factoryData (empty without a factory), paymasterAndData = paymaster‖
// u128(paymasterVerificationGasLimit)‖u128(paymasterPostOpGasLimit)‖
// paymasterData (empty without a paymaster).
func PackV07(op UserOperationV07) PackedUserOperation {
	var accountGasLimits, gasFees [32]byte
	copy(accountGasLimits[:16], u128BE(op.VerificationGasLimit))
	copy(accountGasLimits[16:], u128BE(op.CallGasLimit))
	copy(gasFees[:16], u128BE(maxUint(op.MaxPriorityFeePerGas)))
	copy(gasFees[16:], u128BE(maxUint(op.MaxFeePerGas)))

	var initCode []byte
	if op.Factory != nil {
		initCode = append(append([]byte{}, op.Factory[:]...), op.FactoryData...)
	}

	var paymasterAndData []byte
	if op.Paymaster != nil {
		paymasterAndData = append(append([]byte{}, op.Paymaster[:]...), u128BE(op.PaymasterVerificationGasLimit)...)
		paymasterAndData = append(paymasterAndData, u128BE(op.PaymasterPostOpGasLimit)...)
		paymasterAndData = append(paymasterAndData, op.PaymasterData...)
	}

	return PackedUserOperation{
		Sender:             op.Sender,
		Nonce:              op.Nonce,
		InitCode:           initCode,
		CallData:           op.CallData,
		AccountGasLimits:   accountGasLimits,
		PreVerificationGas: op.PreVerificationGas,
		GasFees:            gasFees,
		PaymasterAndData:   paymasterAndData,
		Signature:          op.Signature,
	}
}

func maxUint(v *big.Int) uint64 {
	if v == nil {
		return 0
	}
	return v.Uint64()
}

func word32(b []byte) []byte {
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

func addressWord(addr [20]byte) []byte { return word32(addr[:]) }

func uintWord(v uint64) []byte { return word32(big.NewInt(0).SetUint64(v).Bytes()) }

// UserOpHashV06 computes the v0.6 userOpHash: keccak256(abi.encode(
// keccak256(pack(userOp)), entryPoint, chainId)), per EntryPoint 0.6's
// getUserOpHash.
func UserOpHashV06(op UserOperationV06, entryPoint [20]byte, chainID uint64) [32]byte {
	initCodeHash := hashing.Keccak256(op.InitCode)
	callDataHash := hashing.Keccak256(op.CallData)
	paymasterHash := hashing.Keccak256(op.PaymasterAndData)

	var packed []byte
	packed = append(packed, addressWord(op.Sender)...)
	packed = append(packed, uintWord(op.Nonce)...)
	packed = append(packed, initCodeHash...)
	packed = append(packed, callDataHash...)
	packed = append(packed, uintWord(op.CallGasLimit)...)
	packed = append(packed, uintWord(op.VerificationGasLimit)...)
	packed = append(packed, uintWord(op.PreVerificationGas)...)
	packed = append(packed, word32(op.MaxFeePerGas.Bytes())...)
	packed = append(packed, word32(op.MaxPriorityFeePerGas.Bytes())...)
	packed = append(packed, paymasterHash...)

	inner := hashing.Keccak256(packed)

	var outer []byte
	outer = append(outer, inner...)
	outer = append(outer, addressWord(entryPoint)...)
	outer = append(outer, uintWord(chainID)...)

	var out [32]byte
	copy(out[:], hashing.Keccak256(outer))
	return out
}

// UserOpHashV07 computes the v0.7 userOpHash following the same
// hash-then-wrap shape as v0.6 but over the packed accountGasLimits/
// gasFees/paymasterAndData fields.
func UserOpHashV07(op PackedUserOperation, entryPoint [20]byte, chainID uint64) [32]byte {
	initCodeHash := hashing.Keccak256(op.InitCode)
	callDataHash := hashing.Keccak256(op.CallData)
	paymasterHash := hashing.Keccak256(op.PaymasterAndData)

	var packed []byte
	packed = append(packed, addressWord(op.Sender)...)
	packed = append(packed, uintWord(op.Nonce)...)
	packed = append(packed, initCodeHash...)
	packed = append(packed, callDataHash...)
	packed = append(packed, op.AccountGasLimits[:]...)
	packed = append(packed, uintWord(op.PreVerificationGas)...)
	packed = append(packed, op.GasFees[:]...)
	packed = append(packed, paymasterHash...)

	inner := hashing.Keccak256(packed)

	var outer []byte
	outer = append(outer, inner...)
	outer = append(outer, addressWord(entryPoint)...)
	outer = append(outer, uintWord(chainID)...)

	var out [32]byte
	copy(out[:], hashing.Keccak256(outer))
	return out
}

// UserOpHash dispatches to the v0.6 or v0.7 hashing scheme based on which
// struct is supplied; v0.8+ callers should use UserOperationEIP712Hash
// instead, per spec.md §4.7.
func UserOpHash(op interface{}, entryPoint [20]byte, chainID uint64) ([32]byte, error) {
	switch v := op.(type) {
	case UserOperationV06:
		return UserOpHashV06(v, entryPoint, chainID), nil
	case PackedUserOperation:
		return UserOpHashV07(v, entryPoint, chainID), nil
	default:
		return [32]byte{}, coreerr.Validation("erc4337: unsupported UserOperation type %T", op)
	}
}
