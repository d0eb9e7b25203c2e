package evm

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	coreerr "github.com/x402-foundation/walletcore/errors"
)

// TypedDataDomain is the EIP-712 domain separator.
type TypedDataDomain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract string
}

// TypedDataField is one field of an EIP-712 struct type definition.
type TypedDataField struct {
	Name string
	Type string
}

// HashTypedData computes the EIP-712 digest
// keccak256("\x19\x01" ‖ domainSeparator ‖ structHash), delegating the
// struct/domain hashing to go-ethereum's apitypes implementation rather
// than re-deriving ABI-style struct encoding from scratch.
func HashTypedData(domain TypedDataDomain, types map[string][]TypedDataField, primaryType string, message map[string]interface{}) ([32]byte, error) {
	typedData := apitypes.TypedData{
		Types:       make(apitypes.Types),
		PrimaryType: primaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              domain.Name,
			Version:           domain.Version,
			ChainId:           (*math.HexOrDecimal256)(domain.ChainID),
			VerifyingContract: domain.VerifyingContract,
		},
		Message: message,
	}
	for typeName, fields := range types {
		typedFields := make([]apitypes.Type, len(fields))
		for i, f := range fields {
			typedFields[i] = apitypes.Type{Name: f.Name, Type: f.Type}
		}
		typedData.Types[typeName] = typedFields
	}
	if _, ok := typedData.Types["EIP712Domain"]; !ok {
		typedData.Types["EIP712Domain"] = []apitypes.Type{
			{Name: "name", Type: "string"},
			{Name: "version", Type: "string"},
			{Name: "chainId", Type: "uint256"},
			{Name: "verifyingContract", Type: "address"},
		}
	}

	dataHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return [32]byte{}, coreerr.Serialization("eip712: hash struct: %v", err)
	}
	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return [32]byte{}, coreerr.Serialization("eip712: hash domain: %v", err)
	}

	raw := append([]byte{0x19, 0x01}, domainSeparator...)
	raw = append(raw, dataHash...)
	var out [32]byte
	copy(out[:], gethcrypto.Keccak256(raw))
	return out, nil
}

// userOperationEIP712Types is the v0.8+ UserOperation EIP-712 type used by
// EntryPoint.getUserOpHash's typed-data variant.
var userOperationEIP712Types = map[string][]TypedDataField{
	"PackedUserOperation": {
		{Name: "sender", Type: "address"},
		{Name: "nonce", Type: "uint256"},
		{Name: "initCode", Type: "bytes"},
		{Name: "callData", Type: "bytes"},
		{Name: "accountGasLimits", Type: "bytes32"},
		{Name: "preVerificationGas", Type: "uint256"},
		{Name: "gasFees", Type: "bytes32"},
		{Name: "paymasterAndData", Type: "bytes"},
	},
}

// UserOperationEIP712Hash computes the v0.8+ typed-data UserOperation hash
// against the EntryPoint domain.
func UserOperationEIP712Hash(entryPoint [20]byte, chainID uint64, op PackedUserOperation) ([32]byte, error) {
	domain := TypedDataDomain{
		Name:              "ERC4337",
		Version:           "1",
		ChainID:           new(big.Int).SetUint64(chainID),
		VerifyingContract: fmt.Sprintf("0x%x", entryPoint),
	}
	message := map[string]interface{}{
		"sender":              fmt.Sprintf("0x%x", op.Sender),
		"nonce":               new(big.Int).SetUint64(op.Nonce),
		"initCode":            op.InitCode,
		"callData":            op.CallData,
		"accountGasLimits":    op.AccountGasLimits[:],
		"preVerificationGas":  new(big.Int).SetUint64(op.PreVerificationGas),
		"gasFees":             op.GasFees[:],
		"paymasterAndData":    op.PaymasterAndData,
	}
	return HashTypedData(domain, userOperationEIP712Types, "PackedUserOperation", message)
}
