package evm

import (
	"math/big"

	coreerr "github.com/x402-foundation/walletcore/errors"
)

// Intent is the semantic, network-agnostic description of an EVM
// transaction a caller wants built. Exactly one fee scheme must be set:
// GasPrice (legacy) or MaxFeePerGas+MaxPriorityFeePerGas (type-2/4). A
// TypeHint of TypeAccessList (type 1) passes Build, but Preimage and
// Serialize reject that envelope as an unsupported tx type.
type Intent struct {
	To       *[20]byte
	Value    *big.Int
	Data     []byte
	GasLimit uint64
	Nonce    uint64
	ChainID  uint64

	TypeHint *TxType // nil lets Build infer from the fields present

	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int

	AccessList        []AccessTuple
	AuthorizationList []Authorization
}

// Build validates the intent and produces the canonical UnsignedTx,
// choosing the envelope per spec.md §4.6: legacy, EIP-1559, or EIP-7702
// (type 4, selected only when AuthorizationList is non-empty).
func Build(intent Intent) (UnsignedTx, error) {
	if intent.ChainID == 0 {
		return UnsignedTx{}, coreerr.Validation("evm: chainId is required")
	}
	hasLegacyFee := intent.GasPrice != nil
	hasDynamicFee := intent.MaxFeePerGas != nil || intent.MaxPriorityFeePerGas != nil
	if hasLegacyFee == hasDynamicFee {
		return UnsignedTx{}, coreerr.Validation("evm: exactly one of gasPrice or maxFee/maxPriorityFee must be set")
	}

	var txType TxType
	switch {
	case len(intent.AuthorizationList) > 0:
		txType = TypeSetCode
	case intent.TypeHint != nil:
		txType = *intent.TypeHint
	case hasDynamicFee:
		txType = TypeDynamicFee
	default:
		txType = TypeLegacy
	}

	if txType == TypeSetCode && hasLegacyFee {
		return UnsignedTx{}, coreerr.Validation("evm: EIP-7702 requires the EIP-1559 fee fields, not gasPrice")
	}
	if txType == TypeLegacy && hasDynamicFee {
		return UnsignedTx{}, coreerr.Validation("evm: legacy envelope cannot carry EIP-1559 fee fields")
	}
	if txType == TypeLegacy && len(intent.AccessList) > 0 {
		return UnsignedTx{}, coreerr.Validation("evm: legacy envelope does not support an access list")
	}

	tx := UnsignedTx{
		Type:                 txType,
		ChainID:              intent.ChainID,
		Nonce:                intent.Nonce,
		GasLimit:             intent.GasLimit,
		To:                   intent.To,
		Value:                intent.Value,
		Data:                 intent.Data,
		GasPrice:             intent.GasPrice,
		MaxPriorityFeePerGas: intent.MaxPriorityFeePerGas,
		MaxFeePerGas:         intent.MaxFeePerGas,
		AccessList:           intent.AccessList,
		AuthorizationList:    intent.AuthorizationList,
	}
	return tx, nil
}
