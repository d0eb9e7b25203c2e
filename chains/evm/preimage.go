package evm

import (
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/hashing"
)

func accessListItems(list []AccessTuple) []rlpItem {
	items := make([]rlpItem, 0, len(list))
	for _, tuple := range list {
		keys := make([]rlpItem, 0, len(tuple.StorageKeys))
		for _, k := range tuple.StorageKeys {
			kk := k
			keys = append(keys, rlpBytes(kk[:]))
		}
		addr := tuple.Address
		items = append(items, rlpList(rlpBytes(addr[:]), rlpList(keys...)))
	}
	return items
}

func toItem(to *[20]byte) rlpItem {
	if to == nil {
		return rlpBytes(nil)
	}
	b := *to
	return rlpBytes(b[:])
}

// legacyItems returns the 6-field legacy item list; forSigning appends the
// EIP-155 [chainId, 0, 0] triple.
func legacyItems(tx UnsignedTx, forSigning bool) []rlpItem {
	items := []rlpItem{
		rlpUint(tx.Nonce),
		rlpBigInt(tx.GasPrice),
		rlpUint(tx.GasLimit),
		toItem(tx.To),
		rlpBigInt(tx.Value),
		rlpBytes(tx.Data),
	}
	if forSigning {
		items = append(items, rlpUint(tx.ChainID), rlpUint(0), rlpUint(0))
	}
	return items
}

// dynamicFeeItems returns the EIP-1559 type-2 payload's 9 fields (without
// the type-byte envelope prefix or a trailing signature).
func dynamicFeeItems(tx UnsignedTx) []rlpItem {
	return []rlpItem{
		rlpUint(tx.ChainID),
		rlpUint(tx.Nonce),
		rlpBigInt(tx.MaxPriorityFeePerGas),
		rlpBigInt(tx.MaxFeePerGas),
		rlpUint(tx.GasLimit),
		toItem(tx.To),
		rlpBigInt(tx.Value),
		rlpBytes(tx.Data),
		rlpList(accessListItems(tx.AccessList)...),
	}
}

func authorizationItems(list []Authorization) []rlpItem {
	items := make([]rlpItem, 0, len(list))
	for _, a := range list {
		addr := a.Address
		items = append(items, rlpList(
			rlpUint(a.ChainID),
			rlpBytes(addr[:]),
			rlpUint(a.Nonce),
			rlpUint(uint64(a.YParity)),
			rlpBigInt(a.R),
			rlpBigInt(a.S),
		))
	}
	return items
}

// setCodeItems returns the EIP-7702 type-4 payload's 10 fields (without the
// type-byte envelope prefix or a trailing signature).
func setCodeItems(tx UnsignedTx) []rlpItem {
	items := dynamicFeeItems(tx)
	return append(items, rlpList(authorizationItems(tx.AuthorizationList)...))
}

// Preimage computes the bytes32 sighash the signer must sign: keccak256 of
// the bare RLP list for legacy (EIP-155-extended with chainId/0/0), or
// keccak256(typeByte ‖ rlp(payload_without_signature)) for typed envelopes.
func Preimage(tx UnsignedTx) ([32]byte, error) {
	switch tx.Type {
	case TypeLegacy:
		return keccak32(rlpEncodeList(legacyItems(tx, true)...)), nil
	case TypeDynamicFee:
		payload := append([]byte{byte(TypeDynamicFee)}, rlpEncodeList(dynamicFeeItems(tx)...)...)
		return keccak32(payload), nil
	case TypeSetCode:
		payload := append([]byte{byte(TypeSetCode)}, rlpEncodeList(setCodeItems(tx)...)...)
		return keccak32(payload), nil
	default:
		return [32]byte{}, coreerr.Validation("evm: unsupported tx type %d", tx.Type)
	}
}

// AuthorizationPreimage computes an EIP-7702 per-authorization sighash:
// keccak256(0x05 ‖ rlp([chainId, address, nonce])).
func AuthorizationPreimage(a Authorization) [32]byte {
	addr := a.Address
	payload := rlpEncodeList(rlpUint(a.ChainID), rlpBytes(addr[:]), rlpUint(a.Nonce))
	return keccak32(append([]byte{0x05}, payload...))
}

// Serialize attaches a signature and renders the final broadcastable bytes:
// the bare signed RLP list for legacy, or typeByte||rlp(payload||[v,r,s])
// for typed envelopes.
func Serialize(tx UnsignedTx, sig Signature) ([]byte, error) {
	switch tx.Type {
	case TypeLegacy:
		items := append(legacyItems(tx, false), rlpUint(sig.V), rlpBigInt(sig.R), rlpBigInt(sig.S))
		return rlpEncodeList(items...), nil
	case TypeDynamicFee:
		items := append(dynamicFeeItems(tx), rlpUint(uint64(sig.YParity)), rlpBigInt(sig.R), rlpBigInt(sig.S))
		return append([]byte{byte(TypeDynamicFee)}, rlpEncodeList(items...)...), nil
	case TypeSetCode:
		items := append(setCodeItems(tx), rlpUint(uint64(sig.YParity)), rlpBigInt(sig.R), rlpBigInt(sig.S))
		return append([]byte{byte(TypeSetCode)}, rlpEncodeList(items...)...), nil
	default:
		return nil, coreerr.Validation("evm: unsupported tx type %d", tx.Type)
	}
}

func keccak32(b []byte) [32]byte {
	digest := hashing.Keccak256(b)
	var out [32]byte
	copy(out[:], digest)
	return out
}

// EIP155V computes the legacy signature's v per EIP-155: v = 35 + 2*chainId + recId.
func EIP155V(chainID uint64, recID byte) uint64 {
	return 35 + 2*chainID + uint64(recID)
}

// TxID computes the EVM transaction id: keccak256(serialized).
func TxID(serialized []byte) [32]byte {
	return keccak32(serialized)
}
