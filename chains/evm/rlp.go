package evm

import "math/big"

// rlpItem is either a byte string or a list of further rlpItems — the two
// shapes RLP knows how to encode. isList distinguishes an empty list from
// an empty byte string, since Go's nil/empty slices can't on their own.
type rlpItem struct {
	isList bool
	bytes  []byte
	list   []rlpItem
}

func rlpBytes(b []byte) rlpItem { return rlpItem{bytes: b} }

func rlpList(items ...rlpItem) rlpItem { return rlpItem{isList: true, list: items} }

// rlpUint encodes an unsigned integer in minimal big-endian form: no
// leading zero bytes, and zero itself encodes as the empty byte string
// (spec.md §9's explicit correction of a "simplified placeholder" RLP that
// didn't enforce this).
func rlpUint(v uint64) rlpItem {
	if v == 0 {
		return rlpItem{bytes: []byte{}}
	}
	b := big.NewInt(0).SetUint64(v).Bytes()
	return rlpItem{bytes: b}
}

func rlpBigInt(v *big.Int) rlpItem {
	if v == nil || v.Sign() == 0 {
		return rlpItem{bytes: []byte{}}
	}
	return rlpItem{bytes: v.Bytes()}
}

// encode serializes the item per Ethereum's RLP rules.
func (it rlpItem) encode() []byte {
	if it.isList {
		var body []byte
		for _, child := range it.list {
			body = append(body, child.encode()...)
		}
		return append(encodeLength(len(body), 0xc0), body...)
	}
	b := it.bytes
	if len(b) == 1 && b[0] < 0x80 {
		return b
	}
	return append(encodeLength(len(b), 0x80), b...)
}

// encodeLength encodes a length prefix: offset+len for len<56, or
// offset+55+lenOfLen followed by the big-endian length for len>=56.
func encodeLength(n int, offset byte) []byte {
	if n < 56 {
		return []byte{offset + byte(n)}
	}
	lenBytes := minimalBigEndian(uint64(n))
	return append([]byte{offset + 55 + byte(len(lenBytes))}, lenBytes...)
}

func minimalBigEndian(v uint64) []byte {
	if v == 0 {
		return []byte{0}
	}
	return big.NewInt(0).SetUint64(v).Bytes()
}

// rlpEncodeList is the package-internal convenience for encoding a top-level
// list of items, used by every per-type transaction-payload encoder in
// preimage.go.
func rlpEncodeList(items ...rlpItem) []byte {
	return rlpList(items...).encode()
}
