package primitives

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"

	coreerr "github.com/x402-foundation/walletcore/errors"
)

// VarIntBitcoin encodes n using Bitcoin's CompactSize scheme:
// <0xfd -> 1 byte, <=0xffff -> 0xfd + u16le, <=0xffffffff -> 0xfe + u32le,
// else -> 0xff + u64le.
func VarIntBitcoin(n uint64) []byte {
	switch {
	case n < 0xfd:
		return []byte{byte(n)}
	case n <= 0xffff:
		out := make([]byte, 3)
		out[0] = 0xfd
		binary.LittleEndian.PutUint16(out[1:], uint16(n))
		return out
	case n <= 0xffffffff:
		out := make([]byte, 5)
		out[0] = 0xfe
		binary.LittleEndian.PutUint32(out[1:], uint32(n))
		return out
	default:
		out := make([]byte, 9)
		out[0] = 0xff
		binary.LittleEndian.PutUint64(out[1:], n)
		return out
	}
}

// ReadVarIntBitcoin decodes a CompactSize integer, rejecting non-minimal
// encodings (Bitcoin's VarInt is strictly canonical). Returns the value,
// the number of bytes consumed, and an error.
func ReadVarIntBitcoin(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, coreerr.Serialization("var_int_bitcoin: empty input")
	}
	switch b[0] {
	case 0xfd:
		if len(b) < 3 {
			return 0, 0, coreerr.Serialization("var_int_bitcoin: truncated u16 prefix")
		}
		v := binary.LittleEndian.Uint16(b[1:3])
		if v < 0xfd {
			return 0, 0, coreerr.Serialization("var_int_bitcoin: non-canonical u16 encoding")
		}
		return uint64(v), 3, nil
	case 0xfe:
		if len(b) < 5 {
			return 0, 0, coreerr.Serialization("var_int_bitcoin: truncated u32 prefix")
		}
		v := binary.LittleEndian.Uint32(b[1:5])
		if v <= 0xffff {
			return 0, 0, coreerr.Serialization("var_int_bitcoin: non-canonical u32 encoding")
		}
		return uint64(v), 5, nil
	case 0xff:
		if len(b) < 9 {
			return 0, 0, coreerr.Serialization("var_int_bitcoin: truncated u64 prefix")
		}
		v := binary.LittleEndian.Uint64(b[1:9])
		if v <= 0xffffffff {
			return 0, 0, coreerr.Serialization("var_int_bitcoin: non-canonical u64 encoding")
		}
		return v, 9, nil
	default:
		return uint64(b[0]), 1, nil
	}
}

// VarIntProto encodes n as a protobuf/LEB128-style varint: 7 bits per byte,
// LSB-first, continuation bit set on all but the last byte. Unlike Bitcoin's
// VarInt this encoding is not required to be minimal on decode.
func VarIntProto(n uint64) []byte {
	var out []byte
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}

// ReadVarIntProto decodes a LEB128/protobuf-style varint. Non-minimal
// encodings are accepted (protobuf does not require canonical varints).
func ReadVarIntProto(b []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i, c := range b {
		if shift >= 64 {
			return 0, 0, coreerr.Serialization("var_int_proto: varint overflow")
		}
		v |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return v, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, coreerr.Serialization("var_int_proto: truncated input")
}

// ULEB128 is an alias family name for VarIntProto used by the Aptos/BCS
// primitives (identical bit layout, used by spec.md's boundary tests at
// 127/128/16383/16384).
func ULEB128(n uint64) []byte              { return VarIntProto(n) }
func ReadULEB128(b []byte) (uint64, int, error) { return ReadVarIntProto(b) }

// ShortVecSolana encodes n as Solana's compact-u16, the compact-array
// length prefix used throughout the wire Message format, via
// github.com/gagliardetto/binary's own compact-u16 codec — the same
// encoder gagliardetto/solana-go's Message.MarshalWithEncoder calls for
// account-key/instruction/signature array lengths.
func ShortVecSolana(n uint16) []byte {
	buf := new(bytes.Buffer)
	if err := bin.NewBinEncoder(buf).WriteCompactU16Length(int(n)); err != nil {
		panic(coreerr.Internal("short_vec_solana: encode failed: %v", err))
	}
	return buf.Bytes()
}

// ReadShortVecSolana decodes a compact-u16 length prefix.
func ReadShortVecSolana(b []byte) (uint16, int, error) {
	dec := bin.NewBinDecoder(b)
	v, err := dec.ReadCompactU16Length()
	if err != nil {
		return 0, 0, coreerr.Serialization("short_vec_solana: %v", err)
	}
	if v > 0xffff {
		return 0, 0, coreerr.Serialization("short_vec_solana: value exceeds u16 range")
	}
	return uint16(v), dec.Position(), nil
}
