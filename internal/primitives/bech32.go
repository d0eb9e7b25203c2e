package primitives

import (
	"strings"

	coreerr "github.com/x402-foundation/walletcore/errors"
)

// Bech32Variant distinguishes the BIP-173 (Bech32) and BIP-350 (Bech32m)
// constant used in the checksum polymod.
type Bech32Variant int

const (
	VariantBech32 Bech32Variant = iota
	VariantBech32m
)

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

const (
	bech32Const  = 1
	bech32mConst = 0x2bc830a3
)

var generator = [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}

func polymod(values []byte) uint32 {
	chk := uint32(1)
	for _, v := range values {
		b := byte(chk >> 25)
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (b>>uint(i))&1 == 1 {
				chk ^= generator[i]
			}
		}
	}
	return chk
}

func hrpExpand(hrp string) []byte {
	out := make([]byte, 0, len(hrp)*2+1)
	for _, c := range hrp {
		out = append(out, byte(c)>>5)
	}
	out = append(out, 0)
	for _, c := range hrp {
		out = append(out, byte(c)&31)
	}
	return out
}

func createChecksum(hrp string, data []byte, variant Bech32Variant) []byte {
	values := append(hrpExpand(hrp), data...)
	values = append(values, 0, 0, 0, 0, 0, 0)
	target := uint32(bech32Const)
	if variant == VariantBech32m {
		target = bech32mConst
	}
	mod := polymod(values) ^ target
	out := make([]byte, 6)
	for i := 0; i < 6; i++ {
		out[i] = byte((mod >> uint(5*(5-i))) & 31)
	}
	return out
}

func verifyChecksum(hrp string, data []byte, variant Bech32Variant) bool {
	target := uint32(bech32Const)
	if variant == VariantBech32m {
		target = bech32mConst
	}
	return polymod(append(hrpExpand(hrp), data...)) == target
}

// EncodeBech32 encodes hrp + 5-bit groups (data) with the given variant.
// Total encoded length (hrp + '1' + data + 6-char checksum) must not exceed
// 90 characters (BIP-173 boundary: 90 accepted, 91 rejected).
func EncodeBech32(hrp string, data []byte, variant Bech32Variant) (string, error) {
	if len(hrp) < 1 {
		return "", coreerr.Validation("bech32: empty hrp")
	}
	combined := append(append([]byte{}, data...), createChecksum(hrp, data, variant)...)
	var sb strings.Builder
	sb.WriteString(hrp)
	sb.WriteByte('1')
	for _, b := range combined {
		if int(b) >= len(charset) {
			return "", coreerr.Internal("bech32: invalid 5-bit group %d", b)
		}
		sb.WriteByte(charset[b])
	}
	out := sb.String()
	if len(out) > 90 {
		return "", coreerr.Validation("bech32: encoded length %d exceeds 90-character limit", len(out))
	}
	return out, nil
}

// DecodeBech32 decodes s into (hrp, 5-bit data groups). Mixed-case input is
// rejected; length must be <= 90.
func DecodeBech32(s string, variant Bech32Variant) (string, []byte, error) {
	if len(s) > 90 {
		return "", nil, coreerr.Validation("bech32: input length %d exceeds 90-character limit", len(s))
	}
	lower := strings.ToLower(s)
	upper := strings.ToUpper(s)
	if s != lower && s != upper {
		return "", nil, coreerr.Validation("bech32: mixed-case input is not canonical")
	}
	s = lower
	pos := strings.LastIndexByte(s, '1')
	if pos < 1 || pos+7 > len(s) {
		return "", nil, coreerr.Validation("bech32: missing or misplaced separator")
	}
	hrp := s[:pos]
	dataPart := s[pos+1:]
	data := make([]byte, len(dataPart))
	for i, c := range dataPart {
		idx := strings.IndexByte(charset, byte(c))
		if idx < 0 {
			return "", nil, coreerr.Validation("bech32: invalid character %q", c)
		}
		data[i] = byte(idx)
	}
	if !verifyChecksum(hrp, data, variant) {
		return "", nil, coreerr.Validation("bech32: checksum mismatch")
	}
	return hrp, data[:len(data)-6], nil
}

// ConvertBits repacks a slice of fromBits-wide groups into toBits-wide
// groups, used to go between 8-bit program bytes and 5-bit Bech32 groups.
func ConvertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	var acc uint32
	var bits uint
	var out []byte
	maxv := uint32(1<<toBits) - 1
	for _, b := range data {
		if uint32(b)>>fromBits != 0 {
			return nil, coreerr.Validation("convert_bits: input value exceeds %d bits", fromBits)
		}
		acc = (acc << fromBits) | uint32(b)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			out = append(out, byte((acc>>bits)&maxv))
		}
	}
	if pad {
		if bits > 0 {
			out = append(out, byte((acc<<(toBits-bits))&maxv))
		}
	} else if bits >= fromBits || ((acc<<(toBits-bits))&maxv) != 0 {
		return nil, coreerr.Validation("convert_bits: non-zero padding bits")
	}
	return out, nil
}

// EncodeSegwitAddress encodes a witness version + program as a Bech32
// (version 0) or Bech32m (version >=1) address per BIP-173/350.
func EncodeSegwitAddress(hrp string, witnessVersion byte, program []byte) (string, error) {
	converted, err := ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", err
	}
	data := append([]byte{witnessVersion}, converted...)
	variant := VariantBech32
	if witnessVersion > 0 {
		variant = VariantBech32m
	}
	return EncodeBech32(hrp, data, variant)
}

// DecodeSegwitAddress reverses EncodeSegwitAddress, validating the variant
// matches the witness version (v0 must use Bech32, v1+ must use Bech32m).
func DecodeSegwitAddress(s string) (hrp string, witnessVersion byte, program []byte, err error) {
	variant := VariantBech32
	hrp, data, derr := DecodeBech32(s, variant)
	if derr != nil {
		// retry as bech32m for v1+ addresses
		hrp, data, derr = DecodeBech32(s, VariantBech32m)
		if derr != nil {
			return "", 0, nil, derr
		}
		variant = VariantBech32m
	}
	if len(data) < 1 {
		return "", 0, nil, coreerr.Validation("segwit address: missing witness version")
	}
	witnessVersion = data[0]
	expected := VariantBech32
	if witnessVersion > 0 {
		expected = VariantBech32m
	}
	if expected != variant {
		return "", 0, nil, coreerr.Validation("segwit address: witness version %d used wrong checksum variant", witnessVersion)
	}
	program, err = ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return "", 0, nil, err
	}
	return hrp, witnessVersion, program, nil
}
