package script

import "github.com/x402-foundation/walletcore/internal/primitives"

// BCS implements the handful of Binary Canonical Serialization primitives
// Aptos needs: fixed-width little-endian integers, ULEB128-length-prefixed
// byte sequences, and bools as a single 0/1 byte.
type BCSWriter struct {
	buf []byte
}

func NewBCSWriter() *BCSWriter { return &BCSWriter{} }

func (w *BCSWriter) WriteU8(v uint8) *BCSWriter {
	w.buf = append(w.buf, v)
	return w
}

func (w *BCSWriter) WriteU32(v uint32) *BCSWriter {
	w.buf = append(w.buf, primitives.EncodeU32LE(v)...)
	return w
}

func (w *BCSWriter) WriteU64(v uint64) *BCSWriter {
	w.buf = append(w.buf, primitives.EncodeU64LE(v)...)
	return w
}

func (w *BCSWriter) WriteBool(v bool) *BCSWriter {
	if v {
		return w.WriteU8(1)
	}
	return w.WriteU8(0)
}

// WriteBytes writes a ULEB128 length prefix followed by the raw bytes —
// BCS's encoding for `vector<u8>` and, by extension, fixed-size byte arrays
// treated as sequences.
func (w *BCSWriter) WriteBytes(b []byte) *BCSWriter {
	w.buf = append(w.buf, primitives.ULEB128(uint64(len(b)))...)
	w.buf = append(w.buf, b...)
	return w
}

// WriteFixedBytes writes raw bytes with no length prefix, for BCS fields
// declared as a fixed-size array (e.g. a 32-byte account address).
func (w *BCSWriter) WriteFixedBytes(b []byte) *BCSWriter {
	w.buf = append(w.buf, b...)
	return w
}

func (w *BCSWriter) Bytes() []byte { return w.buf }
