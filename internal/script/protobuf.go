package script

import (
	"google.golang.org/protobuf/encoding/protowire"

	coreerr "github.com/x402-foundation/walletcore/errors"
)

// ProtoWriter appends proto3 fields in ascending field-number order (the
// deterministic encoding spec.md §4.5 requires for Cosmos's SIGN_MODE_DIRECT
// — field order is part of the canonical byte form, not merely a style
// choice) using the low-level protowire primitives rather than any
// generated message type.
type ProtoWriter struct {
	buf         []byte
	lastField   protowire.Number
	haveField   bool
}

// NewProtoWriter returns an empty writer.
func NewProtoWriter() *ProtoWriter { return &ProtoWriter{} }

func (w *ProtoWriter) checkOrder(field protowire.Number) error {
	if w.haveField && field <= w.lastField {
		return coreerr.Internal("protobuf: field %d must follow strictly-ascending field %d", field, w.lastField)
	}
	w.lastField = field
	w.haveField = true
	return nil
}

// AppendVarint appends a varint-wire-type field (proto3 int32/int64/uint64/
// bool/enum). A zero value is the proto3 default and is omitted.
func (w *ProtoWriter) AppendVarint(field protowire.Number, v uint64) error {
	if v == 0 {
		return nil
	}
	if err := w.checkOrder(field); err != nil {
		return err
	}
	w.buf = protowire.AppendTag(w.buf, field, protowire.VarintType)
	w.buf = protowire.AppendVarint(w.buf, v)
	return nil
}

// AppendBytes appends a length-delimited field (bytes/string). An empty
// value is the proto3 default and is omitted.
func (w *ProtoWriter) AppendBytes(field protowire.Number, v []byte) error {
	if len(v) == 0 {
		return nil
	}
	if err := w.checkOrder(field); err != nil {
		return err
	}
	w.buf = protowire.AppendTag(w.buf, field, protowire.BytesType)
	w.buf = protowire.AppendBytes(w.buf, v)
	return nil
}

// AppendMessage appends field as a length-delimited embedded message whose
// bytes are the already-encoded msg.
func (w *ProtoWriter) AppendMessage(field protowire.Number, msg []byte) error {
	return w.AppendBytes(field, msg)
}

// AppendRepeatedMessage appends one length-delimited entry per element of
// msgs under the same field number, in order — proto3's repeated-message
// wire form (each element gets its own tag, unlike packed-repeated scalars).
func (w *ProtoWriter) AppendRepeatedMessage(field protowire.Number, msgs [][]byte) error {
	for _, m := range msgs {
		w.buf = protowire.AppendTag(w.buf, field, protowire.BytesType)
		w.buf = protowire.AppendBytes(w.buf, m)
	}
	if len(msgs) > 0 {
		w.lastField = field
		w.haveField = true
	}
	return nil
}

// Bytes returns the encoded message.
func (w *ProtoWriter) Bytes() []byte { return w.buf }

// ConsumeVarintField reads one varint-wire-type field from b, returning its
// field number, its value and the number of bytes consumed.
func ConsumeVarintField(b []byte) (field protowire.Number, value uint64, n int, err error) {
	field, wireType, tagLen := protowire.ConsumeTag(b)
	if tagLen < 0 {
		return 0, 0, 0, coreerr.Serialization("protobuf: invalid tag")
	}
	if wireType != protowire.VarintType {
		return 0, 0, 0, coreerr.Serialization("protobuf: expected varint wire type, got %d", wireType)
	}
	value, valLen := protowire.ConsumeVarint(b[tagLen:])
	if valLen < 0 {
		return 0, 0, 0, coreerr.Serialization("protobuf: invalid varint")
	}
	return field, value, tagLen + valLen, nil
}

// ConsumeBytesField reads one length-delimited field from b.
func ConsumeBytesField(b []byte) (field protowire.Number, value []byte, n int, err error) {
	field, wireType, tagLen := protowire.ConsumeTag(b)
	if tagLen < 0 {
		return 0, nil, 0, coreerr.Serialization("protobuf: invalid tag")
	}
	if wireType != protowire.BytesType {
		return 0, nil, 0, coreerr.Serialization("protobuf: expected bytes wire type, got %d", wireType)
	}
	value, valLen := protowire.ConsumeBytes(b[tagLen:])
	if valLen < 0 {
		return 0, nil, 0, coreerr.Serialization("protobuf: invalid length-delimited payload")
	}
	return field, value, tagLen + valLen, nil
}
