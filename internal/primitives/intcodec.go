// Package primitives implements the L0 byte-level codecs shared across all
// chain families: fixed-width integers, variable-length integers, Bech32/
// Bech32m, and Base58(Check).
package primitives

import "encoding/binary"

func EncodeU16LE(v uint16) []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, v); return b }
func EncodeU32LE(v uint32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); return b }
func EncodeU64LE(v uint64) []byte { b := make([]byte, 8); binary.LittleEndian.PutUint64(b, v); return b }

func EncodeU16BE(v uint16) []byte { b := make([]byte, 2); binary.BigEndian.PutUint16(b, v); return b }
func EncodeU32BE(v uint32) []byte { b := make([]byte, 4); binary.BigEndian.PutUint32(b, v); return b }
func EncodeU64BE(v uint64) []byte { b := make([]byte, 8); binary.BigEndian.PutUint64(b, v); return b }

func DecodeU16LE(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func DecodeU32LE(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func DecodeU64LE(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

func DecodeU16BE(b []byte) uint16 { return binary.BigEndian.Uint16(b) }
func DecodeU32BE(b []byte) uint32 { return binary.BigEndian.Uint32(b) }
func DecodeU64BE(b []byte) uint64 { return binary.BigEndian.Uint64(b) }
