package hashing_test

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x402-foundation/walletcore/internal/hashing"
)

func TestDoubleSHA256(t *testing.T) {
	msg := []byte("hello")
	want := sha256.Sum256(mustSum(msg))
	got := hashing.DoubleSHA256(msg)
	require.Equal(t, want, got)
}

func mustSum(b []byte) []byte {
	s := sha256.Sum256(b)
	return s[:]
}

func TestHash160(t *testing.T) {
	msg := []byte("hello")
	got := hashing.Hash160(msg)
	require.Len(t, got, 20)
}

func TestTaggedHashDeterministic(t *testing.T) {
	a := hashing.TaggedHash("TapLeaf", []byte("leaf"))
	b := hashing.TaggedHash("TapLeaf", []byte("leaf"))
	require.Equal(t, a, b)

	c := hashing.TaggedHash("TapTweak", []byte("leaf"))
	require.NotEqual(t, a, c, "different tags must produce different domain-separated hashes")
}

func TestKeccak256Deterministic(t *testing.T) {
	a := hashing.Keccak256([]byte("transfer"))
	b := hashing.Keccak256([]byte("transfer"))
	require.Equal(t, a, b)
	require.Len(t, a, 32)

	c := hashing.Keccak256([]byte("Transfer"))
	require.NotEqual(t, a, c)
}
