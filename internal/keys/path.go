package keys

import (
	"strconv"
	"strings"

	coreerr "github.com/x402-foundation/walletcore/errors"
)

// PathSegment is one "a'" or "a" component of a derivation path.
type PathSegment struct {
	Index    uint32
	Hardened bool
}

// ParsePath parses a derivation path of the form m/44'/60'/0'/0/0, accepting
// both the apostrophe and lowercase-h hardened markers (44' and 44h).
func ParsePath(path string) ([]PathSegment, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, coreerr.Validation("path: empty derivation path")
	}

	parts := strings.Split(path, "/")
	if parts[0] != "m" {
		return nil, coreerr.Validation("path: derivation path must start with 'm', got %q", parts[0])
	}
	parts = parts[1:]

	segments := make([]PathSegment, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return nil, coreerr.Validation("path: empty segment in %q", path)
		}
		hardened := false
		switch {
		case strings.HasSuffix(p, "'"):
			hardened = true
			p = strings.TrimSuffix(p, "'")
		case strings.HasSuffix(p, "h") || strings.HasSuffix(p, "H"):
			hardened = true
			p = p[:len(p)-1]
		}
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, coreerr.Validation("path: invalid segment %q in %q", p, path)
		}
		if n >= uint64(HardenedOffset) {
			return nil, coreerr.Validation("path: segment %d out of range in %q", n, path)
		}
		segments = append(segments, PathSegment{Index: uint32(n), Hardened: hardened})
	}
	return segments, nil
}

// DeriveSecp256k1Path walks MasterKeySecp256k1's output down a parsed path.
func DeriveSecp256k1Path(seed Seed, path string) (*KeyNode, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	node, err := MasterKeySecp256k1(seed)
	if err != nil {
		return nil, err
	}
	for _, seg := range segments {
		node, err = DeriveChildSecp256k1(node, seg.Index, seg.Hardened)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// DeriveEd25519Path walks MasterKeyEd25519's output down a parsed path. Every
// segment must be hardened; SLIP-0010 defines no non-hardened Ed25519
// derivation.
func DeriveEd25519Path(seed Seed, path string) (*KeyNode, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	node, err := MasterKeyEd25519(seed)
	if err != nil {
		return nil, err
	}
	for _, seg := range segments {
		node, err = DeriveChildEd25519(node, seg.Index, seg.Hardened)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}
