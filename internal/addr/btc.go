package addr

import (
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/hashing"
	"github.com/x402-foundation/walletcore/internal/primitives"
)

// BTCNetwork carries the version bytes and Bech32 HRP a Bitcoin-family
// address codec needs. MainnetBTC and TestnetBTC below are the predefined
// sets; the codec takes any BTCNetwork value, so a compatible chain
// (Litecoin-style forks included) can reuse it with its own values.
type BTCNetwork struct {
	Bech32HRP      string
	P2PKHVersion   byte
	P2SHVersion    byte
}

// MainnetBTC is the standard Bitcoin mainnet parameter set.
var MainnetBTC = BTCNetwork{Bech32HRP: "bc", P2PKHVersion: 0x00, P2SHVersion: 0x05}

// TestnetBTC is the standard Bitcoin testnet/signet parameter set.
var TestnetBTC = BTCNetwork{Bech32HRP: "tb", P2PKHVersion: 0x6f, P2SHVersion: 0xc4}

// P2PKHAddress encodes Base58Check(version, hash160(pubKey)) — legacy
// pay-to-pubkey-hash.
func P2PKHAddress(net BTCNetwork, pubKey []byte) string {
	h := hashing.Hash160(pubKey)
	return primitives.Base58CheckEncode(net.P2PKHVersion, h[:])
}

// P2SHAddress encodes Base58Check(version, hash160(redeemScript)).
func P2SHAddress(net BTCNetwork, redeemScript []byte) string {
	h := hashing.Hash160(redeemScript)
	return primitives.Base58CheckEncode(net.P2SHVersion, h[:])
}

// P2WPKHAddress encodes a native SegWit v0 address: Bech32(hrp, 0,
// hash160(pubKey)).
func P2WPKHAddress(net BTCNetwork, pubKey []byte) (string, error) {
	h := hashing.Hash160(pubKey)
	return primitives.EncodeSegwitAddress(net.Bech32HRP, 0, h[:])
}

// P2TRAddress encodes a Taproot address: Bech32m(hrp, 1, xOnlyTweakedKey).
// xOnlyTweakedKey must already be the 32-byte output-key x-coordinate (see
// internal/script/taproot.go for the tweak computation).
func P2TRAddress(net BTCNetwork, xOnlyTweakedKey []byte) (string, error) {
	if len(xOnlyTweakedKey) != 32 {
		return "", coreerr.Validation("addr/btc: taproot output key must be 32 bytes, got %d", len(xOnlyTweakedKey))
	}
	return primitives.EncodeSegwitAddress(net.Bech32HRP, 1, xOnlyTweakedKey)
}

// DecodeBTCAddress recognizes a P2PKH/P2SH Base58Check or P2WPKH/P2TR
// Bech32/Bech32m address and reports its kind and payload.
type BTCAddressKind int

const (
	BTCUnknown BTCAddressKind = iota
	BTCP2PKH
	BTCP2SH
	BTCSegwit
)

type DecodedBTCAddress struct {
	Kind            BTCAddressKind
	Version         byte   // P2PKH/P2SH only
	WitnessVersion  byte   // Segwit only
	Payload         []byte // hash160 (P2PKH/P2SH/P2WPKH) or x-only key (P2TR)
}

func DecodeBTCAddress(s string) (DecodedBTCAddress, error) {
	if version, payload, err := primitives.Base58CheckDecode(s); err == nil {
		kind := BTCP2PKH
		// Caller disambiguates P2PKH vs P2SH via Version against its
		// BTCNetwork; both share this decode path.
		return DecodedBTCAddress{Kind: kind, Version: version, Payload: payload}, nil
	}
	_, witnessVer, program, err := primitives.DecodeSegwitAddress(s)
	if err != nil {
		return DecodedBTCAddress{}, coreerr.Validation("addr/btc: %q is neither a valid Base58Check nor Bech32 address", s)
	}
	return DecodedBTCAddress{Kind: BTCSegwit, WitnessVersion: witnessVer, Payload: program}, nil
}
