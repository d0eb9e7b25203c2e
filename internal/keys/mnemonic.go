// Package keys implements BIP-39 mnemonic handling and the BIP-32/SLIP-0010
// hierarchical-deterministic derivation trees used across chain families.
package keys

import (
	"crypto/sha256"
	"crypto/sha512"
	_ "embed"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"

	coreerr "github.com/x402-foundation/walletcore/errors"
)

//go:embed wordlist_english.txt
var englishWordlistRaw string

var (
	englishWordlist []string
	englishIndex    map[string]int
)

func init() {
	for _, w := range strings.Split(strings.TrimSpace(englishWordlistRaw), "\n") {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		englishWordlist = append(englishWordlist, w)
	}
	englishIndex = make(map[string]int, len(englishWordlist))
	for i, w := range englishWordlist {
		englishIndex[w] = i
	}
}

// Seed is the 64-byte PBKDF2 output used to derive the master key node.
type Seed [64]byte

// Wipe zeroizes the seed in place.
func (s *Seed) Wipe() {
	for i := range s {
		s[i] = 0
	}
}

// ValidateMnemonic checks word count, word-list membership, and the BIP-39
// checksum bits derived from sha256(entropy).
func ValidateMnemonic(mnemonic string) error {
	_, err := mnemonicToEntropy(mnemonic)
	return err
}

func mnemonicToEntropy(mnemonic string) ([]byte, error) {
	words := strings.Fields(norm.NFKD.String(mnemonic))
	switch len(words) {
	case 12, 15, 18, 21, 24:
	default:
		return nil, coreerr.Validation("mnemonic: word count %d is not one of {12,15,18,21,24}", len(words))
	}

	bits := make([]byte, 0, len(words)*11/8+1)
	var acc uint32
	var accBits uint
	for _, w := range words {
		idx, ok := englishIndex[w]
		if !ok {
			return nil, coreerr.Validation("mnemonic: word %q is not in the wordlist", w)
		}
		acc = (acc << 11) | uint32(idx)
		accBits += 11
		for accBits >= 8 {
			accBits -= 8
			bits = append(bits, byte(acc>>accBits))
		}
	}
	if accBits > 0 {
		bits = append(bits, byte(acc<<(8-accBits)))
	}

	entBits := len(words) * 11 * 32 / 33
	csBits := len(words) * 11 / 33
	entBytes := entBits / 8

	entropy := bits[:entBytes]
	checksumByte := bits[entBytes]

	sum := sha256.Sum256(entropy)
	expectedMask := byte(0xff << (8 - csBits))
	if (sum[0] & expectedMask) != (checksumByte & expectedMask) {
		return nil, coreerr.Validation("mnemonic: checksum mismatch")
	}
	return entropy, nil
}

// MnemonicToSeed derives the 64-byte seed via
// PBKDF2-HMAC-SHA512(mnemonic_nfkd, "mnemonic"+passphrase_nfkd, iter=2048).
func MnemonicToSeed(mnemonic, passphrase string) (Seed, error) {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return Seed{}, err
	}
	normMnemonic := norm.NFKD.String(mnemonic)
	salt := norm.NFKD.String("mnemonic" + passphrase)
	key := pbkdf2.Key([]byte(normMnemonic), []byte(salt), 2048, 64, sha512.New)
	var seed Seed
	copy(seed[:], key)
	return seed, nil
}
