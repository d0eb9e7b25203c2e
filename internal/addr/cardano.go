package addr

import (
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/hashing"
	"github.com/x402-foundation/walletcore/internal/primitives"
)

// CardanoAddressType is the CIP-19 header nibble naming the payload shape.
// Only the two most common shapes are implemented: a base address (payment
// + staking key hash) and an enterprise address (payment key hash only).
type CardanoAddressType byte

const (
	CardanoTypeBase       CardanoAddressType = 0b0000
	CardanoTypeEnterprise CardanoAddressType = 0b0110
)

// CardanoNetwork selects the CIP-19 network tag packed into the header's
// low nibble, and the Bech32 HRP ("addr"/"addr_test") CIP-19 pairs with it.
type CardanoNetwork byte

const (
	CardanoMainnet CardanoNetwork = 1
	CardanoTestnet CardanoNetwork = 0
)

func (n CardanoNetwork) hrp() string {
	if n == CardanoMainnet {
		return "addr"
	}
	return "addr_test"
}

// CardanoEnterpriseAddress renders a CIP-19 enterprise address: header byte
// (type<<4 | network) followed by the 28-byte BLAKE2b-224 hash of the
// payment key, Bech32-encoded with the network's HRP.
func CardanoEnterpriseAddress(net CardanoNetwork, paymentPubKey []byte) (string, error) {
	header := byte(CardanoTypeEnterprise)<<4 | byte(net)
	keyHash := hashing.Blake2b224(paymentPubKey)
	payload := append([]byte{header}, keyHash[:]...)
	return encodeCardanoPayload(net, payload)
}

// CardanoBaseAddress renders a CIP-19 base address: header byte followed by
// the payment key hash then the staking key hash (28 bytes each).
func CardanoBaseAddress(net CardanoNetwork, paymentPubKey, stakingPubKey []byte) (string, error) {
	header := byte(CardanoTypeBase)<<4 | byte(net)
	paymentHash := hashing.Blake2b224(paymentPubKey)
	stakingHash := hashing.Blake2b224(stakingPubKey)
	payload := make([]byte, 0, 1+28+28)
	payload = append(payload, header)
	payload = append(payload, paymentHash[:]...)
	payload = append(payload, stakingHash[:]...)
	return encodeCardanoPayload(net, payload)
}

func encodeCardanoPayload(net CardanoNetwork, payload []byte) (string, error) {
	fiveBit, err := primitives.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", coreerr.Internal("addr/cardano: %v", err)
	}
	return primitives.EncodeBech32(net.hrp(), fiveBit, primitives.VariantBech32)
}

// DecodeCardanoAddress splits a CIP-19 address back into its type, network
// tag, and key-hash payload.
func DecodeCardanoAddress(s string) (CardanoAddressType, CardanoNetwork, []byte, error) {
	hrp, fiveBit, err := primitives.DecodeBech32(s, primitives.VariantBech32)
	if err != nil {
		return 0, 0, nil, coreerr.Validation("addr/cardano: %v", err)
	}
	if hrp != "addr" && hrp != "addr_test" {
		return 0, 0, nil, coreerr.Validation("addr/cardano: unexpected hrp %q", hrp)
	}
	raw, err := primitives.ConvertBits(fiveBit, 5, 8, false)
	if err != nil {
		return 0, 0, nil, coreerr.Validation("addr/cardano: %v", err)
	}
	if len(raw) < 1 {
		return 0, 0, nil, coreerr.Validation("addr/cardano: empty address")
	}
	header := raw[0]
	addrType := CardanoAddressType(header >> 4)
	network := CardanoNetwork(header & 0x0f)
	payload := raw[1:]

	var want int
	switch addrType {
	case CardanoTypeEnterprise:
		want = 28
	case CardanoTypeBase:
		want = 56
	default:
		return 0, 0, nil, coreerr.Validation("addr/cardano: unsupported address type %d", addrType)
	}
	if len(payload) != want {
		return 0, 0, nil, coreerr.Validation("addr/cardano: expected %d payload bytes for type %d, got %d", want, addrType, len(payload))
	}
	return addrType, network, payload, nil
}
