package walletcore

import (
	"github.com/x402-foundation/walletcore/config"
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/addr"
	"github.com/x402-foundation/walletcore/internal/keys"
	"github.com/x402-foundation/walletcore/signers"
)

// WalletCore is the facade spec.md §6 exposes: Addresses, Build, Preimages,
// Assemble, and Serialize. It holds no state of its own — every method is
// a pure function of its arguments, matching §5's "single-shot and
// internally synchronous" requirement.
type WalletCore struct{}

// New constructs a WalletCore. It carries no configuration: every operation
// takes its chain context as an explicit argument.
func New() *WalletCore { return &WalletCore{} }

// AddressRequest names one address to derive: Family selects the codec,
// Path the HD derivation path, HRP the Bech32/Bech32m human-readable part
// where the family requires one (Bitcoin SegWit, Cosmos).
type AddressRequest struct {
	Family config.Family
	Path   string
	HRP    string
}

// Addresses derives one address per request from seed, per spec.md §6's
// `addresses(mnemonic, {paths}) → {path → address}`. Callers obtain seed via
// internal/keys.MnemonicToSeed beforehand; WalletCore itself never parses a
// raw mnemonic so it has no BIP-39 wordlist dependency outside internal/keys.
func (WalletCore) Addresses(seed keys.Seed, requests []AddressRequest) (map[string]string, error) {
	out := make(map[string]string, len(requests))
	for _, r := range requests {
		address, err := deriveAddress(seed, r)
		if err != nil {
			return nil, err
		}
		out[r.Path] = address
	}
	return out, nil
}

func deriveAddress(seed keys.Seed, r AddressRequest) (string, error) {
	switch r.Family {
	case config.FamilyEVM, config.FamilyERC4337:
		node, err := keys.DeriveSecp256k1Path(seed, r.Path)
		if err != nil {
			return "", err
		}
		address, err := addr.EVMAddress(node.PubKey)
		if err != nil {
			return "", err
		}
		return addr.EIP55Checksum(address), nil
	case config.FamilyBitcoin:
		node, err := keys.DeriveSecp256k1Path(seed, r.Path)
		if err != nil {
			return "", err
		}
		net := addr.MainnetBTC
		net.Bech32HRP = r.HRP
		return addr.P2WPKHAddress(net, node.PubKey)
	case config.FamilyCosmos:
		node, err := keys.DeriveSecp256k1Path(seed, r.Path)
		if err != nil {
			return "", err
		}
		return addr.CosmosAddress(r.HRP, node.PubKey)
	case config.FamilySolana:
		node, err := keys.DeriveEd25519Path(seed, r.Path)
		if err != nil {
			return "", err
		}
		return addr.SolanaAddress(node.PubKey)
	default:
		return "", coreerr.Validation("walletcore: unsupported chain family %q", r.Family)
	}
}

// Build produces the unsigned transaction for intent, per spec.md §6's
// `build(intent) → UnsignedTx`.
func (WalletCore) Build(intent Intent) (UnsignedTx, error) {
	if err := intent.validate(); err != nil {
		return UnsignedTx{}, err
	}
	a, err := adapterFor(intent.Family)
	if err != nil {
		return UnsignedTx{}, err
	}
	return a.build(intent)
}

// Preimages computes the pre-signature digests (or, for Solana, raw
// message bytes) a Signer must sign over, per spec.md §6's
// `preimages(UnsignedTx) → [(signer_path, digest_or_msg, curve)]`.
func (WalletCore) Preimages(tx UnsignedTx) ([]PreimageRequest, error) {
	a, err := adapterFor(tx.Family)
	if err != nil {
		return nil, err
	}
	return a.preimages(tx)
}

// Assemble attaches signatures (ordered by PreimageRequest.Index) to an
// UnsignedTx, per spec.md §6's `assemble(UnsignedTx, [Signature]) →
// SignedTx`. pubKeys, when the family requires it (Bitcoin P2WPKH), must be
// the same-length, same-order set the orchestrator collected via
// KeyProvider.PublicKey for each SignerRef; pass nil where unneeded.
func (WalletCore) Assemble(tx UnsignedTx, sigs []signers.RawSignature, pubKeys [][]byte) (SignedTx, error) {
	a, err := adapterFor(tx.Family)
	if err != nil {
		return SignedTx{}, err
	}
	return a.assemble(tx, sigs, pubKeys)
}

// Serialize renders the final broadcastable wire bytes and canonical
// transaction id, per spec.md §6's `serialize(SignedTx) → {wire_bytes,
// txid}`.
func (WalletCore) Serialize(tx SignedTx) (wireBytes []byte, txid string, err error) {
	a, aerr := adapterFor(tx.Family)
	if aerr != nil {
		return nil, "", aerr
	}
	return a.serialize(tx)
}
