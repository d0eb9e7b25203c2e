package keys_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x402-foundation/walletcore/internal/keys"
)

const referenceMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestValidateMnemonicAccepts12WordReference(t *testing.T) {
	require.NoError(t, keys.ValidateMnemonic(referenceMnemonic))
}

func TestValidateMnemonicRejectsBadChecksum(t *testing.T) {
	bad := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"
	err := keys.ValidateMnemonic(bad)
	require.Error(t, err)
}

func TestValidateMnemonicRejectsUnknownWord(t *testing.T) {
	err := keys.ValidateMnemonic("notaword abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about")
	require.Error(t, err)
}

func TestValidateMnemonicRejectsBadWordCount(t *testing.T) {
	err := keys.ValidateMnemonic("abandon abandon abandon")
	require.Error(t, err)
}

func TestMnemonicToSeedDeterministic(t *testing.T) {
	s1, err := keys.MnemonicToSeed(referenceMnemonic, "")
	require.NoError(t, err)
	s2, err := keys.MnemonicToSeed(referenceMnemonic, "")
	require.NoError(t, err)
	require.Equal(t, s1, s2)

	withPass, err := keys.MnemonicToSeed(referenceMnemonic, "TREZOR")
	require.NoError(t, err)
	require.NotEqual(t, s1, withPass, "passphrase must change the derived seed")
}

func TestDeriveSecp256k1PathMasterVsChild(t *testing.T) {
	seed, err := keys.MnemonicToSeed(referenceMnemonic, "")
	require.NoError(t, err)

	master, err := keys.MasterKeySecp256k1(seed)
	require.NoError(t, err)
	require.Equal(t, keys.Secp256k1, master.Curve)
	require.Len(t, master.Priv, 32)
	require.Len(t, master.PubKey, 33)

	node, err := keys.DeriveSecp256k1Path(seed, "m/44'/60'/0'/0/0")
	require.NoError(t, err)
	require.NotEqual(t, master.Priv, node.Priv)
	require.Equal(t, uint8(5), node.Depth)
}

func TestDeriveSecp256k1PathDeterministic(t *testing.T) {
	seed, err := keys.MnemonicToSeed(referenceMnemonic, "")
	require.NoError(t, err)

	a, err := keys.DeriveSecp256k1Path(seed, "m/44'/60'/0'/0/0")
	require.NoError(t, err)
	b, err := keys.DeriveSecp256k1Path(seed, "m/44'/60'/0'/0/0")
	require.NoError(t, err)
	require.Equal(t, a.Priv, b.Priv)
	require.Equal(t, a.PubKey, b.PubKey)

	c, err := keys.DeriveSecp256k1Path(seed, "m/84'/0'/0'/0/0")
	require.NoError(t, err)
	require.NotEqual(t, a.Priv, c.Priv, "different paths must derive different keys")
}

func TestDeriveEd25519PathRejectsNonHardened(t *testing.T) {
	seed, err := keys.MnemonicToSeed(referenceMnemonic, "")
	require.NoError(t, err)

	_, err = keys.DeriveEd25519Path(seed, "m/44'/501'/0'/0")
	require.Error(t, err, "slip-0010 ed25519 must reject the final non-hardened segment")
}

func TestDeriveEd25519PathDeterministic(t *testing.T) {
	seed, err := keys.MnemonicToSeed(referenceMnemonic, "")
	require.NoError(t, err)

	a, err := keys.DeriveEd25519Path(seed, "m/44'/501'/0'/0'")
	require.NoError(t, err)
	require.Len(t, a.PubKey, 32)

	b, err := keys.DeriveEd25519Path(seed, "m/44'/501'/0'/0'")
	require.NoError(t, err)
	require.Equal(t, a.PubKey, b.PubKey)

	c, err := keys.DeriveEd25519Path(seed, "m/44'/501'/1'/0'")
	require.NoError(t, err)
	require.NotEqual(t, a.PubKey, c.PubKey)
}

func TestParsePathAcceptsHAndApostropheMarkers(t *testing.T) {
	a, err := keys.ParsePath("m/44'/60'/0'/0/0")
	require.NoError(t, err)
	b, err := keys.ParsePath("m/44h/60h/0h/0/0")
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestParsePathRejectsMissingM(t *testing.T) {
	_, err := keys.ParsePath("44'/60'/0'/0/0")
	require.Error(t, err)
}

func TestParsePathRejectsOutOfRangeIndex(t *testing.T) {
	_, err := keys.ParsePath("m/4294967296")
	require.Error(t, err)
}
