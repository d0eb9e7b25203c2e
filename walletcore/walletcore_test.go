package walletcore

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x402-foundation/walletcore/chains/btc"
	"github.com/x402-foundation/walletcore/chains/cosmos"
	"github.com/x402-foundation/walletcore/chains/evm"
	"github.com/x402-foundation/walletcore/chains/solana"
	"github.com/x402-foundation/walletcore/config"
	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/keys"
	"github.com/x402-foundation/walletcore/signers"
)

func testLocalSigner(t *testing.T) *signers.LocalSigner {
	t.Helper()
	seed, err := keys.MnemonicToSeed("test test test test test test test test test test test junk", "")
	require.NoError(t, err)
	return signers.NewLocalSigner(seed)
}

func TestSignEVMLegacyEndToEnd(t *testing.T) {
	signer := testLocalSigner(t)
	ref := signers.KeyRef{Curve: signers.CurveSecp256k1ECDSA, Path: "m/44'/60'/0'/0/0"}

	to := [20]byte{0x35, 0x35, 0x35, 0x35, 0x35, 0x35, 0x35, 0x35, 0x35, 0x35, 0x35, 0x35, 0x35, 0x35, 0x35, 0x35, 0x35, 0x35, 0x35, 0x35}
	intent := Intent{
		Family: config.FamilyEVM,
		EVM: &evm.Intent{
			To:       &to,
			Value:    big.NewInt(1000000000000000000),
			GasLimit: 21000,
			Nonce:    9,
			ChainID:  1,
			GasPrice: big.NewInt(20000000000),
		},
		SignerRefs: []signers.KeyRef{ref},
	}

	result, err := NewOrchestrator().Sign(context.Background(), intent, signer, signer)
	require.NoError(t, err)
	assert.NotEmpty(t, result.WireBytes)
	assert.Regexp(t, "^0x[0-9a-f]{64}$", result.TxID)
}

func TestSignEVMRejectsMismatchedSignerCount(t *testing.T) {
	signer := testLocalSigner(t)
	to := [20]byte{}
	intent := Intent{
		Family: config.FamilyEVM,
		EVM: &evm.Intent{
			To: &to, Value: big.NewInt(0), GasLimit: 21000, Nonce: 0, ChainID: 1,
			GasPrice: big.NewInt(1),
		},
		SignerRefs: []signers.KeyRef{
			{Curve: signers.CurveSecp256k1ECDSA, Path: "m/44'/60'/0'/0/0"},
			{Curve: signers.CurveSecp256k1ECDSA, Path: "m/44'/60'/0'/0/1"},
		},
	}
	_, err := NewOrchestrator().Sign(context.Background(), intent, signer, signer)
	require.Error(t, err)
}

func TestSignBitcoinLegacyAndSegwitEndToEnd(t *testing.T) {
	signer := testLocalSigner(t)
	legacyRef := signers.KeyRef{Curve: signers.CurveSecp256k1ECDSA, Path: "m/44'/0'/0'/0/0"}
	segwitRef := signers.KeyRef{Curve: signers.CurveSecp256k1ECDSA, Path: "m/84'/0'/0'/0/0"}

	legacyPub, err := signer.PublicKey(context.Background(), legacyRef)
	require.NoError(t, err)
	segwitPub, err := signer.PublicKey(context.Background(), segwitRef)
	require.NoError(t, err)

	legacyScript := append([]byte{0x76, 0xa9, 0x14}, make([]byte, 20)...)
	legacyScript = append(legacyScript, 0x88, 0xac)
	_ = legacyPub

	segwitProgram := append([]byte{0x00, 0x14}, make([]byte, 20)...)
	_ = segwitPub

	intent := Intent{
		Family: config.FamilyBitcoin,
		Bitcoin: &btc.Intent{
			Inputs: []btc.Input{
				{PrevOut: btc.OutPoint{Vout: 0}, PrevScript: legacyScript, Amount: 100000, Sequence: 0xffffffff, ScriptKind: btc.ScriptLegacy, SighashFlags: btc.SighashAll},
				{PrevOut: btc.OutPoint{Vout: 1}, PrevScript: segwitProgram, Amount: 50000, Sequence: 0xffffffff, ScriptKind: btc.ScriptV0Witness, SighashFlags: btc.SighashAll},
			},
			Outputs: []btc.Output{
				{Amount: 140000, ScriptPubKey: legacyScript},
			},
		},
		SignerRefs: []signers.KeyRef{legacyRef, segwitRef},
	}

	result, err := NewOrchestrator().Sign(context.Background(), intent, signer, signer)
	require.NoError(t, err)
	assert.NotEmpty(t, result.WireBytes)
	assert.Len(t, result.TxID, 64)
}

func TestSignCosmosEndToEnd(t *testing.T) {
	signer := testLocalSigner(t)
	ref := signers.KeyRef{Curve: signers.CurveSecp256k1ECDSA, Path: "m/44'/118'/0'/0/0"}
	pub, err := signer.PublicKey(context.Background(), ref)
	require.NoError(t, err)

	intent := Intent{
		Family: config.FamilyCosmos,
		Cosmos: &cosmos.Intent{
			Messages: []cosmos.Any{cosmos.NewMsgSendAny("cosmos1from", "cosmos1to", []cosmos.Coin{{Denom: "uatom", Amount: "1000"}})},
			ChainID:  "cosmoshub-4",
			Fee:      cosmos.Fee{Amount: []cosmos.Coin{{Denom: "uatom", Amount: "500"}}, GasLimit: 200000},
			Signers:  []cosmos.SignerInfo{{PublicKey: cosmos.NewSecp256k1PubKeyAny(pub), Sequence: 0}},
		},
		SignerRefs: []signers.KeyRef{ref},
	}

	result, err := NewOrchestrator().Sign(context.Background(), intent, signer, signer)
	require.NoError(t, err)
	assert.NotEmpty(t, result.WireBytes)
	assert.Len(t, result.TxID, 64)
}

func TestSignSolanaEndToEnd(t *testing.T) {
	signer := testLocalSigner(t)
	ref := signers.KeyRef{Curve: signers.CurveEd25519, Path: "m/44'/501'/0'/0'"}
	pub, err := signer.PublicKey(context.Background(), ref)
	require.NoError(t, err)

	var feePayer [32]byte
	copy(feePayer[:], pub)
	var systemProgram [32]byte

	intent := Intent{
		Family: config.FamilySolana,
		Solana: &solana.Intent{
			FeePayer: feePayer,
			Instructions: []solana.Instruction{
				{ProgramID: systemProgram, Accounts: []solana.AccountMeta{{PublicKey: feePayer, IsSigner: true, IsWritable: true}}, Data: []byte{1, 2, 3, 4}},
			},
		},
		SignerRefs: []signers.KeyRef{ref},
	}

	result, err := NewOrchestrator().Sign(context.Background(), intent, signer, signer)
	require.NoError(t, err)
	assert.NotEmpty(t, result.WireBytes)
	assert.NotEmpty(t, result.TxID)
}

func TestSignERC4337V06EndToEnd(t *testing.T) {
	signer := testLocalSigner(t)
	ref := signers.KeyRef{Curve: signers.CurveSecp256k1ECDSA, Path: "m/44'/60'/0'/0/0"}

	var sender, entryPoint [20]byte
	sender[0] = 0xaa
	entryPoint[0] = 0xbb

	intent := Intent{
		Family: config.FamilyERC4337,
		ERC4337: &ERC4337Intent{
			EntryPoint: entryPoint,
			ChainID:    1,
			V06: &evm.UserOperationV06{
				Sender:               sender,
				CallGasLimit:         100000,
				VerificationGasLimit: 100000,
				PreVerificationGas:   21000,
				MaxFeePerGas:         big.NewInt(1_000_000_000),
				MaxPriorityFeePerGas: big.NewInt(1_000_000_000),
			},
		},
		SignerRefs: []signers.KeyRef{ref},
	}

	result, err := NewOrchestrator().Sign(context.Background(), intent, signer, signer)
	require.NoError(t, err)
	assert.NotEmpty(t, result.WireBytes)
	assert.Regexp(t, "^0x[0-9a-f]{64}$", result.TxID)
}

func TestIntentValidateRejectsZeroOrMultipleFamilyPayloads(t *testing.T) {
	none := Intent{Family: config.FamilyEVM, SignerRefs: []signers.KeyRef{{Path: "m/0"}}}
	require.Error(t, none.validate())

	to := [20]byte{}
	both := Intent{
		Family:     config.FamilyEVM,
		EVM:        &evm.Intent{To: &to, ChainID: 1, GasPrice: big.NewInt(1)},
		Bitcoin:    &btc.Intent{},
		SignerRefs: []signers.KeyRef{{Path: "m/0"}},
	}
	require.Error(t, both.validate())
}

func TestOrchestratorRejectsSignerMissingRequiredCapability(t *testing.T) {
	signer := testLocalSigner(t)
	// Ask for an EVM signature but only advertise Ed25519 — a hand-built
	// limited-capability wrapper around the same LocalSigner.
	limited := limitedSigner{Signer: signer, caps: []signers.Curve{signers.CurveEd25519}}

	to := [20]byte{}
	intent := Intent{
		Family: config.FamilyEVM,
		EVM: &evm.Intent{
			To: &to, Value: big.NewInt(0), GasLimit: 21000, Nonce: 0, ChainID: 1,
			GasPrice: big.NewInt(1),
		},
		SignerRefs: []signers.KeyRef{{Curve: signers.CurveSecp256k1ECDSA, Path: "m/44'/60'/0'/0/0"}},
	}
	_, err := NewOrchestrator().Sign(context.Background(), intent, limited, limited)
	require.Error(t, err)
	var ce *coreerr.CoreError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, coreerr.ReasonUnsupportedCurve, ce.Message)
}

type limitedSigner struct {
	*signers.LocalSigner
	caps []signers.Curve
}

func (l limitedSigner) Capabilities() []signers.Curve { return l.caps }
