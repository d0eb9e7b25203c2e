package btc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x402-foundation/walletcore/internal/script"
)

func mustP2PKH(t *testing.T, h160 [20]byte) script.Script {
	s, err := script.P2PKH(h160[:])
	require.NoError(t, err)
	return s
}

func sampleTx(t *testing.T) UnsignedTx {
	h160a := [20]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	h160b := [20]byte{20, 19, 18, 17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}

	var txid1, txid2 [32]byte
	for i := range txid1 {
		txid1[i] = byte(i)
		txid2[i] = byte(255 - i)
	}

	intent := Intent{
		Inputs: []Input{
			{PrevOut: OutPoint{TxID: txid1, Vout: 1}, PrevScript: mustP2PKH(t, h160a), Amount: 49_000_000, Sequence: 0xffffffff, ScriptKind: ScriptLegacy, SighashFlags: SighashAll},
			{PrevOut: OutPoint{TxID: txid2, Vout: 0}, PrevScript: mustP2PKH(t, h160b), Amount: 600_000_000, Sequence: 0xffffffff, ScriptKind: ScriptV0Witness, SighashFlags: SighashAll},
		},
		Outputs: []Output{
			{Amount: 112_000_000, ScriptPubKey: mustP2PKH(t, h160a)},
			{Amount: 219_000_000, ScriptPubKey: mustP2PKH(t, h160b)},
		},
	}
	tx, err := Build(intent)
	require.NoError(t, err)
	return tx
}

func TestBuildEnforcesSumOutputsLessEqualSumInputs(t *testing.T) {
	h160 := [20]byte{}
	var txid [32]byte
	_, err := Build(Intent{
		Inputs:  []Input{{PrevOut: OutPoint{TxID: txid, Vout: 0}, Amount: 100}},
		Outputs: []Output{{Amount: 101, ScriptPubKey: mustP2PKH(t, h160)}},
	})
	assert.Error(t, err)
}

func TestBuildRejectsEmptyInputsOrOutputs(t *testing.T) {
	_, err := Build(Intent{Outputs: []Output{{Amount: 1}}})
	assert.Error(t, err)
	_, err = Build(Intent{Inputs: []Input{{Amount: 1}}})
	assert.Error(t, err)
}

func TestScriptCodeP2WPKHHasLengthPrefix(t *testing.T) {
	h160 := [20]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	code := ScriptCodeP2WPKH(h160[:])
	require.Len(t, code, 26) // 0x19 length byte + 25-byte P2PKH-shaped script
	assert.Equal(t, byte(0x19), code[0])
	assert.Equal(t, byte(0x76), code[1]) // OP_DUP
	assert.Equal(t, byte(0xa9), code[2]) // OP_HASH160
	assert.Equal(t, byte(0x88), code[24])
	assert.Equal(t, byte(0xac), code[25])
}

func TestLegacySighashDeterministicAndTypeSensitive(t *testing.T) {
	tx := sampleTx(t)
	sub := tx.Inputs[0].PrevScript
	h1 := LegacySighash(tx, 0, sub, SighashAll)
	h2 := LegacySighash(tx, 0, sub, SighashAll)
	assert.Equal(t, h1, h2)

	hNone := LegacySighash(tx, 0, sub, SighashNone)
	assert.NotEqual(t, h1, hNone)
}

func TestSegwitV0SighashDeterministicAndAmountSensitive(t *testing.T) {
	tx := sampleTx(t)
	h160b := [20]byte{20, 19, 18, 17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	scriptCode := ScriptCodeP2WPKH(h160b[:])

	h1 := SegwitV0Sighash(tx, 1, scriptCode, tx.Inputs[1].Amount, SighashAll)
	h2 := SegwitV0Sighash(tx, 1, scriptCode, tx.Inputs[1].Amount, SighashAll)
	assert.Equal(t, h1, h2)

	hDifferentAmount := SegwitV0Sighash(tx, 1, scriptCode, tx.Inputs[1].Amount+1, SighashAll)
	assert.NotEqual(t, h1, hDifferentAmount)
}

func TestSegwitV0SighashAnyoneCanPayOmitsOtherInputs(t *testing.T) {
	tx := sampleTx(t)
	h160b := [20]byte{20, 19, 18, 17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	scriptCode := ScriptCodeP2WPKH(h160b[:])

	hAll := SegwitV0Sighash(tx, 1, scriptCode, tx.Inputs[1].Amount, SighashAll)
	hAcp := SegwitV0Sighash(tx, 1, scriptCode, tx.Inputs[1].Amount, SighashAll|SighashAnyoneCanPay)
	assert.NotEqual(t, hAll, hAcp)
}

func TestTaprootSighashDeterministicAndHashTypeSensitive(t *testing.T) {
	tx := sampleTx(t)
	amounts := []int64{tx.Inputs[0].Amount, tx.Inputs[1].Amount}
	scripts := [][]byte{tx.Inputs[0].PrevScript, tx.Inputs[1].PrevScript}

	h1 := TaprootSighash(tx, 0, amounts, scripts, SighashAll, nil)
	h2 := TaprootSighash(tx, 0, amounts, scripts, SighashAll, nil)
	assert.Equal(t, h1, h2)

	hSingle := TaprootSighash(tx, 0, amounts, scripts, SighashSingle, nil)
	assert.NotEqual(t, h1, hSingle)
}

func TestTxIDAndWTxIDEqualWhenNoWitness(t *testing.T) {
	tx := sampleTx(t)
	scriptSigs := [][]byte{tx.Inputs[0].PrevScript, tx.Inputs[1].PrevScript}
	witnesses := []InputWitness{
		{ScriptSig: tx.Inputs[0].PrevScript},
		{ScriptSig: tx.Inputs[1].PrevScript},
	}
	txid := TxID(tx, scriptSigs)
	wtxid := WTxID(tx, witnesses)
	assert.Equal(t, txid, wtxid)
}

func TestWTxIDDiffersWhenWitnessPresent(t *testing.T) {
	tx := sampleTx(t)
	scriptSigs := [][]byte{tx.Inputs[0].PrevScript, nil}
	witnessesNoStack := []InputWitness{
		{ScriptSig: tx.Inputs[0].PrevScript},
		{},
	}
	witnessesWithStack := []InputWitness{
		{ScriptSig: tx.Inputs[0].PrevScript},
		{Witness: [][]byte{{0x01, 0x02}, {0x03}}},
	}
	txid := TxID(tx, scriptSigs)
	wtxidNoWitness := WTxID(tx, witnessesNoStack)
	wtxidWithWitness := WTxID(tx, witnessesWithStack)

	assert.Equal(t, txid, wtxidNoWitness)
	assert.NotEqual(t, wtxidNoWitness, wtxidWithWitness)
}
