package evm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAddr(hexStr string) [20]byte {
	var out [20]byte
	b := mustHex(hexStr)
	copy(out[:], b)
	return out
}

func mustHex(s string) []byte {
	b := make([]byte, len(s)/2)
	for i := 0; i < len(b); i++ {
		var hi, lo byte
		hi = hexNibble(s[2*i])
		lo = hexNibble(s[2*i+1])
		b[i] = hi<<4 | lo
	}
	return b
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// TestLegacySighashEIP155Vector reproduces the canonical EIP-155 worked
// example (chainId=1, nonce=9, gasPrice=20 gwei, gasLimit=21000, value=1
// ether, empty data) and checks the resulting sighash against the reference
// value published in the EIP-155 specification itself.
func TestLegacySighashEIP155Vector(t *testing.T) {
	to := mustAddr("3535353535353535353535353535353535353535")
	tx := UnsignedTx{
		Type:     TypeLegacy,
		ChainID:  1,
		Nonce:    9,
		GasLimit: 21000,
		To:       &to,
		Value:    new(big.Int).SetUint64(1000000000000000000),
		Data:     nil,
		GasPrice: new(big.Int).SetUint64(20000000000),
	}
	sighash, err := Preimage(tx)
	require.NoError(t, err)
	assert.Equal(t, "daf5a779ae972f972197303d7b574746c7ef83eadac0f2791ad23db92e4c8e53", hexString(sighash[:]))
}

func hexString(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[2*i] = digits[c>>4]
		out[2*i+1] = digits[c&0x0f]
	}
	return string(out)
}

func TestLegacyVIsEIP155Shaped(t *testing.T) {
	for _, chainID := range []uint64{1, 5, 137} {
		vEven := EIP155V(chainID, 0)
		vOdd := EIP155V(chainID, 1)
		assert.Equal(t, 35+2*chainID, vEven)
		assert.Equal(t, 36+2*chainID, vOdd)
	}
}

func TestPreimageDeterministic(t *testing.T) {
	to := mustAddr("3535353535353535353535353535353535353535")
	tx := UnsignedTx{
		Type:                 TypeDynamicFee,
		ChainID:              137,
		Nonce:                3,
		GasLimit:             100000,
		To:                   &to,
		Value:                big.NewInt(0),
		MaxPriorityFeePerGas: big.NewInt(2_000_000_000),
		MaxFeePerGas:         big.NewInt(50_000_000_000),
	}
	h1, err := Preimage(tx)
	require.NoError(t, err)
	h2, err := Preimage(tx)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestDynamicFeeSerializeStartsWithTypeByte(t *testing.T) {
	to := mustAddr("3535353535353535353535353535353535353535")
	tx := UnsignedTx{
		Type:                 TypeDynamicFee,
		ChainID:              137,
		Nonce:                3,
		GasLimit:             100000,
		To:                   &to,
		Value:                big.NewInt(0),
		MaxPriorityFeePerGas: big.NewInt(2_000_000_000),
		MaxFeePerGas:         big.NewInt(50_000_000_000),
	}
	sig := Signature{R: big.NewInt(1), S: big.NewInt(2), YParity: 1}
	raw, err := Serialize(tx, sig)
	require.NoError(t, err)
	assert.Equal(t, byte(TypeDynamicFee), raw[0])
}

func TestSetCodeSerializeStartsWithTypeByte(t *testing.T) {
	to := mustAddr("3535353535353535353535353535353535353535")
	delegate := mustAddr("1010101010101010101010101010101010101010")
	tx := UnsignedTx{
		Type:                 TypeSetCode,
		ChainID:              1,
		Nonce:                0,
		GasLimit:             100000,
		To:                   &to,
		Value:                big.NewInt(0),
		MaxPriorityFeePerGas: big.NewInt(1),
		MaxFeePerGas:         big.NewInt(1),
		AuthorizationList: []Authorization{
			{ChainID: 1, Address: delegate, Nonce: 0, YParity: 0, R: big.NewInt(7), S: big.NewInt(9)},
		},
	}
	sig := Signature{R: big.NewInt(1), S: big.NewInt(2), YParity: 0}
	raw, err := Serialize(tx, sig)
	require.NoError(t, err)
	assert.Equal(t, byte(TypeSetCode), raw[0])

	authHash := AuthorizationPreimage(tx.AuthorizationList[0])
	authHash2 := AuthorizationPreimage(tx.AuthorizationList[0])
	assert.Equal(t, authHash, authHash2)
}

func TestBuildRejectsMixedFeeSchemes(t *testing.T) {
	_, err := Build(Intent{
		ChainID:      1,
		GasPrice:     big.NewInt(1),
		MaxFeePerGas: big.NewInt(1),
	})
	assert.Error(t, err)
}

func TestBuildRejectsMissingFeeScheme(t *testing.T) {
	_, err := Build(Intent{ChainID: 1})
	assert.Error(t, err)
}

func TestBuildInfersSetCodeFromAuthorizationList(t *testing.T) {
	delegate := mustAddr("1010101010101010101010101010101010101010")
	tx, err := Build(Intent{
		ChainID:              1,
		MaxFeePerGas:         big.NewInt(1),
		MaxPriorityFeePerGas: big.NewInt(1),
		AuthorizationList: []Authorization{
			{ChainID: 1, Address: delegate, Nonce: 0},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, TypeSetCode, tx.Type)
}

func TestBuildInfersLegacyByDefault(t *testing.T) {
	tx, err := Build(Intent{ChainID: 1, GasPrice: big.NewInt(1)})
	require.NoError(t, err)
	assert.Equal(t, TypeLegacy, tx.Type)
}

func TestBuildRejectsAccessListOnLegacy(t *testing.T) {
	to := mustAddr("3535353535353535353535353535353535353535")
	_, err := Build(Intent{
		ChainID:  1,
		GasPrice: big.NewInt(1),
		AccessList: []AccessTuple{
			{Address: to},
		},
	})
	assert.Error(t, err)
}

// TestERC4337HashesDifferAcrossVersions checks spec.md §8's ERC-4337
// property: v0.6 and v0.7 hashes over the "same logical" UserOperation
// differ, since packing and EntryPoint ABI differ between them.
func TestERC4337HashesDifferAcrossVersions(t *testing.T) {
	sender := mustAddr("1111111111111111111111111111111111111111")
	entryPoint := mustAddr("2222222222222222222222222222222222222222")

	v06 := UserOperationV06{
		Sender:               sender,
		Nonce:                1,
		CallGasLimit:         50000,
		VerificationGasLimit: 100000,
		PreVerificationGas:   21000,
		MaxFeePerGas:         big.NewInt(2_000_000_000),
		MaxPriorityFeePerGas: big.NewInt(1_000_000_000),
	}
	v07 := PackV07(UserOperationV07{
		Sender:               sender,
		Nonce:                1,
		CallGasLimit:         50000,
		VerificationGasLimit: 100000,
		PreVerificationGas:   21000,
		MaxFeePerGas:         big.NewInt(2_000_000_000),
		MaxPriorityFeePerGas: big.NewInt(1_000_000_000),
	})

	h06 := UserOpHashV06(v06, entryPoint, 1)
	h07 := UserOpHashV07(v07, entryPoint, 1)
	assert.NotEqual(t, h06, h07)
}

func TestPackV07AssemblesAccountGasLimitsAndGasFees(t *testing.T) {
	sender := mustAddr("1111111111111111111111111111111111111111")
	packed := PackV07(UserOperationV07{
		Sender:               sender,
		VerificationGasLimit: 100000,
		CallGasLimit:         50000,
		MaxPriorityFeePerGas: big.NewInt(1_000_000_000),
		MaxFeePerGas:         big.NewInt(2_000_000_000),
	})
	assert.Equal(t, uint64(100000), new(big.Int).SetBytes(packed.AccountGasLimits[:16]).Uint64())
	assert.Equal(t, uint64(50000), new(big.Int).SetBytes(packed.AccountGasLimits[16:]).Uint64())
	assert.Equal(t, uint64(1_000_000_000), new(big.Int).SetBytes(packed.GasFees[:16]).Uint64())
	assert.Equal(t, uint64(2_000_000_000), new(big.Int).SetBytes(packed.GasFees[16:]).Uint64())
	assert.Empty(t, packed.InitCode)
	assert.Empty(t, packed.PaymasterAndData)
}

func TestPackV07WithFactoryAndPaymaster(t *testing.T) {
	sender := mustAddr("1111111111111111111111111111111111111111")
	factory := mustAddr("3333333333333333333333333333333333333333")
	paymaster := mustAddr("4444444444444444444444444444444444444444")
	packed := PackV07(UserOperationV07{
		Sender:                        sender,
		Factory:                       &factory,
		FactoryData:                   []byte{0xde, 0xad},
		Paymaster:                     &paymaster,
		PaymasterVerificationGasLimit: 1000,
		PaymasterPostOpGasLimit:       2000,
		PaymasterData:                 []byte{0xbe, 0xef},
	})
	assert.Equal(t, append(append([]byte{}, factory[:]...), 0xde, 0xad), packed.InitCode)
	assert.Len(t, packed.PaymasterAndData, 20+16+16+2)
}

func TestUserOperationEIP712HashStableUnderReserialization(t *testing.T) {
	entryPoint := mustAddr("2222222222222222222222222222222222222222")
	op := PackedUserOperation{
		Sender:             mustAddr("1111111111111111111111111111111111111111"),
		Nonce:              1,
		CallData:           []byte{0x01, 0x02},
		PreVerificationGas: 21000,
	}
	h1, err := UserOperationEIP712Hash(entryPoint, 1, op)
	require.NoError(t, err)

	// Reconstructing an equal-by-value op from fresh byte slices must hash
	// identically: the EIP-712 digest depends only on field contents.
	opAgain := PackedUserOperation{
		Sender:             op.Sender,
		Nonce:              op.Nonce,
		CallData:           append([]byte{}, op.CallData...),
		PreVerificationGas: op.PreVerificationGas,
	}
	h2, err := UserOperationEIP712Hash(entryPoint, 1, opAgain)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestUserOpHashDispatch(t *testing.T) {
	entryPoint := mustAddr("2222222222222222222222222222222222222222")
	v06 := UserOperationV06{
		Sender:               mustAddr("1111111111111111111111111111111111111111"),
		MaxFeePerGas:         big.NewInt(1),
		MaxPriorityFeePerGas: big.NewInt(1),
	}
	h, err := UserOpHash(v06, entryPoint, 1)
	require.NoError(t, err)
	assert.NotEqual(t, [32]byte{}, h)

	_, err = UserOpHash("not a user operation", entryPoint, 1)
	assert.Error(t, err)
}
