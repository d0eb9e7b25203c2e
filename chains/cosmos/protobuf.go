package cosmos

import "github.com/x402-foundation/walletcore/internal/script"

const signModeDirect = 1 // cosmos.tx.signing.v1beta1.SignMode.SIGN_MODE_DIRECT

func encodeCoin(c Coin) []byte {
	w := script.NewProtoWriter()
	w.AppendBytes(1, []byte(c.Denom))
	w.AppendBytes(2, []byte(c.Amount))
	return w.Bytes()
}

func encodeCoins(coins []Coin) [][]byte {
	out := make([][]byte, len(coins))
	for i, c := range coins {
		out[i] = encodeCoin(c)
	}
	return out
}

func encodeAny(a Any) []byte {
	w := script.NewProtoWriter()
	w.AppendBytes(1, []byte(a.TypeURL))
	w.AppendBytes(2, a.Value)
	return w.Bytes()
}

// encodeModeInfoSingleDirect encodes a ModeInfo message whose oneof is
// `single { mode: SIGN_MODE_DIRECT }` — the only signing mode this core
// produces.
func encodeModeInfoSingleDirect() []byte {
	single := script.NewProtoWriter()
	single.AppendVarint(1, uint64(signModeDirect))

	outer := script.NewProtoWriter()
	outer.AppendMessage(1, single.Bytes())
	return outer.Bytes()
}

func encodeSignerInfo(si SignerInfo) []byte {
	w := script.NewProtoWriter()
	w.AppendMessage(1, encodeAny(si.PublicKey))
	w.AppendMessage(2, encodeModeInfoSingleDirect())
	w.AppendVarint(3, si.Sequence)
	return w.Bytes()
}

func encodeFee(f Fee) []byte {
	w := script.NewProtoWriter()
	w.AppendRepeatedMessage(1, encodeCoins(f.Amount))
	w.AppendVarint(2, f.GasLimit)
	w.AppendBytes(3, []byte(f.Payer))
	w.AppendBytes(4, []byte(f.Granter))
	return w.Bytes()
}

// bodyBytes encodes the TxBody: repeated message Any, memo, timeout_height.
func bodyBytes(tx UnsignedTx) []byte {
	msgs := make([][]byte, len(tx.Messages))
	for i, m := range tx.Messages {
		msgs[i] = encodeAny(m)
	}
	w := script.NewProtoWriter()
	w.AppendRepeatedMessage(1, msgs)
	w.AppendBytes(2, []byte(tx.Memo))
	w.AppendVarint(3, tx.TimeoutHeight)
	return w.Bytes()
}

// authInfoBytes encodes the AuthInfo: repeated SignerInfo, Fee.
func authInfoBytes(tx UnsignedTx) []byte {
	infos := make([][]byte, len(tx.Signers))
	for i, si := range tx.Signers {
		infos[i] = encodeSignerInfo(si)
	}
	w := script.NewProtoWriter()
	w.AppendRepeatedMessage(1, infos)
	w.AppendMessage(2, encodeFee(tx.Fee))
	return w.Bytes()
}

// encodeSignDoc encodes the SIGN_MODE_DIRECT SignDoc: body_bytes,
// auth_info_bytes, chain_id, account_number.
func encodeSignDoc(body, authInfo []byte, chainID string, accountNumber uint64) []byte {
	w := script.NewProtoWriter()
	w.AppendBytes(1, body)
	w.AppendBytes(2, authInfo)
	w.AppendBytes(3, []byte(chainID))
	w.AppendVarint(4, accountNumber)
	return w.Bytes()
}

// encodeTx encodes the final broadcast envelope: body, auth_info,
// signatures.
func encodeTx(body, authInfo []byte, signatures [][]byte) []byte {
	w := script.NewProtoWriter()
	w.AppendMessage(1, body)
	w.AppendMessage(2, authInfo)
	w.AppendRepeatedMessage(3, signatures)
	return w.Bytes()
}

// NewMsgSendAny wraps a bank MsgSend in an Any, for scenario tests and
// callers that need a concrete registered message type.
func NewMsgSendAny(fromAddress, toAddress string, amount []Coin) Any {
	w := script.NewProtoWriter()
	w.AppendBytes(1, []byte(fromAddress))
	w.AppendBytes(2, []byte(toAddress))
	w.AppendRepeatedMessage(3, encodeCoins(amount))
	return Any{TypeURL: "/cosmos.bank.v1beta1.MsgSend", Value: w.Bytes()}
}

// NewSecp256k1PubKeyAny wraps a compressed secp256k1 public key in the
// Any/PubKey shape the Cosmos SDK's crypto registry expects.
func NewSecp256k1PubKeyAny(compressedPubKey []byte) Any {
	w := script.NewProtoWriter()
	w.AppendBytes(1, compressedPubKey)
	return Any{TypeURL: "/cosmos.crypto.secp256k1.PubKey", Value: w.Bytes()}
}
