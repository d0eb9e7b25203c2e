// Package cosmos builds and hashes Cosmos SDK transactions under
// SIGN_MODE_DIRECT: protobuf TxBody/AuthInfo/SignDoc construction and the
// canonical sighash/serialization that follow from it.
package cosmos

// Coin is a denom/amount pair; amount is carried as a decimal string,
// matching the Cosmos SDK's own `sdk.Coin` wire representation.
type Coin struct {
	Denom  string
	Amount string
}

// Any is a protobuf `google.protobuf.Any`: a type URL plus the already
// protobuf-encoded bytes of that type. Every Cosmos message and public key
// travels wrapped in one.
type Any struct {
	TypeURL string
	Value   []byte
}

// Fee is the transaction's declared fee: coins, gas limit, and optional
// fee-grant payer/granter.
type Fee struct {
	Amount   []Coin
	GasLimit uint64
	Payer    string
	Granter  string
}

// SignerInfo is one signer's public key and sequence, always encoded here
// under SIGN_MODE_DIRECT (single, non-multisig mode info).
type SignerInfo struct {
	PublicKey Any
	Sequence  uint64
}

// UnsignedTx is the canonical pre-signature Cosmos transaction: messages,
// fee, memo, and the per-signer account context SIGN_MODE_DIRECT's
// SignDoc needs.
type UnsignedTx struct {
	Messages      []Any
	Memo          string
	TimeoutHeight uint64
	Fee           Fee
	Signers       []SignerInfo
	ChainID       string
	AccountNumber uint64
}

// SignedTx pairs an UnsignedTx with one signature per signer, in Signers
// order.
type SignedTx struct {
	Unsigned   UnsignedTx
	Signatures [][]byte
}
