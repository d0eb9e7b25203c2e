package cosmos

import (
	"encoding/hex"
	"strings"

	"github.com/x402-foundation/walletcore/internal/hashing"
)

// SignDoc is the SIGN_MODE_DIRECT tuple a signer signs over: the raw
// body_bytes and auth_info_bytes plus the account context, per spec.md
// §4.7's `SignDoc = protobuf({body_bytes, auth_info_bytes, chain_id,
// account_number})`.
type SignDoc struct {
	BodyBytes     []byte
	AuthInfoBytes []byte
	ChainID       string
	AccountNumber uint64
}

// BuildSignDoc renders tx's body_bytes/auth_info_bytes and assembles the
// SignDoc tuple.
func BuildSignDoc(tx UnsignedTx) SignDoc {
	return SignDoc{
		BodyBytes:     bodyBytes(tx),
		AuthInfoBytes: authInfoBytes(tx),
		ChainID:       tx.ChainID,
		AccountNumber: tx.AccountNumber,
	}
}

// Bytes renders the canonical protobuf encoding of the SignDoc.
func (d SignDoc) Bytes() []byte {
	return encodeSignDoc(d.BodyBytes, d.AuthInfoBytes, d.ChainID, d.AccountNumber)
}

// Preimage computes the bytes32 the signer actually signs: sha256 of the
// canonical SignDoc encoding, per spec.md §4.7 ("sighash =
// sha256(serialize(SignDoc)); the curve signs the sha256 digest").
func Preimage(tx UnsignedTx) [32]byte {
	return hashing.SHA256(BuildSignDoc(tx).Bytes())
}

// Serialize attaches one signature per signer (in Signers order) and
// renders the final broadcastable Tx bytes.
func Serialize(tx UnsignedTx, signatures [][]byte) []byte {
	doc := BuildSignDoc(tx)
	return encodeTx(doc.BodyBytes, doc.AuthInfoBytes, signatures)
}

// TxHash computes the Cosmos transaction hash: uppercase hex of
// sha256(serialize(Tx)), per spec.md §4.8.
func TxHash(serializedTx []byte) string {
	digest := hashing.SHA256(serializedTx)
	return strings.ToUpper(hex.EncodeToString(digest[:]))
}
