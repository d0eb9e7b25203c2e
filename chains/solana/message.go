package solana

import (
	"github.com/mr-tron/base58"

	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/primitives"
)

// Serialize renders the compiled Message's wire bytes: the 3-byte header,
// the short-vec-length-prefixed account-key table, the recent blockhash,
// and the short-vec-length-prefixed instruction list — the exact bytes
// Ed25519 signs directly (no pre-hash), per spec.md §4.7.
func (m Message) Serialize() []byte {
	var out []byte
	out = append(out, m.Header.NumRequiredSignatures, m.Header.NumReadonlySignedAccounts, m.Header.NumReadonlyUnsignedAccounts)

	out = append(out, primitives.ShortVecSolana(uint16(len(m.AccountKeys)))...)
	for _, k := range m.AccountKeys {
		out = append(out, k[:]...)
	}

	out = append(out, m.RecentBlockhash[:]...)

	out = append(out, primitives.ShortVecSolana(uint16(len(m.Instructions)))...)
	for _, ix := range m.Instructions {
		out = append(out, ix.ProgramIDIndex)
		out = append(out, primitives.ShortVecSolana(uint16(len(ix.AccountIndexes)))...)
		out = append(out, ix.AccountIndexes...)
		out = append(out, primitives.ShortVecSolana(uint16(len(ix.Data)))...)
		out = append(out, ix.Data...)
	}
	return out
}

// Serialize renders the final broadcastable transaction: short-vec count
// of 64-byte signatures followed by the serialized message.
func (tx Transaction) Serialize() []byte {
	var out []byte
	out = append(out, primitives.ShortVecSolana(uint16(len(tx.Signatures)))...)
	for _, sig := range tx.Signatures {
		out = append(out, sig[:]...)
	}
	out = append(out, tx.Message.Serialize()...)
	return out
}

// TxID is the Solana transaction id: base58(signatures[0]), per spec.md
// §4.8.
func (tx Transaction) TxID() (string, error) {
	if len(tx.Signatures) == 0 {
		return "", coreerr.Validation("solana: transaction has no signatures")
	}
	return base58.Encode(tx.Signatures[0][:]), nil
}
