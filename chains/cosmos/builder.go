package cosmos

import coreerr "github.com/x402-foundation/walletcore/errors"

// Intent is the semantic description of a Cosmos transaction: messages,
// fee, memo, and the chain/account context SIGN_MODE_DIRECT requires,
// per spec.md §4.6's "messages (each a typed payload with a registered
// type URL), fee ..., memo, chain id, account number, per-signer pubkey +
// sequence".
type Intent struct {
	Messages      []Any
	Memo          string
	TimeoutHeight uint64
	Fee           Fee
	Signers       []SignerInfo
	ChainID       string
	AccountNumber uint64
}

// Build validates the intent and returns the canonical UnsignedTx.
func Build(intent Intent) (UnsignedTx, error) {
	if len(intent.Messages) == 0 {
		return UnsignedTx{}, coreerr.Validation("cosmos: at least one message is required")
	}
	if intent.ChainID == "" {
		return UnsignedTx{}, coreerr.Validation("cosmos: chainId is required")
	}
	if len(intent.Signers) == 0 {
		return UnsignedTx{}, coreerr.Validation("cosmos: at least one signer is required")
	}
	for _, s := range intent.Signers {
		if s.PublicKey.TypeURL == "" {
			return UnsignedTx{}, coreerr.Validation("cosmos: signer public key must carry a type URL")
		}
	}
	return UnsignedTx{
		Messages:      intent.Messages,
		Memo:          intent.Memo,
		TimeoutHeight: intent.TimeoutHeight,
		Fee:           intent.Fee,
		Signers:       intent.Signers,
		ChainID:       intent.ChainID,
		AccountNumber: intent.AccountNumber,
	}, nil
}
