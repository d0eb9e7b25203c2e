package solana

import (
	"bytes"
	"sort"

	coreerr "github.com/x402-foundation/walletcore/errors"
)

// Intent is the semantic description of a Solana transaction: a fee payer
// and an ordered list of instructions, per spec.md §4.6's "Accepts a list
// of instructions and a declared fee payer."
type Intent struct {
	FeePayer        [32]byte
	Instructions    []Instruction
	RecentBlockhash [32]byte
}

type accountEntry struct {
	key        [32]byte
	isSigner   bool
	isWritable bool
}

// Build derives the lexicographic account-key ordering (de-duplicating
// across instructions and program ids while preserving the OR of every
// is_signer/is_writable flag seen for that key), partitions it into the
// four (signer,writable) classes, sorts within each class by address
// bytes (fee payer pinned first), and compiles each instruction against
// the resulting table — spec.md §4.6's Solana builder description.
func Build(intent Intent) (Message, error) {
	if len(intent.Instructions) == 0 {
		return Message{}, coreerr.Validation("solana: at least one instruction is required")
	}

	entries := map[[32]byte]*accountEntry{}
	order := make([][32]byte, 0)

	touch := func(key [32]byte, signer, writable bool) {
		e, ok := entries[key]
		if !ok {
			e = &accountEntry{key: key}
			entries[key] = e
			order = append(order, key)
		}
		e.isSigner = e.isSigner || signer
		e.isWritable = e.isWritable || writable
	}

	touch(intent.FeePayer, true, true)
	for _, ix := range intent.Instructions {
		touch(ix.ProgramID, false, false)
		for _, acc := range ix.Accounts {
			touch(acc.PublicKey, acc.IsSigner, acc.IsWritable)
		}
	}

	var signerWritable, signerReadonly, nonSignerWritable, nonSignerReadonly []accountEntry
	for _, key := range order {
		e := *entries[key]
		switch {
		case e.isSigner && e.isWritable:
			signerWritable = append(signerWritable, e)
		case e.isSigner && !e.isWritable:
			signerReadonly = append(signerReadonly, e)
		case !e.isSigner && e.isWritable:
			nonSignerWritable = append(nonSignerWritable, e)
		default:
			nonSignerReadonly = append(nonSignerReadonly, e)
		}
	}

	sortByKeyPinningFeePayer(signerWritable, intent.FeePayer)
	sortByKey(signerReadonly)
	sortByKey(nonSignerWritable)
	sortByKey(nonSignerReadonly)

	var accountKeys [][32]byte
	for _, group := range [][]accountEntry{signerWritable, signerReadonly, nonSignerWritable, nonSignerReadonly} {
		for _, e := range group {
			accountKeys = append(accountKeys, e.key)
		}
	}

	indexOf := make(map[[32]byte]byte, len(accountKeys))
	for i, k := range accountKeys {
		indexOf[k] = byte(i)
	}

	compiled := make([]CompiledInstruction, len(intent.Instructions))
	for i, ix := range intent.Instructions {
		idxs := make([]byte, len(ix.Accounts))
		for j, acc := range ix.Accounts {
			idxs[j] = indexOf[acc.PublicKey]
		}
		compiled[i] = CompiledInstruction{
			ProgramIDIndex: indexOf[ix.ProgramID],
			AccountIndexes: idxs,
			Data:           ix.Data,
		}
	}

	return Message{
		Header: MessageHeader{
			NumRequiredSignatures:       byte(len(signerWritable) + len(signerReadonly)),
			NumReadonlySignedAccounts:   byte(len(signerReadonly)),
			NumReadonlyUnsignedAccounts: byte(len(nonSignerReadonly)),
		},
		AccountKeys:     accountKeys,
		RecentBlockhash: intent.RecentBlockhash,
		Instructions:    compiled,
	}, nil
}

func sortByKey(entries []accountEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key[:], entries[j].key[:]) < 0
	})
}

// sortByKeyPinningFeePayer sorts entries by address bytes with feePayer
// forced to the front — Solana always places the fee payer at account
// index 0.
func sortByKeyPinningFeePayer(entries []accountEntry, feePayer [32]byte) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].key == feePayer {
			return true
		}
		if entries[j].key == feePayer {
			return false
		}
		return bytes.Compare(entries[i].key[:], entries[j].key[:]) < 0
	})
}
