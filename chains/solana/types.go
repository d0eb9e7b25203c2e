// Package solana builds and serializes Solana transactions: account-key
// ordering, instruction compilation, and the compact Message wire format
// Ed25519 signs directly.
package solana

// AccountMeta describes one account an instruction references, before the
// builder has assigned it a slot in the compiled account-key table.
type AccountMeta struct {
	PublicKey  [32]byte
	IsSigner   bool
	IsWritable bool
}

// Instruction is one semantic instruction: a target program plus the
// accounts it touches and its opaque data payload.
type Instruction struct {
	ProgramID [32]byte
	Accounts  []AccountMeta
	Data      []byte
}

// CompiledInstruction is an Instruction rewritten against the message's
// compiled account-key table: program and account references become
// indices into that table.
type CompiledInstruction struct {
	ProgramIDIndex byte
	AccountIndexes []byte
	Data           []byte
}

// MessageHeader records how many of the leading account-key table entries
// fall into each of the three counted classes (signer+writable accounts
// are never separately counted; the header derives the remaining classes
// by position).
type MessageHeader struct {
	NumRequiredSignatures       byte
	NumReadonlySignedAccounts   byte
	NumReadonlyUnsignedAccounts byte
}

// Message is the compiled, wire-ready Solana transaction message.
type Message struct {
	Header          MessageHeader
	AccountKeys     [][32]byte
	RecentBlockhash [32]byte
	Instructions    []CompiledInstruction
}

// Transaction pairs a Message with one Ed25519 signature per required
// signer, in AccountKeys order (the first NumRequiredSignatures entries).
type Transaction struct {
	Signatures [][64]byte
	Message    Message
}
