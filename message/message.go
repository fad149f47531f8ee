// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

// Package message implements the wire-level compiled transaction message:
// the account key table, the header that marks signer/writable ranges, and
// the flat instruction list that instrproj and txlayout project into the
// guest ABI. It is the "consumed interface" side of this module — callers
// hand a message.Message to txlayout.Build, and instrproj.Project walks it
// instruction by instruction.
package message

import (
	"fmt"

	"github.com/cielu/go-guestvm/common"
	"github.com/cielu/go-guestvm/pkg/encodbin"
)

// Message is the read-only view that instrproj and txlayout need of a
// compiled transaction message. CompiledMessage is the only implementation
// in this module, but callers embedding this module's packages into a
// larger runtime can satisfy it with their own wire format.
type Message interface {
	// NumAccounts returns len(AccountKeys): the number of entries in the
	// flat transaction account key table.
	NumAccounts() int
	// AccountAt returns the pubkey at a given index in the account key
	// table.
	AccountAt(index int) common.Address
	// NumInstructions returns the number of top-level instructions.
	NumInstructions() int
	// InstructionAt returns the compiled instruction at the given index.
	InstructionAt(index int) CompiledInstruction
	// IsSignerIdx reports whether the account at index signed the
	// transaction, per the message header's signer ranges.
	IsSignerIdx(index int) bool
	// IsWritableIdx reports whether the account at index is writable in
	// this transaction, per the message header's readonly ranges.
	IsWritableIdx(index int) bool
}

// CompiledInstruction is one entry in a compiled message's flat instruction
// list: a program index into the account key table, the indexes of the
// accounts it touches (also into that table), and its opaque instruction
// data. instrproj.Project consumes these directly when it builds the guest
// instruction descriptors and account references.
type CompiledInstruction struct {
	ProgramIDIndex uint16
	Accounts       []uint16
	Data           []byte
}

// CompiledMessage is the concrete Message implementation: the compiled
// legacy wire form of a transaction, with a flat account key table, a
// header marking signer/writable ranges, and the instruction list.
// Versioned (v0) messages and address-table lookups are out of scope —
// spec.md's Non-goals exclude wire message parsing beyond what
// instrproj/txlayout actually consume, and nothing in this module resolves
// an address-table lookup into an account key.
type CompiledMessage struct {
	// List of base-58 encoded public keys used by the transaction,
	// including by the instructions and for signatures.
	// The first `header.NumRequiredSignatures` public keys must sign the transaction.
	AccountKeys []common.Address `json:"accountKeys"`
	// Details the account types and signatures required by the transaction.
	Header MessageHeader `json:"header"`
	// A base-58 encoded hash of a recent block in the ledger used to
	// prevent transaction duplication and to give transactions lifetimes.
	RecentBlockhash common.Hash `json:"recentBlockhash"`
	// List of program instructions that will be executed in sequence
	// and committed in one atomic transaction if all succeed.
	Instructions []CompiledInstruction `json:"instructions"`
}

// MessageHeader marks the signer/writable ranges of the account key table.
type MessageHeader struct {
	// The total number of signatures required to make the transaction valid.
	// The signatures must match the first `numRequiredSignatures` of `message.account_keys`.
	NumRequiredSignatures uint8 `json:"numRequiredSignatures"`

	// The last numReadonlySignedAccounts of the signed keys are read-only accounts.
	NumReadonlySignedAccounts uint8 `json:"numReadonlySignedAccounts"`

	// The last `numReadonlyUnsignedAccounts` of the unsigned keys are read-only accounts.
	NumReadonlyUnsignedAccounts uint8 `json:"numReadonlyUnsignedAccounts"`
}

// MarshalLegacy encodes the message in Solana's legacy (unversioned) wire
// format.
func (m *CompiledMessage) MarshalLegacy() ([]byte, error) {
	buf := []byte{
		m.Header.NumRequiredSignatures,
		m.Header.NumReadonlySignedAccounts,
		m.Header.NumReadonlyUnsignedAccounts,
	}

	encodbin.EncodeCompactU16Length(&buf, len(m.AccountKeys))
	for _, key := range m.AccountKeys {
		buf = append(buf, key[:]...)
	}

	buf = append(buf, m.RecentBlockhash[:]...)

	encodbin.EncodeCompactU16Length(&buf, len(m.Instructions))
	for _, instruction := range m.Instructions {
		buf = append(buf, byte(instruction.ProgramIDIndex))
		encodbin.EncodeCompactU16Length(&buf, len(instruction.Accounts))
		for _, accountIdx := range instruction.Accounts {
			buf = append(buf, byte(accountIdx))
		}

		encodbin.EncodeCompactU16Length(&buf, len(instruction.Data))
		buf = append(buf, instruction.Data...)
	}
	return buf, nil
}

// NumAccounts implements Message.
func (m *CompiledMessage) NumAccounts() int {
	return len(m.AccountKeys)
}

// AccountAt implements Message.
func (m *CompiledMessage) AccountAt(index int) common.Address {
	return m.AccountKeys[index]
}

// NumInstructions implements Message.
func (m *CompiledMessage) NumInstructions() int {
	return len(m.Instructions)
}

// InstructionAt implements Message.
func (m *CompiledMessage) InstructionAt(index int) CompiledInstruction {
	return m.Instructions[index]
}

// IsSignerIdx implements Message. An account is a signer iff its index
// falls within the first NumRequiredSignatures entries of the key table.
func (m *CompiledMessage) IsSignerIdx(index int) bool {
	return index < int(m.Header.NumRequiredSignatures)
}

// IsWritableIdx implements Message. The header carves the key table into
// four ranges: writable signers, readonly signers, writable non-signers,
// readonly non-signers, in that order.
func (m *CompiledMessage) IsWritableIdx(index int) bool {
	h := m.Header
	return (index < int(h.NumRequiredSignatures-h.NumReadonlySignedAccounts)) ||
		((index >= int(h.NumRequiredSignatures)) && (index < len(m.AccountKeys)-int(h.NumReadonlyUnsignedAccounts)))
}

func (m *CompiledMessage) UnmarshalWithDecoder(decoder *encodbin.Decoder) error {
	return m.UnmarshalLegacy(decoder)
}

func (m *CompiledMessage) UnmarshalLegacy(decoder *encodbin.Decoder) (err error) {
	{
		m.Header.NumRequiredSignatures, err = decoder.ReadUint8()
		if err != nil {
			return fmt.Errorf("unable to decode m.Header.NumRequiredSignatures: %w", err)
		}
		m.Header.NumReadonlySignedAccounts, err = decoder.ReadUint8()
		if err != nil {
			return fmt.Errorf("unable to decode m.Header.NumReadonlySignedAccounts: %w", err)
		}
		m.Header.NumReadonlyUnsignedAccounts, err = decoder.ReadUint8()
		if err != nil {
			return fmt.Errorf("unable to decode m.Header.NumReadonlyUnsignedAccounts: %w", err)
		}
	}
	{
		numAccountKeys, err := decoder.ReadCompactU16()
		if err != nil {
			return fmt.Errorf("unable to decode numAccountKeys: %w", err)
		}
		m.AccountKeys = make([]common.Address, numAccountKeys)
		for i := 0; i < numAccountKeys; i++ {
			_, err := decoder.Read(m.AccountKeys[i][:])
			if err != nil {
				return fmt.Errorf("unable to decode m.AccountKeys[%d]: %w", i, err)
			}
		}
	}
	{
		_, err := decoder.Read(m.RecentBlockhash[:])
		if err != nil {
			return fmt.Errorf("unable to decode m.RecentBlockhash: %w", err)
		}
	}
	{
		numInstructions, err := decoder.ReadCompactU16()
		if err != nil {
			return fmt.Errorf("unable to decode numInstructions: %w", err)
		}
		m.Instructions = make([]CompiledInstruction, numInstructions)
		for instructionIndex := 0; instructionIndex < numInstructions; instructionIndex++ {
			programIDIndex, err := decoder.ReadUint8()
			if err != nil {
				return fmt.Errorf("unable to decode m.Instructions[%d].ProgramIDIndex: %w", instructionIndex, err)
			}
			m.Instructions[instructionIndex].ProgramIDIndex = uint16(programIDIndex)

			{
				numAccounts, err := decoder.ReadCompactU16()
				if err != nil {
					return fmt.Errorf("unable to decode numAccounts for ix[%d]: %w", instructionIndex, err)
				}
				m.Instructions[instructionIndex].Accounts = make([]uint16, numAccounts)
				for i := 0; i < numAccounts; i++ {
					accountIndex, err := decoder.ReadUint8()
					if err != nil {
						return fmt.Errorf("unable to decode accountIndex for ix[%d].Accounts[%d]: %w", instructionIndex, i, err)
					}
					m.Instructions[instructionIndex].Accounts[i] = uint16(accountIndex)
				}
			}
			{
				dataLen, err := decoder.ReadCompactU16()
				if err != nil {
					return fmt.Errorf("unable to decode dataLen for ix[%d]: %w", instructionIndex, err)
				}
				dataBytes, err := decoder.ReadNBytes(dataLen)
				if err != nil {
					return fmt.Errorf("unable to decode dataBytes for ix[%d]: %w", instructionIndex, err)
				}
				m.Instructions[instructionIndex].Data = dataBytes
			}
		}
	}

	return nil
}
