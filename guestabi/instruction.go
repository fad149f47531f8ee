// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

package guestabi

import "github.com/cielu/go-guestvm/pkg/encodbin"

// ParentIxIdxSentinel marks "no parent" (top-level instruction). Values
// equal to the number of instructions minus one are valid parent
// indices; the guest parses this sentinel literally, so it must never be
// reassigned.
const ParentIxIdxSentinel uint16 = 0xFFFF

// GuestInstructionDescriptor is one entry of the instruction-descriptor
// array at IxMetaBase. Fixed size: 8 (program_id_idx) + 2
// (cpi_nesting_level) + 2 (parent_ix_idx) + 16 (ix_accounts) + 16
// (ix_data) = 44 bytes, pinned by TestGuestInstructionDescriptorSize.
type GuestInstructionDescriptor struct {
	ProgramIDIdx    uint64
	CPINestingLevel uint16
	ParentIxIdx     uint16
	IxAccounts      Slice
	IxData          Slice
}

// SizeOfGuestInstructionDescriptor is the fixed wire size of
// GuestInstructionDescriptor.
const SizeOfGuestInstructionDescriptor = 8 + 2 + 2 + SizeOfSlice + SizeOfSlice

func (d GuestInstructionDescriptor) MarshalWithEncoder(enc *encodbin.Encoder) error {
	if err := enc.WriteUint64(d.ProgramIDIdx, encodbin.LE); err != nil {
		return err
	}
	if err := enc.WriteUint16(d.CPINestingLevel, encodbin.LE); err != nil {
		return err
	}
	if err := enc.WriteUint16(d.ParentIxIdx, encodbin.LE); err != nil {
		return err
	}
	if err := d.IxAccounts.MarshalWithEncoder(enc); err != nil {
		return err
	}
	return d.IxData.MarshalWithEncoder(enc)
}

func (d *GuestInstructionDescriptor) UnmarshalWithDecoder(dec *encodbin.Decoder) (err error) {
	d.ProgramIDIdx, err = dec.ReadUint64(encodbin.LE)
	if err != nil {
		return err
	}
	d.CPINestingLevel, err = dec.ReadUint16(encodbin.LE)
	if err != nil {
		return err
	}
	d.ParentIxIdx, err = dec.ReadUint16(encodbin.LE)
	if err != nil {
		return err
	}
	if err = d.IxAccounts.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	return d.IxData.UnmarshalWithDecoder(dec)
}

// GuestInstructionAccount is one entry of the per-instruction
// account-reference array at IxAccMetaBase. Fixed size: 4 bytes.
type GuestInstructionAccount struct {
	TxAccIdx uint16
	Flags    uint16
}

// Flag bits within GuestInstructionAccount.Flags.
const (
	FlagSigner   uint16 = 1 << 0
	FlagWritable uint16 = 1 << 1
)

// SizeOfGuestInstructionAccount is the fixed wire size of
// GuestInstructionAccount.
const SizeOfGuestInstructionAccount = 4

// IsSigner reports whether the signer bit is set.
func (a GuestInstructionAccount) IsSigner() bool {
	return a.Flags&FlagSigner != 0
}

// IsWritable reports whether the writable bit is set.
func (a GuestInstructionAccount) IsWritable() bool {
	return a.Flags&FlagWritable != 0
}

func (a GuestInstructionAccount) MarshalWithEncoder(enc *encodbin.Encoder) error {
	if err := enc.WriteUint16(a.TxAccIdx, encodbin.LE); err != nil {
		return err
	}
	return enc.WriteUint16(a.Flags, encodbin.LE)
}

func (a *GuestInstructionAccount) UnmarshalWithDecoder(dec *encodbin.Decoder) (err error) {
	a.TxAccIdx, err = dec.ReadUint16(encodbin.LE)
	if err != nil {
		return err
	}
	a.Flags, err = dec.ReadUint16(encodbin.LE)
	return err
}
