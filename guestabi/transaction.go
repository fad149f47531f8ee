// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

package guestabi

import (
	"github.com/cielu/go-guestvm/common"
	"github.com/cielu/go-guestvm/pkg/encodbin"
)

// GuestTransactionAccount is one entry of the account-descriptor table
// following the GuestTransactionContext at TxCtxBase. Fixed size: 32
// (pubkey) + 32 (owner) + 8 (lamports) + 16 (data) = 88 bytes, pinned by
// TestGuestTransactionAccountSize.
type GuestTransactionAccount struct {
	Pubkey   common.Address
	Owner    common.Address
	Lamports uint64
	Data     Slice
}

// SizeOfGuestTransactionAccount is the fixed wire size of
// GuestTransactionAccount.
const SizeOfGuestTransactionAccount = 32 + 32 + 8 + SizeOfSlice

func (a GuestTransactionAccount) MarshalWithEncoder(enc *encodbin.Encoder) error {
	if err := enc.WriteBytes(a.Pubkey[:]); err != nil {
		return err
	}
	if err := enc.WriteBytes(a.Owner[:]); err != nil {
		return err
	}
	if err := enc.WriteUint64(a.Lamports, encodbin.LE); err != nil {
		return err
	}
	return a.Data.MarshalWithEncoder(enc)
}

func (a *GuestTransactionAccount) UnmarshalWithDecoder(dec *encodbin.Decoder) error {
	if _, err := dec.Read(a.Pubkey[:]); err != nil {
		return err
	}
	if _, err := dec.Read(a.Owner[:]); err != nil {
		return err
	}
	lamports, err := dec.ReadUint64(encodbin.LE)
	if err != nil {
		return err
	}
	a.Lamports = lamports
	return a.Data.UnmarshalWithDecoder(dec)
}

// ReturnDataScratchpad records which program last wrote the CPI return
// data and where that data lives.
type ReturnDataScratchpad struct {
	Pubkey common.Address
	Slice  Slice
}

func (r ReturnDataScratchpad) MarshalWithEncoder(enc *encodbin.Encoder) error {
	if err := enc.WriteBytes(r.Pubkey[:]); err != nil {
		return err
	}
	return r.Slice.MarshalWithEncoder(enc)
}

func (r *ReturnDataScratchpad) UnmarshalWithDecoder(dec *encodbin.Decoder) error {
	if _, err := dec.Read(r.Pubkey[:]); err != nil {
		return err
	}
	return r.Slice.UnmarshalWithDecoder(dec)
}

// GuestTransactionContext is the single record at offset 0 of TxCtxBase,
// immediately followed by AccountsNo consecutive GuestTransactionAccount
// records. Fixed size: 32+16 (return_data_scratchpad) + 16
// (cpi_scratchpad) + 8 + 8 + 8 = 88 bytes, pinned by
// TestGuestTransactionContextSize.
type GuestTransactionContext struct {
	ReturnDataScratchpad ReturnDataScratchpad
	CPIScratchpad        Slice
	InstructionIdx       uint64
	InstructionNum       uint64
	AccountsNo           uint64
}

// SizeOfGuestTransactionContext is the fixed wire size of
// GuestTransactionContext.
const SizeOfGuestTransactionContext = (32 + SizeOfSlice) + SizeOfSlice + 8 + 8 + 8

func (c GuestTransactionContext) MarshalWithEncoder(enc *encodbin.Encoder) error {
	if err := c.ReturnDataScratchpad.MarshalWithEncoder(enc); err != nil {
		return err
	}
	if err := c.CPIScratchpad.MarshalWithEncoder(enc); err != nil {
		return err
	}
	if err := enc.WriteUint64(c.InstructionIdx, encodbin.LE); err != nil {
		return err
	}
	if err := enc.WriteUint64(c.InstructionNum, encodbin.LE); err != nil {
		return err
	}
	return enc.WriteUint64(c.AccountsNo, encodbin.LE)
}

func (c *GuestTransactionContext) UnmarshalWithDecoder(dec *encodbin.Decoder) (err error) {
	if err = c.ReturnDataScratchpad.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	if err = c.CPIScratchpad.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	c.InstructionIdx, err = dec.ReadUint64(encodbin.LE)
	if err != nil {
		return err
	}
	c.InstructionNum, err = dec.ReadUint64(encodbin.LE)
	if err != nil {
		return err
	}
	c.AccountsNo, err = dec.ReadUint64(encodbin.LE)
	return err
}
