// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

// Package instrproj flattens a compiled message's instructions into the
// two parallel arrays the guest ABI indexes by pointer arithmetic: the
// per-instruction descriptor table and the per-instruction
// account-reference table. It has no state of its own; txlayout calls
// Project once per build and folds the result into the transaction
// buffer it assembles.
package instrproj

import (
	"github.com/cielu/go-guestvm/addrspace"
	"github.com/cielu/go-guestvm/guestabi"
	"github.com/cielu/go-guestvm/message"
)

// Project flattens tx's instructions into the guest instruction
// descriptor array and the account-reference array the descriptors
// point into.
//
// The pointer assigned to descriptor[i].IxAccounts is the running
// pointer's value at the moment the descriptor is written: after prior
// instructions' references have extended it, but before instruction i's
// own references extend it further. Concretely: running starts at
// addrspace.IxAccMetaBase; for each instruction, its references are
// pushed first, then its descriptor records the pre-push value of
// running, then running is advanced by that instruction's reference
// count. This ordering is the public contract pinned by
// TestProjectPointerArithmetic.
func Project(tx message.Message) (ixDescriptors []guestabi.GuestInstructionDescriptor, ixAccountRefs []guestabi.GuestInstructionAccount) {
	n := tx.NumInstructions()
	ixDescriptors = make([]guestabi.GuestInstructionDescriptor, 0, n)
	ixAccountRefs = make([]guestabi.GuestInstructionAccount, 0, n*3)

	running := addrspace.IxAccMetaBase
	for i := 0; i < n; i++ {
		ix := tx.InstructionAt(i)

		startPointer := running
		for _, accIdx := range ix.Accounts {
			var flags uint16
			if tx.IsSignerIdx(int(accIdx)) {
				flags |= guestabi.FlagSigner
			}
			if tx.IsWritableIdx(int(accIdx)) {
				flags |= guestabi.FlagWritable
			}
			ixAccountRefs = append(ixAccountRefs, guestabi.GuestInstructionAccount{
				TxAccIdx: accIdx,
				Flags:    flags,
			})
		}

		ixDescriptors = append(ixDescriptors, guestabi.GuestInstructionDescriptor{
			ProgramIDIdx:    uint64(ix.ProgramIDIndex),
			CPINestingLevel: 0,
			ParentIxIdx:     guestabi.ParentIxIdxSentinel,
			IxAccounts: guestabi.Slice{
				Pointer: startPointer,
				Length:  uint64(len(ix.Accounts)),
			},
			IxData: guestabi.Slice{
				Pointer: addrspace.InstructionPayloadRegion(uint64(i)),
				Length:  uint64(len(ix.Data)),
			},
		})

		running = addrspace.SaturatingAdd(running, addrspace.SaturatingMul(
			uint64(len(ix.Accounts)), guestabi.SizeOfGuestInstructionAccount,
		))
	}

	return ixDescriptors, ixAccountRefs
}
