// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

// Package txlayout implements the Transaction Context Builder and the
// Region Assembler: it turns a loaded account set plus a compiled
// message into one contiguous guest transaction buffer (delegating the
// instruction flattening to instrproj), and, given a selected
// instruction index, produces the ordered region list the sandbox
// installs before dispatching that instruction.
package txlayout

import (
	"bytes"
	"encoding/binary"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/cielu/go-guestvm/account"
	"github.com/cielu/go-guestvm/addrspace"
	"github.com/cielu/go-guestvm/guestabi"
	"github.com/cielu/go-guestvm/instrproj"
	"github.com/cielu/go-guestvm/message"
	"github.com/cielu/go-guestvm/pkg/encodbin"
)

// instructionIdxOffset is the byte offset of GuestTransactionContext's
// InstructionIdx field within the context record: ReturnDataScratchpad
// (32+16) + CPIScratchpad (16) = 64.
const instructionIdxOffset = 32 + guestabi.SizeOfSlice + guestabi.SizeOfSlice

// RuntimeGuestTransaction holds the built guest layout: the raw context
// + account-descriptor buffer, the two instruction arrays produced by
// instrproj, the retained per-account payload handles, and the
// per-instruction payload regions built once at build time. Everything
// here is immutable after Build except the context buffer's
// instruction_idx field, mutated only through SetInstructionIndex.
type RuntimeGuestTransaction struct {
	txRawMetadata []byte
	ixMetadata    []guestabi.GuestInstructionDescriptor
	ixAccounts    []guestabi.GuestInstructionAccount
	accountData   []guestabi.Payload
	payloads      []Region
}

// Build constructs a RuntimeGuestTransaction from a loaded account set
// and a compiled message. It returns (nil, false) when enableABIv2 is
// false: the feature gate this builder sits behind is owned by the
// caller, not by this module, so a disabled gate simply means "not
// built, fall back to the legacy path elsewhere."
func Build(accounts []account.Account, tx message.Message, enableABIv2 bool) (*RuntimeGuestTransaction, bool) {
	if !enableABIv2 {
		return nil, false
	}

	ctx := guestabi.GuestTransactionContext{
		ReturnDataScratchpad: guestabi.ReturnDataScratchpad{
			Slice: guestabi.Slice{Pointer: addrspace.ReturnDataBase, Length: 0},
		},
		CPIScratchpad: guestabi.Slice{
			Pointer: addrspace.InstructionPayloadRegion(uint64(tx.NumInstructions())),
			Length:  0,
		},
		InstructionIdx: 0,
		InstructionNum: uint64(tx.NumInstructions()),
		AccountsNo:     uint64(len(accounts)),
	}

	buf := new(bytes.Buffer)
	enc := encodbin.NewBinEncoder(buf)
	if err := ctx.MarshalWithEncoder(enc); err != nil {
		panic("txlayout: encoding a fixed-size context record cannot fail: " + err.Error())
	}

	accountData := make([]guestabi.Payload, len(accounts))
	for k, acc := range accounts {
		descriptor := guestabi.GuestTransactionAccount{
			Pubkey:   acc.Pubkey(),
			Owner:    acc.Owner(),
			Lamports: acc.Lamports(),
			Data: guestabi.Slice{
				Pointer: addrspace.AccountRegion(uint64(k)),
				Length:  uint64(len(acc.Data())),
			},
		}
		if err := descriptor.MarshalWithEncoder(enc); err != nil {
			panic("txlayout: encoding a fixed-size account descriptor cannot fail: " + err.Error())
		}
		accountData[k] = acc.DataClone()
	}

	ixMetadata, ixAccounts := instrproj.Project(tx)

	payloads := make([]Region, tx.NumInstructions())
	for i := 0; i < tx.NumInstructions(); i++ {
		payloads[i] = Region{
			Data:      tx.InstructionAt(i).Data,
			GuestBase: addrspace.InstructionPayloadRegion(uint64(i)),
			Writable:  false,
		}
	}

	return &RuntimeGuestTransaction{
		txRawMetadata: buf.Bytes(),
		ixMetadata:    ixMetadata,
		ixAccounts:    ixAccounts,
		accountData:   accountData,
		payloads:      payloads,
	}, true
}

// AsSlice returns the raw context + account-descriptor buffer.
func (r *RuntimeGuestTransaction) AsSlice() []byte {
	return r.txRawMetadata
}

// Context decodes the context record out of the raw buffer. Callers
// needing only InstructionIdx should prefer the cheaper accessor below;
// this is provided for tests that want to assert on the whole record.
func (r *RuntimeGuestTransaction) Context() (guestabi.GuestTransactionContext, error) {
	var ctx guestabi.GuestTransactionContext
	err := ctx.UnmarshalWithDecoder(encodbin.NewBinDecoder(r.txRawMetadata))
	return ctx, err
}

// InstructionIdx returns the context's current instruction index without
// decoding the whole record.
func (r *RuntimeGuestTransaction) InstructionIdx() uint64 {
	return binary.LittleEndian.Uint64(r.txRawMetadata[instructionIdxOffset : instructionIdxOffset+8])
}

// SetInstructionIndex mutates the context's instruction_idx field in
// place. It is the only mutation this type permits after Build.
func (r *RuntimeGuestTransaction) SetInstructionIndex(index uint64) {
	binary.LittleEndian.PutUint64(r.txRawMetadata[instructionIdxOffset:instructionIdxOffset+8], index)
}

// RetrieveInstruction returns the descriptor for the currently selected
// instruction.
func (r *RuntimeGuestTransaction) RetrieveInstruction() guestabi.GuestInstructionDescriptor {
	return r.ixMetadata[r.InstructionIdx()]
}

func encodeDescriptorArray[T encodbin.BinaryMarshaler](items []T) []byte {
	buf := new(bytes.Buffer)
	enc := encodbin.NewBinEncoder(buf)
	for _, item := range items {
		if err := item.MarshalWithEncoder(enc); err != nil {
			panic("txlayout: encoding a fixed-size guest ABI record cannot fail: " + err.Error())
		}
	}
	return buf.Bytes()
}

// RegionsForCurrentInstruction implements the Region Assembler: given
// instruction_idx has been set to a valid index, it returns the ordered
// region list the sandbox installs before dispatching that instruction.
// Precondition: SetInstructionIndex has been called with a valid index.
// Returns ErrAccountIndexOutOfRange if the instruction's account
// reference table names a tx_acc_idx that isn't a valid index into the
// account set this transaction was built with — the assembler does not
// trust that invariant blindly before indexing accountData.
func (r *RuntimeGuestTransaction) RegionsForCurrentInstruction() ([]Region, error) {
	instr := r.RetrieveInstruction()

	regions := make([]Region, 0, 3+len(r.ixAccounts)+len(r.payloads))

	regions = append(regions, Region{
		Data:      r.txRawMetadata,
		GuestBase: addrspace.TxCtxBase,
		Writable:  false,
	})
	regions = append(regions, Region{
		Data:      encodeDescriptorArray(r.ixMetadata),
		GuestBase: addrspace.IxMetaBase,
		Writable:  false,
	})
	regions = append(regions, Region{
		Data:      encodeDescriptorArray(r.ixAccounts),
		GuestBase: addrspace.IxAccMetaBase,
		Writable:  false,
	})

	startIndex := (instr.IxAccounts.Pointer - addrspace.IxAccMetaBase) / guestabi.SizeOfGuestInstructionAccount
	length := instr.IxAccounts.Length

	seen := mapset.NewThreadUnsafeSet[uint16]()
	writable := map[uint16]bool{}
	order := make([]uint16, 0, length)
	for i := startIndex; i < startIndex+length; i++ {
		ref := r.ixAccounts[i]
		if uint64(ref.TxAccIdx) >= uint64(len(r.accountData)) {
			return nil, ErrAccountIndexOutOfRange
		}
		if !seen.Contains(ref.TxAccIdx) {
			seen.Add(ref.TxAccIdx)
			order = append(order, ref.TxAccIdx)
		}
		writable[ref.TxAccIdx] = writable[ref.TxAccIdx] || ref.IsWritable()
	}
	for _, k := range order {
		regions = append(regions, Region{
			Data:      r.accountData[k].Bytes(),
			GuestBase: addrspace.AccountRegion(uint64(k)),
			Writable:  writable[k],
		})
	}

	regions = append(regions, r.payloads...)

	return regions, nil
}
