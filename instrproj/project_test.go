package instrproj

import (
	"testing"

	"github.com/cielu/go-guestvm/addrspace"
	"github.com/cielu/go-guestvm/common"
	"github.com/cielu/go-guestvm/guestabi"
	"github.com/cielu/go-guestvm/message"
)

// dummyMessage is a fixed three-instruction fixture with is_writable(i) =
// (i%2==1) and is_signer(i) = (i%2==0), matching the canonical fixture
// used to pin the running-pointer contract.
type dummyMessage struct {
	ix []message.CompiledInstruction
}

func (d *dummyMessage) NumAccounts() int                        { return 0 }
func (d *dummyMessage) AccountAt(int) common.Address             { return common.Address{} }
func (d *dummyMessage) NumInstructions() int { return len(d.ix) }
func (d *dummyMessage) InstructionAt(i int) message.CompiledInstruction { return d.ix[i] }
func (d *dummyMessage) IsWritableIdx(i int) bool { return i%2 == 1 }
func (d *dummyMessage) IsSignerIdx(i int) bool   { return i%2 == 0 }

func buildFixture() *dummyMessage {
	return &dummyMessage{
		ix: []message.CompiledInstruction{
			{ProgramIDIndex: 2, Accounts: []uint16{1, 2, 3, 4}, Data: []byte{0, 9, 8, 5}},
			{ProgramIDIndex: 6, Accounts: []uint16{9, 0}, Data: []byte{0}},
			{ProgramIDIndex: 8, Accounts: []uint16{8, 8, 8}, Data: []byte{1, 2, 3}},
		},
	}
}

func TestProjectPointerArithmetic(t *testing.T) {
	tx := buildFixture()
	descriptors, refs := Project(tx)

	if len(descriptors) != 3 {
		t.Fatalf("expected 3 descriptors, got %d", len(descriptors))
	}

	wantStarts := []uint64{
		addrspace.IxAccMetaBase,
		addrspace.IxAccMetaBase + 4*guestabi.SizeOfGuestInstructionAccount,
		addrspace.IxAccMetaBase + 6*guestabi.SizeOfGuestInstructionAccount,
	}
	for i, d := range descriptors {
		if d.IxAccounts.Pointer != wantStarts[i] {
			t.Errorf("descriptor[%d].IxAccounts.Pointer: want %d, got %d", i, wantStarts[i], d.IxAccounts.Pointer)
		}
	}

	for idx, cIx := range tx.ix {
		d := descriptors[idx]
		if d.ProgramIDIdx != uint64(cIx.ProgramIDIndex) {
			t.Errorf("descriptor[%d].ProgramIDIdx: want %d, got %d", idx, cIx.ProgramIDIndex, d.ProgramIDIdx)
		}
		if d.CPINestingLevel != 0 {
			t.Errorf("descriptor[%d].CPINestingLevel: want 0, got %d", idx, d.CPINestingLevel)
		}
		if d.ParentIxIdx != guestabi.ParentIxIdxSentinel {
			t.Errorf("descriptor[%d].ParentIxIdx: want sentinel, got %d", idx, d.ParentIxIdx)
		}
		if d.IxData.Pointer != addrspace.InstructionPayloadRegion(uint64(idx)) {
			t.Errorf("descriptor[%d].IxData.Pointer mismatch", idx)
		}
		if d.IxData.Length != uint64(len(cIx.Data)) {
			t.Errorf("descriptor[%d].IxData.Length: want %d, got %d", idx, len(cIx.Data), d.IxData.Length)
		}
		if d.IxAccounts.Length != uint64(len(cIx.Accounts)) {
			t.Errorf("descriptor[%d].IxAccounts.Length: want %d, got %d", idx, len(cIx.Accounts), d.IxAccounts.Length)
		}

		startIndex := (d.IxAccounts.Pointer - addrspace.IxAccMetaBase) / guestabi.SizeOfGuestInstructionAccount
		for i := startIndex; i < startIndex+d.IxAccounts.Length; i++ {
			ref := refs[i]
			wantAcc := cIx.Accounts[i-startIndex]
			if ref.TxAccIdx != wantAcc {
				t.Errorf("ref[%d].TxAccIdx: want %d, got %d", i, wantAcc, ref.TxAccIdx)
			}
			if ref.IsWritable() != tx.IsWritableIdx(int(wantAcc)) {
				t.Errorf("ref[%d].IsWritable(): want %v, got %v", i, tx.IsWritableIdx(int(wantAcc)), ref.IsWritable())
			}
			if ref.IsSigner() != tx.IsSignerIdx(int(wantAcc)) {
				t.Errorf("ref[%d].IsSigner(): want %v, got %v", i, tx.IsSignerIdx(int(wantAcc)), ref.IsSigner())
			}
		}
	}
}

func TestProjectFirstRefFlags(t *testing.T) {
	tx := buildFixture()
	_, refs := Project(tx)

	// First ref is account 1: signer=is_signer(1)=false, writable=is_writable(1)=true -> flags = 0b10.
	if refs[0].TxAccIdx != 1 {
		t.Fatalf("refs[0].TxAccIdx: want 1, got %d", refs[0].TxAccIdx)
	}
	if refs[0].Flags != guestabi.FlagWritable {
		t.Errorf("refs[0].Flags: want 0b10, got %#b", refs[0].Flags)
	}
}
