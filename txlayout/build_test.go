package txlayout

import (
	"testing"

	"github.com/cielu/go-guestvm/account"
	"github.com/cielu/go-guestvm/addrspace"
	"github.com/cielu/go-guestvm/common"
	"github.com/cielu/go-guestvm/guestabi"
	"github.com/cielu/go-guestvm/message"
	"github.com/cielu/go-guestvm/pkg/encodbin"
)

type fixtureMessage struct {
	ix []message.CompiledInstruction
}

func (m *fixtureMessage) NumAccounts() int                     { return 0 }
func (m *fixtureMessage) AccountAt(int) common.Address          { return common.Address{} }
func (m *fixtureMessage) NumInstructions() int                 { return len(m.ix) }
func (m *fixtureMessage) InstructionAt(i int) message.CompiledInstruction { return m.ix[i] }
func (m *fixtureMessage) IsWritableIdx(i int) bool              { return i%2 == 1 }
func (m *fixtureMessage) IsSignerIdx(i int) bool                { return i%2 == 0 }

func buildFixtureMessage() *fixtureMessage {
	return &fixtureMessage{
		ix: []message.CompiledInstruction{
			{ProgramIDIndex: 2, Accounts: []uint16{1, 2, 3, 4}, Data: []byte{0, 9, 8, 5}},
			{ProgramIDIndex: 6, Accounts: []uint16{5, 0}, Data: []byte{0}},
			{ProgramIDIndex: 8, Accounts: []uint16{3, 3, 3}, Data: []byte{1, 2, 3}},
		},
	}
}

func buildFixtureAccounts() []account.Account {
	owner := common.Address{}
	owner[0] = 0xBB

	raw := []account.LoadedAccount{
		account.NewLoadedAccount(common.Address{0}, owner, 0, nil, true, 0),
		account.NewLoadedAccount(common.Address{1}, owner, 1, []byte{1, 2, 3, 4, 5}, false, 100),
		account.NewLoadedAccount(common.Address{2}, owner, 2, []byte{11, 12, 13, 14, 15, 16, 17, 18, 19}, true, 200),
		account.NewLoadedAccount(common.Address{3}, owner, 3, nil, false, 300),
		account.NewLoadedAccount(common.Address{4}, owner, 4, []byte{1, 2, 3, 4, 5}, false, 100),
		account.NewLoadedAccount(common.Address{5}, owner, 5, []byte{11, 12, 13, 14, 15, 16, 17, 18, 19}, true, 200),
	}
	out := make([]account.Account, len(raw))
	for i := range raw {
		out[i] = raw[i]
	}
	return out
}

func TestBuildContextAndAccountDescriptors(t *testing.T) {
	accounts := buildFixtureAccounts()
	tx := buildFixtureMessage()

	built, ok := Build(accounts, tx, true)
	if !ok {
		t.Fatal("Build returned not-built with enableABIv2=true")
	}

	ctx, err := built.Context()
	if err != nil {
		t.Fatalf("Context: %v", err)
	}

	if ctx.ReturnDataScratchpad.Pubkey != (common.Address{}) {
		t.Errorf("return_data_scratchpad.pubkey should be zero, got %x", ctx.ReturnDataScratchpad.Pubkey)
	}
	if ctx.ReturnDataScratchpad.Slice.Pointer != addrspace.ReturnDataBase {
		t.Errorf("return_data_scratchpad.slice.pointer: want %d, got %d", addrspace.ReturnDataBase, ctx.ReturnDataScratchpad.Slice.Pointer)
	}
	if ctx.ReturnDataScratchpad.Slice.Length != 0 {
		t.Errorf("return_data_scratchpad.slice.length: want 0, got %d", ctx.ReturnDataScratchpad.Slice.Length)
	}

	wantCPIPointer := addrspace.InstructionPayloadRegion(uint64(tx.NumInstructions()))
	if ctx.CPIScratchpad.Pointer != wantCPIPointer {
		t.Errorf("cpi_scratchpad.pointer: want %d, got %d", wantCPIPointer, ctx.CPIScratchpad.Pointer)
	}
	if ctx.CPIScratchpad.Length != 0 {
		t.Errorf("cpi_scratchpad.length: want 0, got %d", ctx.CPIScratchpad.Length)
	}

	if ctx.InstructionIdx != 0 {
		t.Errorf("instruction_idx: want 0, got %d", ctx.InstructionIdx)
	}
	if ctx.InstructionNum != uint64(tx.NumInstructions()) {
		t.Errorf("instruction_num: want %d, got %d", tx.NumInstructions(), ctx.InstructionNum)
	}
	if ctx.AccountsNo != uint64(len(accounts)) {
		t.Errorf("accounts_no: want %d, got %d", len(accounts), ctx.AccountsNo)
	}

	built.SetInstructionIndex(80)
	if built.InstructionIdx() != 80 {
		t.Errorf("after SetInstructionIndex(80), InstructionIdx(): want 80, got %d", built.InstructionIdx())
	}

	// Decode the account-descriptor table directly out of the raw buffer
	// and compare against the loaded accounts.
	offset := guestabi.SizeOfGuestTransactionContext
	for k, acc := range accounts {
		var descriptor guestabi.GuestTransactionAccount
		dec := encodbin.NewBinDecoder(built.txRawMetadata[offset:])
		if err := descriptor.UnmarshalWithDecoder(dec); err != nil {
			t.Fatalf("decode account descriptor %d: %v", k, err)
		}
		offset += guestabi.SizeOfGuestTransactionAccount

		if descriptor.Pubkey != acc.Pubkey() {
			t.Errorf("account[%d].pubkey mismatch", k)
		}
		if descriptor.Owner != acc.Owner() {
			t.Errorf("account[%d].owner mismatch", k)
		}
		if descriptor.Lamports != acc.Lamports() {
			t.Errorf("account[%d].lamports: want %d, got %d", k, acc.Lamports(), descriptor.Lamports)
		}
		wantAddr := addrspace.AccountRegion(uint64(k))
		if descriptor.Data.Pointer != wantAddr {
			t.Errorf("account[%d].data.pointer: want %d, got %d", k, wantAddr, descriptor.Data.Pointer)
		}
		if descriptor.Data.Length != uint64(len(acc.Data())) {
			t.Errorf("account[%d].data.length: want %d, got %d", k, len(acc.Data()), descriptor.Data.Length)
		}
	}
}

func TestRegionsForCurrentInstruction(t *testing.T) {
	accounts := buildFixtureAccounts()
	tx := buildFixtureMessage()

	built, ok := Build(accounts, tx, true)
	if !ok {
		t.Fatal("Build returned not-built")
	}

	built.SetInstructionIndex(1) // instruction 1: accounts [5, 0]
	regions, err := built.RegionsForCurrentInstruction()
	if err != nil {
		t.Fatalf("RegionsForCurrentInstruction: %v", err)
	}

	if len(regions) < 3 {
		t.Fatalf("expected at least 3 fixed regions, got %d", len(regions))
	}
	if regions[0].GuestBase != addrspace.TxCtxBase {
		t.Errorf("regions[0].GuestBase: want %d, got %d", addrspace.TxCtxBase, regions[0].GuestBase)
	}
	if regions[1].GuestBase != addrspace.IxMetaBase {
		t.Errorf("regions[1].GuestBase: want %d, got %d", addrspace.IxMetaBase, regions[1].GuestBase)
	}
	if regions[2].GuestBase != addrspace.IxAccMetaBase {
		t.Errorf("regions[2].GuestBase: want %d, got %d", addrspace.IxAccMetaBase, regions[2].GuestBase)
	}

	// Account regions for {5, 0}: tx.ix[1].Accounts = [5, 0]. is_writable(5)=true, is_writable(0)=false.
	accRegions := regions[3 : 3+2]
	wantBases := map[uint64]bool{
		addrspace.AccountRegion(5): true,
		addrspace.AccountRegion(0): false,
	}
	for _, r := range accRegions {
		want, ok := wantBases[r.GuestBase]
		if !ok {
			t.Errorf("unexpected account region base %d", r.GuestBase)
			continue
		}
		if r.Writable != want {
			t.Errorf("region at %d: want writable=%v, got %v", r.GuestBase, want, r.Writable)
		}
	}

	// Payload regions follow, one per instruction, in instruction order.
	payloadRegions := regions[3+2:]
	if len(payloadRegions) != 3 {
		t.Fatalf("expected 3 payload regions, got %d", len(payloadRegions))
	}
	for i, r := range payloadRegions {
		want := addrspace.InstructionPayloadRegion(uint64(i))
		if r.GuestBase != want {
			t.Errorf("payload region[%d].GuestBase: want %d, got %d", i, want, r.GuestBase)
		}
		if r.Writable {
			t.Errorf("payload region[%d] should be read-only", i)
		}
	}
}

func TestRegionsForCurrentInstructionOutOfRangeAccount(t *testing.T) {
	accounts := buildFixtureAccounts()
	tx := &fixtureMessage{
		ix: []message.CompiledInstruction{
			{ProgramIDIndex: 0, Accounts: []uint16{0, uint16(len(accounts))}, Data: []byte{0}},
		},
	}

	built, ok := Build(accounts, tx, true)
	if !ok {
		t.Fatal("Build returned not-built")
	}

	built.SetInstructionIndex(0)
	if _, err := built.RegionsForCurrentInstruction(); err != ErrAccountIndexOutOfRange {
		t.Errorf("RegionsForCurrentInstruction with out-of-range tx_acc_idx: want ErrAccountIndexOutOfRange, got %v", err)
	}
}
