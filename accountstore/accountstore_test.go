// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

package accountstore

import (
	"errors"
	"testing"

	"github.com/cielu/go-guestvm/account"
	"github.com/cielu/go-guestvm/common"
	"github.com/cielu/go-guestvm/pkg/encodbin"
)

func buildTestStore() *TransactionAccounts {
	owner := common.Address{0xAA}
	accounts := []account.Account{
		account.NewLoadedAccount(common.Address{1}, owner, 10, []byte{1, 2, 3}, false, 0),
		account.NewLoadedAccount(common.Address{2}, owner, 20, []byte{4, 5, 6}, false, 0),
	}
	return New(accounts)
}

func TestMissingAccount(t *testing.T) {
	store := buildTestStore()

	if err := store.Touch(5); !errors.Is(err, ErrMissingAccount) {
		t.Errorf("Touch(5): want ErrMissingAccount, got %v", err)
	}
	if _, err := store.TryBorrow(5); !errors.Is(err, ErrMissingAccount) {
		t.Errorf("TryBorrow(5): want ErrMissingAccount, got %v", err)
	}
	if _, err := store.TryBorrowMut(5); !errors.Is(err, ErrMissingAccount) {
		t.Errorf("TryBorrowMut(5): want ErrMissingAccount, got %v", err)
	}
	if _, ok := store.AccountKey(5); ok {
		t.Errorf("AccountKey(5): want ok=false")
	}
}

func TestInvalidBorrow(t *testing.T) {
	store := buildTestStore()

	ref, err := store.TryBorrow(0)
	if err != nil {
		t.Fatalf("TryBorrow(0): %v", err)
	}
	defer ref.Release()

	// A second shared borrow is fine.
	ref2, err := store.TryBorrow(0)
	if err != nil {
		t.Fatalf("second TryBorrow(0): %v", err)
	}
	defer ref2.Release()

	// But an exclusive borrow must fail while readers are outstanding.
	if _, err := store.TryBorrowMut(0); !errors.Is(err, ErrAccountBorrowFailed) {
		t.Errorf("TryBorrowMut(0) while read-borrowed: want ErrAccountBorrowFailed, got %v", err)
	}

	ref.Release()
	ref2.Release()

	mutRef, err := store.TryBorrowMut(0)
	if err != nil {
		t.Fatalf("TryBorrowMut(0) after release: %v", err)
	}
	defer mutRef.Release()

	// A shared borrow must fail while the writer is outstanding.
	if _, err := store.TryBorrow(0); !errors.Is(err, ErrAccountBorrowFailed) {
		t.Errorf("TryBorrow(0) while write-borrowed: want ErrAccountBorrowFailed, got %v", err)
	}
	if _, err := store.TryBorrowMut(0); !errors.Is(err, ErrAccountBorrowFailed) {
		t.Errorf("TryBorrowMut(0) while write-borrowed: want ErrAccountBorrowFailed, got %v", err)
	}
}

func TestTooManyBorrows(t *testing.T) {
	store := buildTestStore()

	var refs []*AccountRef
	for i := 0; i < 127; i++ {
		ref, err := store.TryBorrow(0)
		if err != nil {
			t.Fatalf("TryBorrow(0) #%d: %v", i, err)
		}
		refs = append(refs, ref)
	}

	if _, err := store.TryBorrow(0); !errors.Is(err, ErrAccountBorrowFailed) {
		t.Errorf("128th TryBorrow(0): want ErrAccountBorrowFailed, got %v", err)
	}

	for _, ref := range refs {
		ref.Release()
	}

	// Fully released, a fresh borrow succeeds again.
	ref, err := store.TryBorrow(0)
	if err != nil {
		t.Fatalf("TryBorrow(0) after releasing all: %v", err)
	}
	ref.Release()
}

func TestLeaseMutation(t *testing.T) {
	store := buildTestStore()

	ref, err := store.TryBorrowMut(1)
	if err != nil {
		t.Fatalf("TryBorrowMut(1): %v", err)
	}
	ref.SetLamports(99)
	newOwner := common.Address{0xCC}
	ref.SetOwner(newOwner)
	data := ref.DataMut()
	data[0] = 0xFF

	rawOwner := common.Address{0xDD}
	ref.CopyIntoOwnerFromSlice(rawOwner[:])

	ref.Release()

	shared := store.IntoAccountSharedData()
	if shared[1].Lamports != 99 {
		t.Errorf("lamports: want 99, got %d", shared[1].Lamports)
	}
	if shared[1].Owner != rawOwner {
		t.Errorf("owner: want %x, got %x", rawOwner, shared[1].Owner)
	}
	if shared[1].Data[0] != 0xFF {
		t.Errorf("data[0]: want 0xFF, got %x", shared[1].Data[0])
	}
}

func TestResizeDeltaCaps(t *testing.T) {
	store := buildTestStore()

	if err := store.CanDataBeResized(3, MaxAccountDataLen+1); !errors.Is(err, ErrInvalidRealloc) {
		t.Errorf("resize past absolute cap: want ErrInvalidRealloc, got %v", err)
	}

	if err := store.CanDataBeResized(0, MaxAccountDataGrowthPerTransaction+1); !errors.Is(err, ErrMaxAccountsDataAllocationsExceeded) {
		t.Errorf("resize past per-tx growth cap: want ErrMaxAccountsDataAllocationsExceeded, got %v", err)
	}

	if err := store.CanDataBeResized(3, 3000); err != nil {
		t.Errorf("ordinary resize: want nil, got %v", err)
	}
	if err := store.UpdateAccountsResizeDelta(3, 3000); err != nil {
		t.Fatalf("UpdateAccountsResizeDelta: %v", err)
	}
	if store.ResizeDelta() != 2997 {
		t.Errorf("ResizeDelta: want 2997, got %d", store.ResizeDelta())
	}
}

func TestLamportsDeltaOverflow(t *testing.T) {
	store := buildTestStore()

	big := encodbin.Int128{Lo: ^uint64(0), Hi: ^uint64(0) >> 1} // max int128
	if err := store.AddLamportsDelta(big); err != nil {
		t.Fatalf("AddLamportsDelta(max): %v", err)
	}
	if err := store.AddLamportsDelta(encodbin.Int128{Lo: 1}); !errors.Is(err, ErrArithmeticOverflow) {
		t.Errorf("AddLamportsDelta overflow: want ErrArithmeticOverflow, got %v", err)
	}

	got := store.GetLamportsDelta()
	if got.Lo != big.Lo || got.Hi != big.Hi {
		t.Errorf("GetLamportsDelta after failed add: want unchanged %+v, got %+v", big, got)
	}
}

func TestAccountKeysIter(t *testing.T) {
	store := buildTestStore()
	keys := store.AccountKeysIter()
	if len(keys) != 2 {
		t.Fatalf("want 2 keys, got %d", len(keys))
	}
	if keys[0] != (common.Address{1}) || keys[1] != (common.Address{2}) {
		t.Errorf("unexpected key order: %v", keys)
	}
}
