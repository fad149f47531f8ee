// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

package accountstore

import "github.com/cielu/go-guestvm/common"

// AccountRef is a scoped read-only lease on one account in the store.
// Go has no destructor, so the caller is responsible for calling
// Release on every exit path (typically via defer right after the
// lease is acquired).
type AccountRef struct {
	store *TransactionAccounts
	index int
}

func (r *AccountRef) Pubkey() common.Address {
	return r.store.shared[r.index].key
}

func (r *AccountRef) Owner() common.Address {
	return r.store.shared[r.index].owner
}

func (r *AccountRef) Lamports() uint64 {
	return r.store.shared[r.index].lamports
}

func (r *AccountRef) Executable() bool {
	return r.store.private[r.index].executable
}

func (r *AccountRef) RentEpoch() uint64 {
	return r.store.private[r.index].rentEpoch
}

func (r *AccountRef) Data() []byte {
	return r.store.private[r.index].payload.Bytes()
}

// Release returns the lease to the store, freeing one reader slot.
func (r *AccountRef) Release() {
	r.store.borrowCounters[r.index].releaseBorrow()
}

// AccountRefMut is a scoped exclusive lease on one account in the
// store. As with AccountRef, Release must be called on every exit
// path.
type AccountRefMut struct {
	store *TransactionAccounts
	index int
}

func (r *AccountRefMut) Pubkey() common.Address {
	return r.store.shared[r.index].key
}

func (r *AccountRefMut) Owner() common.Address {
	return r.store.shared[r.index].owner
}

func (r *AccountRefMut) SetOwner(owner common.Address) {
	r.store.shared[r.index].owner = owner
}

// CopyIntoOwnerFromSlice overwrites the owner field in place from a raw
// byte slice, the way the runtime's native "set owner" syscall does it
// (it hands over a guest byte range, not an already-typed pubkey). src
// must be exactly common.AddressLength bytes.
func (r *AccountRefMut) CopyIntoOwnerFromSlice(src []byte) {
	copy(r.store.shared[r.index].owner[:], src)
}

func (r *AccountRefMut) Lamports() uint64 {
	return r.store.shared[r.index].lamports
}

func (r *AccountRefMut) SetLamports(lamports uint64) {
	r.store.shared[r.index].lamports = lamports
}

func (r *AccountRefMut) Executable() bool {
	return r.store.private[r.index].executable
}

func (r *AccountRefMut) SetExecutable(executable bool) {
	r.store.private[r.index].executable = executable
}

func (r *AccountRefMut) RentEpoch() uint64 {
	return r.store.private[r.index].rentEpoch
}

func (r *AccountRefMut) SetRentEpoch(rentEpoch uint64) {
	r.store.private[r.index].rentEpoch = rentEpoch
}

// Data returns the account payload without promoting it to a private
// copy; mutations through the returned slice are visible to every
// other handle sharing the same COW buffer.
func (r *AccountRefMut) Data() []byte {
	return r.store.private[r.index].payload.Bytes()
}

// DataMut promotes the payload to a private copy-on-write buffer (if
// it isn't already uniquely held) and returns it for in-place mutation.
func (r *AccountRefMut) DataMut() []byte {
	return r.store.private[r.index].payload.MakeMut()
}

// SetData replaces the account's payload outright, e.g. after a
// realloc. Callers must have already validated the new length against
// TransactionAccounts.CanDataBeResized.
func (r *AccountRefMut) SetData(data []byte) {
	r.store.private[r.index].payload.Set(data)
}

// Release returns the lease to the store, clearing the writer slot.
func (r *AccountRefMut) Release() {
	r.store.borrowCounters[r.index].releaseBorrowMut()
}
