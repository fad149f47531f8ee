// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

package accountstore

import (
	"math/big"

	"github.com/cielu/go-guestvm/account"
	"github.com/cielu/go-guestvm/common"
	"github.com/cielu/go-guestvm/guestabi"
	"github.com/cielu/go-guestvm/pkg/encodbin"
)

// Per-transaction payload caps. The reference source pulls these from
// crate-level constants that weren't present in the retrieved sources;
// these match the limits the live network enforces (10 MiB absolute
// cap, 10 MB per-transaction growth cap).
const (
	MaxAccountDataLen                 = 10 * 1024 * 1024
	MaxAccountDataGrowthPerTransaction = 10_000_000
)

// sharedMeta is the "hot" array: the fields mirrored verbatim into the
// guest-visible GuestTransactionAccount descriptor.
type sharedMeta struct {
	key      common.Address
	owner    common.Address
	lamports uint64
}

// privateMeta is the "cold" array: legacy fields kept out of the guest
// ABI, plus the COW payload handle.
type privateMeta struct {
	rentEpoch  uint64
	executable bool
	payload    guestabi.Payload
}

// TransactionAccounts owns the host-side account records for one
// transaction's lifetime. It is created once from the loaded account
// set and is not shared across threads; every operation here is
// synchronous and wait-free.
type TransactionAccounts struct {
	shared         []sharedMeta
	private        []privateMeta
	borrowCounters []borrowCounter
	touched        []bool
	resizeDelta    int64
	lamportsDelta  encodbin.Int128
}

// New builds a TransactionAccounts from a loaded account set.
func New(accounts []account.Account) *TransactionAccounts {
	shared := make([]sharedMeta, len(accounts))
	private := make([]privateMeta, len(accounts))
	for i, acc := range accounts {
		shared[i] = sharedMeta{
			key:      acc.Pubkey(),
			owner:    acc.Owner(),
			lamports: acc.Lamports(),
		}
		private[i] = privateMeta{
			rentEpoch:  acc.RentEpoch(),
			executable: acc.Executable(),
			payload:    acc.DataClone(),
		}
	}
	return &TransactionAccounts{
		shared:         shared,
		private:        private,
		borrowCounters: make([]borrowCounter, len(accounts)),
		touched:        make([]bool, len(accounts)),
	}
}

// Len returns the number of accounts in the store.
func (t *TransactionAccounts) Len() int {
	return len(t.shared)
}

// Touch marks account i as observed.
func (t *TransactionAccounts) Touch(i int) error {
	if i < 0 || i >= len(t.touched) {
		return ErrMissingAccount
	}
	t.touched[i] = true
	return nil
}

// Touched reports whether account i has ever been touched.
func (t *TransactionAccounts) Touched(i int) bool {
	if i < 0 || i >= len(t.touched) {
		return false
	}
	return t.touched[i]
}

// TryBorrow acquires an immutable lease on account i. The returned
// AccountRef must have Release called on every exit path.
func (t *TransactionAccounts) TryBorrow(i int) (*AccountRef, error) {
	if i < 0 || i >= len(t.shared) {
		return nil, ErrMissingAccount
	}
	if err := t.borrowCounters[i].tryBorrow(); err != nil {
		return nil, err
	}
	return &AccountRef{store: t, index: i}, nil
}

// TryBorrowMut acquires an exclusive lease on account i. The returned
// AccountRefMut must have Release called on every exit path.
func (t *TransactionAccounts) TryBorrowMut(i int) (*AccountRefMut, error) {
	if i < 0 || i >= len(t.shared) {
		return nil, ErrMissingAccount
	}
	if err := t.borrowCounters[i].tryBorrowMut(); err != nil {
		return nil, err
	}
	return &AccountRefMut{store: t, index: i}, nil
}

// UpdateAccountsResizeDelta adds newLen-oldLen to the running resize
// delta.
func (t *TransactionAccounts) UpdateAccountsResizeDelta(oldLen, newLen int) error {
	t.resizeDelta = saturatingAddInt64(t.resizeDelta, int64(newLen)-int64(oldLen))
	return nil
}

// CanDataBeResized reports whether a resize from oldLen to newLen is
// permitted under the absolute and per-transaction growth caps.
func (t *TransactionAccounts) CanDataBeResized(oldLen, newLen int) error {
	if newLen > MaxAccountDataLen {
		return ErrInvalidRealloc
	}
	delta := int64(newLen) - int64(oldLen)
	if saturatingAddInt64(t.resizeDelta, delta) > MaxAccountDataGrowthPerTransaction {
		return ErrMaxAccountsDataAllocationsExceeded
	}
	return nil
}

// ResizeDelta returns the running resize delta.
func (t *TransactionAccounts) ResizeDelta() int64 {
	return t.resizeDelta
}

// AddLamportsDelta performs a checked 128-bit add against the running
// lamports delta.
func (t *TransactionAccounts) AddLamportsDelta(balance encodbin.Int128) error {
	sum := new(big.Int).Add(t.lamportsDelta.BigInt(), balance.BigInt())
	if sum.Cmp(minInt128) < 0 || sum.Cmp(maxInt128) > 0 {
		return ErrArithmeticOverflow
	}
	t.lamportsDelta = packInt128(sum)
	return nil
}

// GetLamportsDelta returns the running lamports delta.
func (t *TransactionAccounts) GetLamportsDelta() encodbin.Int128 {
	return t.lamportsDelta
}

// AccountKey returns the pubkey of account i.
func (t *TransactionAccounts) AccountKey(i int) (common.Address, bool) {
	if i < 0 || i >= len(t.shared) {
		return common.Address{}, false
	}
	return t.shared[i].key, true
}

// AccountKeysIter returns the pubkeys of every account, in index order.
func (t *TransactionAccounts) AccountKeysIter() []common.Address {
	keys := make([]common.Address, len(t.shared))
	for i, s := range t.shared {
		keys[i] = s.key
	}
	return keys
}

// SharedAccount is the reassembled, consumable form of one account
// after the store is torn down at transaction commit.
type SharedAccount struct {
	Pubkey     common.Address
	Owner      common.Address
	Lamports   uint64
	Data       []byte
	Executable bool
	RentEpoch  uint64
}

// IntoAccountSharedData consumes the store and returns every account's
// reassembled final state. Unlike the reference source (which left this
// unfinished), this zips the hot and cold arrays back into one record
// per account, in index order.
func (t *TransactionAccounts) IntoAccountSharedData() []SharedAccount {
	out := make([]SharedAccount, len(t.shared))
	for i, s := range t.shared {
		p := t.private[i]
		out[i] = SharedAccount{
			Pubkey:     s.key,
			Owner:      s.owner,
			Lamports:   s.lamports,
			Data:       p.payload.Bytes(),
			Executable: p.executable,
			RentEpoch:  p.rentEpoch,
		}
	}
	return out
}

func saturatingAddInt64(a, b int64) int64 {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		if b > 0 {
			return int64(^uint64(0) >> 1)
		}
		return -int64(^uint64(0)>>1) - 1
	}
	return sum
}
