// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

// Package accountstore owns the host-side account records for the
// lifetime of a transaction and vends scoped read/write leases under a
// single-writer/multi-reader borrow discipline, tracking cumulative
// data-resize and lamport deltas against per-transaction caps.
package accountstore

import "errors"

// Error taxonomy surfaced by TransactionAccounts operations. Propagation
// policy: these bubble out of the Store operation verbatim, there is no
// local recovery.
var (
	// ErrMissingAccount: the index is out of range.
	ErrMissingAccount = errors.New("accountstore: missing account")
	// ErrAccountBorrowFailed: a conflicting lease is already outstanding,
	// or the reader cap would be exceeded.
	ErrAccountBorrowFailed = errors.New("accountstore: account borrow failed")
	// ErrInvalidRealloc: the requested new length exceeds the absolute
	// per-account payload cap.
	ErrInvalidRealloc = errors.New("accountstore: invalid realloc")
	// ErrMaxAccountsDataAllocationsExceeded: the running per-transaction
	// resize delta would exceed the growth cap.
	ErrMaxAccountsDataAllocationsExceeded = errors.New("accountstore: max accounts data allocations exceeded")
	// ErrArithmeticOverflow: a checked arithmetic operation saturated.
	ErrArithmeticOverflow = errors.New("accountstore: arithmetic overflow")
)
