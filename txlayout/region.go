// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

package txlayout

import "errors"

// Region is one entry of the produced interface: a host buffer mapped at
// a known guest base address with a single permission bit. The sandbox
// resolves a guest address by walking (or indexing) this sequence; the
// order Build and RegionsForCurrentInstruction emit it in is part of the
// contract, not an implementation detail.
type Region struct {
	Data       []byte
	GuestBase  uint64
	Writable   bool
}

// ErrAccountIndexOutOfRange is returned by RegionsForCurrentInstruction
// when an instruction's account reference table names a tx_acc_idx that
// is not a valid index into the account set the transaction was built
// with (a violation of the tx_acc_idx < accounts_no invariant).
var ErrAccountIndexOutOfRange = errors.New("txlayout: account index out of range")
