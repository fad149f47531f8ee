// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

// Package account defines the consumed account interface: the read-only
// capability set txlayout needs from a loaded account when it builds the
// guest transaction layout. accountstore's TransactionAccounts is the
// consumer of these at runtime; this package only has to describe the
// shape a loaded account must have going in.
package account

import (
	"github.com/cielu/go-guestvm/common"
	"github.com/cielu/go-guestvm/guestabi"
)

// Account is the read-only view of a loaded account that txlayout.Build
// consumes when constructing the guest transaction layout.
type Account interface {
	Pubkey() common.Address
	Owner() common.Address
	Lamports() uint64
	Executable() bool
	RentEpoch() uint64
	// Data returns the account's current payload bytes.
	Data() []byte
	// DataClone returns a reference-counted handle sharing the same
	// underlying bytes as Data, for accountstore to retain without
	// copying.
	DataClone() guestabi.Payload
}

// LoadedAccount is the concrete Account used to seed a transaction's
// account set: the output of whatever account-loading stage runs before
// this module (out of scope here, consumed only through this interface).
type LoadedAccount struct {
	PubkeyField     common.Address
	OwnerField      common.Address
	LamportsField   uint64
	ExecutableField bool
	RentEpochField  uint64
	Payload         guestabi.Payload
}

// NewLoadedAccount builds a LoadedAccount, wrapping data in a freshly
// owned Payload.
func NewLoadedAccount(pubkey, owner common.Address, lamports uint64, data []byte, executable bool, rentEpoch uint64) LoadedAccount {
	return LoadedAccount{
		PubkeyField:     pubkey,
		OwnerField:      owner,
		LamportsField:   lamports,
		ExecutableField: executable,
		RentEpochField:  rentEpoch,
		Payload:         guestabi.NewPayload(data),
	}
}

func (a LoadedAccount) Pubkey() common.Address   { return a.PubkeyField }
func (a LoadedAccount) Owner() common.Address    { return a.OwnerField }
func (a LoadedAccount) Lamports() uint64         { return a.LamportsField }
func (a LoadedAccount) Executable() bool         { return a.ExecutableField }
func (a LoadedAccount) RentEpoch() uint64        { return a.RentEpochField }
func (a LoadedAccount) Data() []byte             { return a.Payload.Bytes() }
func (a LoadedAccount) DataClone() guestabi.Payload { return a.Payload.Clone() }
