// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

// Package guestabi defines the byte-exact records the guest virtual
// machine indexes by pointer arithmetic: the Slice descriptor, the
// per-instruction and per-account descriptor types, and the transaction
// context record. Every type here has a fixed size pinned by tests; all
// fields are little-endian, written in declared order, with no hidden
// padding beyond the natural alignment of the largest field.
package guestabi

import (
	"github.com/cielu/go-guestvm/pkg/encodbin"
)

// Slice is a (guest pointer, length) pair: exactly 16 bytes, two
// little-endian u64 fields. It never carries a host pointer — Pointer is
// always an address inside the guest's virtual address space, assigned
// from the addrspace package.
type Slice struct {
	Pointer uint64
	Length  uint64
}

// SizeOfSlice is the fixed wire size of Slice, pinned by
// TestSliceSize.
const SizeOfSlice = 16

func (s Slice) MarshalWithEncoder(enc *encodbin.Encoder) error {
	if err := enc.WriteUint64(s.Pointer, encodbin.LE); err != nil {
		return err
	}
	return enc.WriteUint64(s.Length, encodbin.LE)
}

func (s *Slice) UnmarshalWithDecoder(dec *encodbin.Decoder) (err error) {
	s.Pointer, err = dec.ReadUint64(encodbin.LE)
	if err != nil {
		return err
	}
	s.Length, err = dec.ReadUint64(encodbin.LE)
	return err
}
