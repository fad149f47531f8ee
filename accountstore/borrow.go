// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

package accountstore

// borrowCounter is a single signed 8-bit cell implementing the store's
// borrow protocol: 0 is free, a positive count is that many readers, -1
// is one writer. Values at or below -2 are never produced but are
// tolerated as "writing" by isWriting, matching the source's tolerance
// for a saturating release_borrow_mut that undershoots.
type borrowCounter struct {
	counter int8
}

func (b *borrowCounter) isWriting() bool {
	return b.counter < 0
}

func (b *borrowCounter) isReading() bool {
	return b.counter > 0
}

// tryBorrow acquires an immutable lease. Fails if a writer holds the
// account, or if incrementing the reader count would overflow int8
// (cap 127 readers).
func (b *borrowCounter) tryBorrow() error {
	if b.isWriting() {
		return ErrAccountBorrowFailed
	}
	if b.counter == 127 {
		return ErrAccountBorrowFailed
	}
	b.counter++
	return nil
}

// tryBorrowMut acquires an exclusive lease. Fails if any reader or
// writer holds the account.
func (b *borrowCounter) tryBorrowMut() error {
	if b.isWriting() || b.isReading() {
		return ErrAccountBorrowFailed
	}
	b.counter = saturatingSub8(b.counter, 1)
	return nil
}

func (b *borrowCounter) releaseBorrow() {
	b.counter = saturatingSub8(b.counter, 1)
}

func (b *borrowCounter) releaseBorrowMut() {
	b.counter = saturatingAdd8(b.counter, 1)
}

func saturatingSub8(v int8, d int8) int8 {
	if v < -128+d {
		return -128
	}
	return v - d
}

func saturatingAdd8(v int8, d int8) int8 {
	if v > 127-d {
		return 127
	}
	return v + d
}
