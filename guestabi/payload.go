// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

package guestabi

import "sync/atomic"

// Payload is a reference-counted byte buffer, the Go stand-in for the
// source's Arc<Vec<u8>>. accountstore.New and txlayout.Build each take
// a clone from the loaded account (for the store's payload column and the
// Region Assembler's account regions); MakeMut implements copy-on-write,
// promoting to a private buffer only when the reference count shows the
// data is actually shared.
type Payload struct {
	buf *payloadBuf
}

type payloadBuf struct {
	refs int32
	data []byte
}

// NewPayload wraps data in a freshly owned (refcount 1) Payload.
func NewPayload(data []byte) Payload {
	return Payload{buf: &payloadBuf{refs: 1, data: data}}
}

// Clone increments the reference count and returns a Payload sharing the
// same underlying buffer.
func (p Payload) Clone() Payload {
	atomic.AddInt32(&p.buf.refs, 1)
	return p
}

// Release decrements the reference count. Callers that drop a Payload
// they obtained via Clone must call Release so MakeMut's sharedness test
// stays accurate.
func (p Payload) Release() {
	atomic.AddInt32(&p.buf.refs, -1)
}

// Bytes returns a read-only view of the buffer.
func (p Payload) Bytes() []byte {
	if p.buf == nil {
		return nil
	}
	return p.buf.data
}

// Len returns the current payload length.
func (p Payload) Len() int {
	return len(p.Bytes())
}

// MakeMut returns a mutable slice onto the payload, promoting to a
// privately-owned buffer first if the reference count indicates the data
// is shared (refcount > 1). This is the Go analogue of Arc::make_mut:
// outstanding clones (e.g. a payload region handed to the Region
// Assembler) are left untouched by the promotion, they simply stop being
// the same object as the one this Payload now points to.
func (p *Payload) MakeMut() []byte {
	if atomic.LoadInt32(&p.buf.refs) > 1 {
		owned := make([]byte, len(p.buf.data))
		copy(owned, p.buf.data)
		atomic.AddInt32(&p.buf.refs, -1)
		p.buf = &payloadBuf{refs: 1, data: owned}
	}
	return p.buf.data
}

// Set replaces the payload contents outright (used by set-data style
// writes that don't need byte-level in-place mutation).
func (p *Payload) Set(data []byte) {
	if atomic.LoadInt32(&p.buf.refs) > 1 {
		atomic.AddInt32(&p.buf.refs, -1)
		p.buf = &payloadBuf{refs: 1, data: data}
		return
	}
	p.buf.data = data
}
