// Copyright 2021 github.com/gagliardetto
// This file has been modified by github.com/gagliardetto
//
// Copyright 2020 dfuse Platform Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package encodbin

import (
	"encoding/binary"
	"fmt"
	"io"
)

// BinaryMarshaler is implemented by types that know how to write themselves
// onto an Encoder. Guest ABI records (Slice, instruction/account/tx
// descriptors) implement this so MarshalBin/BinByteCount work on them
// uniformly.
type BinaryMarshaler interface {
	MarshalWithEncoder(encoder *Encoder) error
}

// Encoder writes values in a fixed little-endian layout, mirroring the
// byte-exact records described by the guest ABI: no reflection, no tags,
// every field written in declared order.
type Encoder struct {
	w     io.Writer
	Order binary.ByteOrder
}

// NewBinEncoder returns an Encoder writing to w in little-endian order.
func NewBinEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, Order: LE}
}

func (e *Encoder) Encode(v interface{}) error {
	marshaler, ok := v.(BinaryMarshaler)
	if !ok {
		return fmt.Errorf("encodbin: %T does not implement BinaryMarshaler", v)
	}
	return marshaler.MarshalWithEncoder(e)
}

func (e *Encoder) WriteBytes(b []byte) error {
	_, err := e.w.Write(b)
	return err
}

func (e *Encoder) WriteUint8(v uint8) error {
	return e.WriteBytes([]byte{v})
}

func (e *Encoder) WriteBool(v bool) error {
	if v {
		return e.WriteUint8(1)
	}
	return e.WriteUint8(0)
}

func (e *Encoder) WriteUint16(v uint16, order binary.ByteOrder) error {
	buf := make([]byte, 2)
	order.PutUint16(buf, v)
	return e.WriteBytes(buf)
}

func (e *Encoder) WriteUint32(v uint32, order binary.ByteOrder) error {
	buf := make([]byte, 4)
	order.PutUint32(buf, v)
	return e.WriteBytes(buf)
}

func (e *Encoder) WriteUint64(v uint64, order binary.ByteOrder) error {
	buf := make([]byte, 8)
	order.PutUint64(buf, v)
	return e.WriteBytes(buf)
}

func (e *Encoder) WriteInt64(v int64, order binary.ByteOrder) error {
	return e.WriteUint64(uint64(v), order)
}

func (e *Encoder) WriteUint128(v Uint128, order binary.ByteOrder) error {
	saved := v.Endianness
	v.Endianness = order
	err := e.WriteBytes(v.Bytes())
	v.Endianness = saved
	return err
}

func (e *Encoder) WriteInt128(v Int128, order binary.ByteOrder) error {
	return e.WriteUint128(Uint128(v), order)
}

// EncodeCompactU16Length appends a Solana-style compact-u16 varint encoding
// the element count n to buf. Kept from the teacher's wire-format helpers;
// this module's guest ABI records never use compact-u16 themselves (they
// are fixed-width), but message.CompiledMessage's legacy marshaling
// does, so the helper still has a real caller.
func EncodeCompactU16Length(buf *[]byte, n int) {
	v := uint16(n)
	for {
		elem := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			*buf = append(*buf, elem)
			break
		}
		*buf = append(*buf, elem|0x80)
	}
}
