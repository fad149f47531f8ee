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
)

// BinaryUnmarshaler is implemented by types that know how to read themselves
// from a Decoder.
type BinaryUnmarshaler interface {
	UnmarshalWithDecoder(decoder *Decoder) error
}

// Decoder reads values out of a fixed byte slice at a cursor position. It is
// used both to decode wire messages (message.CompiledMessage) and, in
// tests, to read guest ABI records back out of a built transaction buffer
// to verify the byte-exact layout the spec pins.
type Decoder struct {
	data []byte
	pos  int
}

func NewBinDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

func (d *Decoder) Decode(v interface{}) error {
	unmarshaler, ok := v.(BinaryUnmarshaler)
	if !ok {
		return fmt.Errorf("encodbin: %T does not implement BinaryUnmarshaler", v)
	}
	return unmarshaler.UnmarshalWithDecoder(d)
}

func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

func (d *Decoder) Peek(n int) ([]byte, error) {
	if d.Remaining() < n {
		return nil, fmt.Errorf("encodbin: peek %d bytes, only %d remaining", n, d.Remaining())
	}
	return d.data[d.pos : d.pos+n], nil
}

func (d *Decoder) ReadNBytes(n int) ([]byte, error) {
	b, err := d.Peek(n)
	if err != nil {
		return nil, err
	}
	d.pos += n
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

func (d *Decoder) Read(dst []byte) (int, error) {
	b, err := d.ReadNBytes(len(dst))
	if err != nil {
		return 0, err
	}
	copy(dst, b)
	return len(dst), nil
}

func (d *Decoder) ReadByte() (byte, error) {
	b, err := d.ReadNBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) ReadUint8() (uint8, error) {
	return d.ReadByte()
}

func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadByte()
	return b != 0, err
}

func (d *Decoder) ReadUint16(order binary.ByteOrder) (uint16, error) {
	b, err := d.ReadNBytes(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(b), nil
}

func (d *Decoder) ReadUint32(order binary.ByteOrder) (uint32, error) {
	b, err := d.ReadNBytes(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

func (d *Decoder) ReadUint64(order binary.ByteOrder) (uint64, error) {
	b, err := d.ReadNBytes(8)
	if err != nil {
		return 0, err
	}
	return order.Uint64(b), nil
}

func (d *Decoder) ReadInt64(order binary.ByteOrder) (int64, error) {
	v, err := d.ReadUint64(order)
	return int64(v), err
}

func (d *Decoder) ReadUint128(order binary.ByteOrder) (Uint128, error) {
	b, err := d.ReadNBytes(16)
	if err != nil {
		return Uint128{}, err
	}
	sub := NewBinDecoder(b)
	lo, hi := uint64(0), uint64(0)
	if order == binary.LittleEndian {
		loBytes, _ := sub.ReadNBytes(8)
		hiBytes, _ := sub.ReadNBytes(8)
		lo = order.Uint64(loBytes)
		hi = order.Uint64(hiBytes)
	} else {
		hiBytes, _ := sub.ReadNBytes(8)
		loBytes, _ := sub.ReadNBytes(8)
		hi = order.Uint64(hiBytes)
		lo = order.Uint64(loBytes)
	}
	return Uint128{Lo: lo, Hi: hi, Endianness: order}, nil
}

func (d *Decoder) ReadInt128(order binary.ByteOrder) (Int128, error) {
	v, err := d.ReadUint128(order)
	return Int128(v), err
}

func (d *Decoder) ReadFloat128(order binary.ByteOrder) (Float128, error) {
	v, err := d.ReadUint128(order)
	return Float128(v), err
}

// ReadCompactU16 reads a Solana-style compact-u16 varint and returns it as
// an int, matching message.CompiledMessage's legacy wire format.
func (d *Decoder) ReadCompactU16() (int, error) {
	var result int
	var shift uint
	for {
		b, err := d.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= int(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
	}
	return result, nil
}

func (d *Decoder) ReadCompactU16Length() (int, error) {
	return d.ReadCompactU16()
}
