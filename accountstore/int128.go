// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

package accountstore

import (
	"encoding/binary"
	"math/big"

	"github.com/cielu/go-guestvm/pkg/encodbin"
)

var (
	pow2_128 = new(big.Int).Lsh(big.NewInt(1), 128)
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
)

// packInt128 is the inverse of encodbin.Int128.BigInt: it takes a signed
// value known to be in [minInt128, maxInt128] and packs it into the
// same big-endian, two's-complement 16-byte layout that Int128.Bytes
// produces (high 8 bytes, then low 8 bytes), so that round-tripping
// through BigInt is lossless.
func packInt128(v *big.Int) encodbin.Int128 {
	mod := new(big.Int).Mod(v, pow2_128)
	buf := mod.FillBytes(make([]byte, 16))
	hi := binary.BigEndian.Uint64(buf[0:8])
	lo := binary.BigEndian.Uint64(buf[8:16])
	return encodbin.Int128{Lo: lo, Hi: hi}
}
