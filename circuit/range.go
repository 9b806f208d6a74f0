package circuit

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/bits"
)

// RangeCheck64 constrains v < 2^64 and returns its little-endian bits.
func RangeCheck64(api frontend.API, v frontend.Variable) []frontend.Variable {
	return bits.ToBinary(api, v, bits.WithNbDigits(64))
}

// AssertPolicy enforces 0 < amount ≤ limit for 64-bit operands: amount−1 and
// limit−amount must both be 64-bit values, which fails on field wraparound.
func AssertPolicy(api frontend.API, amount, limit frontend.Variable) {
	RangeCheck64(api, api.Sub(amount, 1))
	RangeCheck64(api, api.Sub(limit, amount))
}
