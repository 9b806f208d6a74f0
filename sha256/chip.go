// Package sha256 is a bit-level SHA-256 gadget. Every value is carried as
// little-endian boolean variables, so rotations and shifts are free rewirings and
// only the boolean functions and modular additions cost constraints.
package sha256

import (
	"encoding/binary"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/bits"
)

// Size is the digest length in bytes.
const Size = 32

const blockSize = 64

// Byte holds 8 little-endian bits.
type Byte [8]frontend.Variable

// Word holds 32 little-endian bits.
type Word [32]frontend.Variable

type Chip struct {
	api frontend.API
}

func NewChip(api frontend.API) *Chip {
	return &Chip{api: api}
}

func ConstByte(b byte) Byte {
	var out Byte
	for i := range out {
		out[i] = int((b >> i) & 1)
	}
	return out
}

func ConstWord(w uint32) Word {
	var out Word
	for i := range out {
		out[i] = int((w >> i) & 1)
	}
	return out
}

// ToBytes range-checks each variable to 8 bits and returns its decomposition.
func (c *Chip) ToBytes(vs []frontend.Variable) []Byte {
	out := make([]Byte, len(vs))
	for i, v := range vs {
		copy(out[i][:], bits.ToBinary(c.api, v, bits.WithNbDigits(8)))
	}
	return out
}

// Hash returns the digest of msg. The message length is fixed by the circuit shape,
// so padding is a constant suffix.
func (c *Chip) Hash(msg []Byte) [Size]Byte {
	padded := pad(msg)

	state := make([]Word, 8)
	for i := range state {
		state[i] = ConstWord(iv[i])
	}
	for off := 0; off < len(padded); off += blockSize {
		state = c.compress(state, padded[off:off+blockSize])
	}

	var digest [Size]Byte
	for j, w := range state {
		for k := 0; k < 4; k++ {
			copy(digest[4*j+k][:], w[8*(3-k):8*(3-k)+8])
		}
	}
	return digest
}

func pad(msg []Byte) []Byte {
	n := len(msg)
	total := ((n+8)/blockSize + 1) * blockSize
	padded := make([]Byte, 0, total)
	padded = append(padded, msg...)
	padded = append(padded, ConstByte(0x80))
	for len(padded) < total-8 {
		padded = append(padded, ConstByte(0))
	}
	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(n)*8)
	for _, b := range length {
		padded = append(padded, ConstByte(b))
	}
	return padded
}

func (c *Chip) compress(state []Word, block []Byte) []Word {
	var w [64]Word
	for t := 0; t < 16; t++ {
		for k := 0; k < 4; k++ {
			copy(w[t][8*(3-k):8*(3-k)+8], block[4*t+k][:])
		}
	}
	for t := 16; t < 64; t++ {
		w[t] = c.add(c.smallSigma1(w[t-2]), w[t-7], c.smallSigma0(w[t-15]), w[t-16])
	}

	a, b, cc, d, e, f, g, h := state[0], state[1], state[2], state[3], state[4], state[5], state[6], state[7]
	for t := 0; t < 64; t++ {
		s1 := c.bigSigma1(e)
		ch := c.ch(e, f, g)
		k := ConstWord(roundConstants[t])
		s0 := c.bigSigma0(a)
		maj := c.maj(a, b, cc)

		newE := c.add(d, h, s1, ch, k, w[t])
		newA := c.add(h, s1, ch, k, w[t], s0, maj)

		h, g, f, e = g, f, e, newE
		d, cc, b, a = cc, b, a, newA
	}

	return []Word{
		c.add(state[0], a), c.add(state[1], b), c.add(state[2], cc), c.add(state[3], d),
		c.add(state[4], e), c.add(state[5], f), c.add(state[6], g), c.add(state[7], h),
	}
}

func rotr(x Word, n int) Word {
	var out Word
	for i := range out {
		out[i] = x[(i+n)%32]
	}
	return out
}

func shr(x Word, n int) Word {
	var out Word
	for i := range out {
		if i+n < 32 {
			out[i] = x[i+n]
		} else {
			out[i] = 0
		}
	}
	return out
}

func (c *Chip) bigSigma0(x Word) Word {
	return c.xor3(rotr(x, 2), rotr(x, 13), rotr(x, 22))
}

func (c *Chip) bigSigma1(x Word) Word {
	return c.xor3(rotr(x, 6), rotr(x, 11), rotr(x, 25))
}

func (c *Chip) smallSigma0(x Word) Word {
	return c.xor3(rotr(x, 7), rotr(x, 18), shr(x, 3))
}

func (c *Chip) smallSigma1(x Word) Word {
	return c.xor3(rotr(x, 17), rotr(x, 19), shr(x, 10))
}

func (c *Chip) xor(a, b frontend.Variable) frontend.Variable {
	return c.api.Sub(c.api.Add(a, b), c.api.Mul(2, a, b))
}

func (c *Chip) xor3(x, y, z Word) Word {
	var out Word
	for i := range out {
		out[i] = c.xor(c.xor(x[i], y[i]), z[i])
	}
	return out
}

// ch = g + e·(f − g)
func (c *Chip) ch(e, f, g Word) Word {
	var out Word
	for i := range out {
		out[i] = c.api.Add(g[i], c.api.Mul(e[i], c.api.Sub(f[i], g[i])))
	}
	return out
}

// maj = bc + a·(b + c − 2bc)
func (c *Chip) maj(a, b, cc Word) Word {
	var out Word
	for i := range out {
		t := c.api.Mul(b[i], cc[i])
		out[i] = c.api.Add(t, c.api.Mul(a[i], c.api.Sub(c.api.Add(b[i], cc[i]), c.api.Mul(2, t))))
	}
	return out
}

// add sums words modulo 2^32: the integer sum is decomposed with enough bits for the
// carries and the high bits are dropped.
func (c *Chip) add(ws ...Word) Word {
	terms := make([]frontend.Variable, len(ws))
	for i := range ws {
		terms[i] = c.pack(ws[i])
	}
	var sum frontend.Variable = terms[0]
	if len(terms) > 1 {
		sum = c.api.Add(terms[0], terms[1], terms[2:]...)
	}
	carries := 0
	for (1 << carries) < len(ws) {
		carries++
	}
	decomposed := bits.ToBinary(c.api, sum, bits.WithNbDigits(32+carries))
	var out Word
	copy(out[:], decomposed[:32])
	return out
}

func (c *Chip) pack(w Word) frontend.Variable {
	var acc frontend.Variable = 0
	for i := range w {
		acc = c.api.Add(acc, c.api.Mul(w[i], 1<<i))
	}
	return acc
}
