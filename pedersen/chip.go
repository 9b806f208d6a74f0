package pedersen

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	edcurve "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	tedwards "github.com/consensys/gnark-crypto/ecc/twistededwards"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"
)

// Chip computes commitments inside a circuit over the BN254 scalar field.
type Chip struct {
	api   frontend.API
	curve twistededwards.Curve
}

func NewChip(api frontend.API) (*Chip, error) {
	curve, err := twistededwards.NewEdCurve(api, tedwards.BN254)
	if err != nil {
		return nil, fmt.Errorf("pedersen: %w", err)
	}
	return &Chip{api: api, curve: curve}, nil
}

// Commit returns amount·G + blinding·H from little-endian bit decompositions.
// The bits must already be constrained boolean by the caller.
func (c *Chip) Commit(amountBits, blindingBits []frontend.Variable) twistededwards.Point {
	g, h := Tables()
	a := c.fixedBaseMul(g[:], amountBits)
	b := c.fixedBaseMul(h[:], blindingBits)
	return c.curve.Add(a, b)
}

// AssertCommitment constrains (x, y) to be the commitment of the given bits.
func (c *Chip) AssertCommitment(x, y frontend.Variable, amountBits, blindingBits []frontend.Variable) {
	p := c.Commit(amountBits, blindingBits)
	c.api.AssertIsEqual(p.X, x)
	c.api.AssertIsEqual(p.Y, y)
}

// fixedBaseMul sums bit_i·table[i]. A selected entry (b·x, 1 + b·(y−1)) is linear in
// b, so each bit costs a single complete addition.
func (c *Chip) fixedBaseMul(table []edcurve.PointAffine, bits []frontend.Variable) twistededwards.Point {
	if len(bits) > len(table) {
		panic(fmt.Sprintf("pedersen: %d bits exceed table size %d", len(bits), len(table)))
	}
	acc := c.selectEntry(bits[0], &table[0])
	for i := 1; i < len(bits); i++ {
		acc = c.curve.Add(acc, c.selectEntry(bits[i], &table[i]))
	}
	return acc
}

func (c *Chip) selectEntry(bit frontend.Variable, p *edcurve.PointAffine) twistededwards.Point {
	var one, yMinusOne fr.Element
	one.SetOne()
	yMinusOne.Sub(&p.Y, &one)
	return twistededwards.Point{
		X: c.api.Mul(bit, p.X.BigInt(new(big.Int))),
		Y: c.api.Add(1, c.api.Mul(bit, yMinusOne.BigInt(new(big.Int)))),
	}
}
