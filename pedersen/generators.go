package pedersen

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
)

// DomainTag seeds the derivation of the blinding generator H.
const DomainTag = "mintproof/pedersen/H"

// TableSize covers a full scalar field element.
const TableSize = fr.Bits

var generators struct {
	once sync.Once
	g, h twistededwards.PointAffine
	err  error
}

var tables struct {
	once sync.Once
	g, h [TableSize]twistededwards.PointAffine
}

// Generators returns (G, H). G is the standard base point of the curve embedded in
// BN254; H is hashed to the curve so that its discrete log relative to G is unknown.
func Generators() (twistededwards.PointAffine, twistededwards.PointAffine) {
	generators.once.Do(func() {
		params := twistededwards.GetEdwardsCurve()
		generators.g = params.Base
		generators.h, generators.err = hashToCurve([]byte(DomainTag))
	})
	if generators.err != nil {
		panic(generators.err)
	}
	return generators.g, generators.h
}

// Tables returns 2^i·G and 2^i·H for i < TableSize.
func Tables() (*[TableSize]twistededwards.PointAffine, *[TableSize]twistededwards.PointAffine) {
	tables.once.Do(func() {
		g, h := Generators()
		tables.g[0], tables.h[0] = g, h
		for i := 1; i < TableSize; i++ {
			tables.g[i].Double(&tables.g[i-1])
			tables.h[i].Double(&tables.h[i-1])
		}
	})
	return &tables.g, &tables.h
}

// hashToCurve is try-and-increment: y = SHA-256(tag ‖ counter) mod r, solve the
// curve equation for x, then clear the cofactor.
func hashToCurve(tag []byte) (twistededwards.PointAffine, error) {
	params := twistededwards.GetEdwardsCurve()
	var one fr.Element
	one.SetOne()

	var counter [4]byte
	for i := uint32(0); i < 256; i++ {
		binary.BigEndian.PutUint32(counter[:], i)
		digest := sha256.Sum256(append(append([]byte{}, tag...), counter[:]...))

		var y, y2, num, den, x2, x fr.Element
		y.SetBytes(digest[:])
		y2.Square(&y)
		num.Sub(&one, &y2)
		den.Mul(&params.D, &y2)
		den.Sub(&params.A, &den)
		if den.IsZero() {
			continue
		}
		den.Inverse(&den)
		x2.Mul(&num, &den)
		if x.Sqrt(&x2) == nil {
			continue
		}

		var p twistededwards.PointAffine
		p.X, p.Y = x, y
		if !p.IsOnCurve() {
			continue
		}
		p.ScalarMultiplication(&p, params.Cofactor.BigInt(new(big.Int)))
		if isIdentity(&p) {
			continue
		}
		return p, nil
	}
	return twistededwards.PointAffine{}, fmt.Errorf("pedersen: no curve point found for tag %q", tag)
}

func isIdentity(p *twistededwards.PointAffine) bool {
	return p.X.IsZero() && p.Y.IsOne()
}
