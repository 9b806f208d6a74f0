package pedersen

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/sovchain/mint-verifier/types"
)

// Commit returns amount·G + blinding·H.
func Commit(amount uint64, blinding *big.Int) types.Commitment {
	p := CommitPoint(amount, blinding)
	return types.Commitment{
		X: types.ElementToLittleEndian(&p.X),
		Y: types.ElementToLittleEndian(&p.Y),
	}
}

func CommitPoint(amount uint64, blinding *big.Int) twistededwards.PointAffine {
	g, h := Generators()
	var a, b twistededwards.PointAffine
	a.ScalarMultiplication(&g, new(big.Int).SetUint64(amount))
	b.ScalarMultiplication(&h, blinding)
	a.Add(&a, &b)
	return a
}

// CommitWitness commits to the witness amount under its own blinding.
func CommitWitness(w *types.Witness) types.Commitment {
	return Commit(w.Amount, w.BlindingScalar())
}

// Opens reports whether c is a commitment to the witness amount and blinding.
func Opens(c types.Commitment, w *types.Witness) bool {
	return CommitWitness(w) == c
}
