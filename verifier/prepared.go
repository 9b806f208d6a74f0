package verifier

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/sovchain/mint-verifier/onchain"
	"github.com/sovchain/mint-verifier/types"
)

type lines = [2][len(bn254.LoopCounter)]bn254.LineEvaluationAff

// PreparedVerifyingKey caches e(α, β) and the Miller loop lines of −γ and −δ.
// It is immutable once built and safe for concurrent use.
type PreparedVerifyingKey struct {
	alphaBeta     bn254.GT
	gammaNegLines lines
	deltaNegLines lines
	k             []bn254.G1Affine
}

// Prepare derives the prepared form of an on-chain verifying key.
func Prepare(vk *onchain.VerifyingKey) (*PreparedVerifyingKey, error) {
	pts, err := vk.Points()
	if err != nil {
		return nil, err
	}
	if len(pts.K) != types.NumPublicInputs+1 {
		return nil, fmt.Errorf("%w: verifying key has %d input points, expected %d", types.ErrSerialization, len(pts.K), types.NumPublicInputs+1)
	}

	alphaBeta, err := bn254.Pair([]bn254.G1Affine{pts.Alpha}, []bn254.G2Affine{pts.Beta})
	if err != nil {
		return nil, fmt.Errorf("failed to compute e(alpha, beta): %w", err)
	}
	var gammaNeg, deltaNeg bn254.G2Affine
	gammaNeg.Neg(&pts.Gamma)
	deltaNeg.Neg(&pts.Delta)

	return &PreparedVerifyingKey{
		alphaBeta:     alphaBeta,
		gammaNegLines: bn254.PrecomputeLines(gammaNeg),
		deltaNegLines: bn254.PrecomputeLines(deltaNeg),
		k:             pts.K,
	}, nil
}

// check reports whether e(A, B)·e(L, −γ)·e(C, −δ) = e(α, β), where
// L = K[0] + Σ inputs[i]·K[i+1].
func (pvk *PreparedVerifyingKey) check(a bn254.G1Affine, b bn254.G2Affine, c bn254.G1Affine, inputs []fr.Element) (bool, error) {
	if len(inputs) != len(pvk.k)-1 {
		return false, fmt.Errorf("%w: got %d inputs, expected %d", types.ErrInvalidPublicInput, len(inputs), len(pvk.k)-1)
	}

	var kSum bn254.G1Jac
	if _, err := kSum.MultiExp(pvk.k[1:], inputs, ecc.MultiExpConfig{}); err != nil {
		return false, fmt.Errorf("failed to combine public inputs: %w", err)
	}
	kSum.AddMixed(&pvk.k[0])
	var l bn254.G1Affine
	l.FromJacobian(&kSum)

	ab, err := bn254.MillerLoop([]bn254.G1Affine{a}, []bn254.G2Affine{b})
	if err != nil {
		return false, fmt.Errorf("miller loop: %w", err)
	}
	fixed, err := bn254.MillerLoopFixedQ([]bn254.G1Affine{l, c}, []lines{pvk.gammaNegLines, pvk.deltaNegLines})
	if err != nil {
		return false, fmt.Errorf("miller loop: %w", err)
	}
	result := bn254.FinalExponentiation(&ab, &fixed)
	return result.Equal(&pvk.alphaBeta), nil
}
