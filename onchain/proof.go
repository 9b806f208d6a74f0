// Package onchain holds the fixed byte layouts handed to a ledger verifier. Points use
// the gnark-crypto compressed encoding: big-endian x with the flag bits in the top byte.
package onchain

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark/backend/groth16"
	groth16_bn254 "github.com/consensys/gnark/backend/groth16/bn254"

	"github.com/sovchain/mint-verifier/types"
)

const (
	G1Size = bn254.SizeOfG1AffineCompressed
	G2Size = bn254.SizeOfG2AffineCompressed
)

// Proof is A ‖ B ‖ C, 128 bytes.
type Proof struct {
	A [G1Size]byte
	B [G2Size]byte
	C [G1Size]byte
}

// ProofFromGnark projects a BN254 Groth16 proof. Proofs carrying commitment
// extensions do not fit the fixed layout and are rejected.
func ProofFromGnark(proof groth16.Proof) (*Proof, error) {
	p, ok := proof.(*groth16_bn254.Proof)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported proof type %T", types.ErrSerialization, proof)
	}
	if len(p.Commitments) != 0 {
		return nil, fmt.Errorf("%w: proof carries %d commitments", types.ErrSerialization, len(p.Commitments))
	}
	return &Proof{
		A: p.Ar.Bytes(),
		B: p.Bs.Bytes(),
		C: p.Krs.Bytes(),
	}, nil
}

// ParseProof splits the 128-byte layout without decoding the points.
func ParseProof(b []byte) (*Proof, error) {
	if len(b) != types.ProofSize {
		return nil, fmt.Errorf("%w: proof must be %d bytes, got %d", types.ErrSerialization, types.ProofSize, len(b))
	}
	p := new(Proof)
	copy(p.A[:], b[:G1Size])
	copy(p.B[:], b[G1Size:G1Size+G2Size])
	copy(p.C[:], b[G1Size+G2Size:])
	return p, nil
}

func (p *Proof) Bytes() []byte {
	out := make([]byte, 0, types.ProofSize)
	out = append(out, p.A[:]...)
	out = append(out, p.B[:]...)
	out = append(out, p.C[:]...)
	return out
}

func (p *Proof) Size() int {
	return len(p.A) + len(p.B) + len(p.C)
}

// Points decodes A, B and C. Decoding rejects invalid encodings and points off the
// curve or outside the prime-order subgroup.
func (p *Proof) Points() (a bn254.G1Affine, b bn254.G2Affine, c bn254.G1Affine, err error) {
	if err = decodeG1(&a, p.A[:], "proof.A"); err != nil {
		return
	}
	if err = decodeG2(&b, p.B[:], "proof.B"); err != nil {
		return
	}
	err = decodeG1(&c, p.C[:], "proof.C")
	return
}

// ToGnark rebuilds the backend proof object.
func (p *Proof) ToGnark() (*groth16_bn254.Proof, error) {
	a, b, c, err := p.Points()
	if err != nil {
		return nil, err
	}
	return &groth16_bn254.Proof{Ar: a, Bs: b, Krs: c}, nil
}

func decodeG1(dst *bn254.G1Affine, b []byte, what string) error {
	if _, err := dst.SetBytes(b); err != nil {
		return types.WrapSerialization(what, err)
	}
	return nil
}

func decodeG2(dst *bn254.G2Affine, b []byte, what string) error {
	if _, err := dst.SetBytes(b); err != nil {
		return types.WrapSerialization(what, err)
	}
	return nil
}
