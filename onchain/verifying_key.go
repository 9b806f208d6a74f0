package onchain

import (
	"encoding/binary"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark/backend/groth16"
	groth16_bn254 "github.com/consensys/gnark/backend/groth16/bn254"

	"github.com/sovchain/mint-verifier/types"
)

const vkHeaderSize = G1Size + 3*G2Size + 4

// VerifyingKey is alpha_g1 ‖ beta_g2 ‖ gamma_g2 ‖ delta_g2 ‖ u32le(n) ‖ n × gamma_abc_g1.
// GammaABCG1[0] is the constant term; the rest follow public input order.
type VerifyingKey struct {
	AlphaG1    [G1Size]byte
	BetaG2     [G2Size]byte
	GammaG2    [G2Size]byte
	DeltaG2    [G2Size]byte
	GammaABCG1 [][G1Size]byte
}

// VerifyingKeyPoints is the decoded form of a VerifyingKey.
type VerifyingKeyPoints struct {
	Alpha bn254.G1Affine
	Beta  bn254.G2Affine
	Gamma bn254.G2Affine
	Delta bn254.G2Affine
	K     []bn254.G1Affine
}

func VerifyingKeyFromGnark(vk groth16.VerifyingKey) (*VerifyingKey, error) {
	v, ok := vk.(*groth16_bn254.VerifyingKey)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported verifying key type %T", types.ErrSerialization, vk)
	}
	if len(v.CommitmentKeys) != 0 {
		return nil, fmt.Errorf("%w: verifying key expects %d proof commitments", types.ErrSerialization, len(v.CommitmentKeys))
	}
	out := &VerifyingKey{
		AlphaG1:    v.G1.Alpha.Bytes(),
		BetaG2:     v.G2.Beta.Bytes(),
		GammaG2:    v.G2.Gamma.Bytes(),
		DeltaG2:    v.G2.Delta.Bytes(),
		GammaABCG1: make([][G1Size]byte, len(v.G1.K)),
	}
	for i := range v.G1.K {
		out.GammaABCG1[i] = v.G1.K[i].Bytes()
	}
	return out, nil
}

func (vk *VerifyingKey) Bytes() []byte {
	out := make([]byte, 0, vkHeaderSize+len(vk.GammaABCG1)*G1Size)
	out = append(out, vk.AlphaG1[:]...)
	out = append(out, vk.BetaG2[:]...)
	out = append(out, vk.GammaG2[:]...)
	out = append(out, vk.DeltaG2[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(vk.GammaABCG1)))
	for i := range vk.GammaABCG1 {
		out = append(out, vk.GammaABCG1[i][:]...)
	}
	return out
}

// ParseVerifyingKey reads the on-chain layout. The length must match the count exactly.
func ParseVerifyingKey(b []byte) (*VerifyingKey, error) {
	if len(b) < vkHeaderSize {
		return nil, fmt.Errorf("%w: verifying key too short: %d bytes", types.ErrSerialization, len(b))
	}
	vk := new(VerifyingKey)
	off := 0
	off += copy(vk.AlphaG1[:], b[off:])
	off += copy(vk.BetaG2[:], b[off:])
	off += copy(vk.GammaG2[:], b[off:])
	off += copy(vk.DeltaG2[:], b[off:])
	count := binary.LittleEndian.Uint32(b[off:])
	off += 4

	if uint64(len(b)-off) != uint64(count)*G1Size {
		return nil, fmt.Errorf("%w: verifying key declares %d input points, has %d bytes", types.ErrSerialization, count, len(b)-off)
	}
	vk.GammaABCG1 = make([][G1Size]byte, count)
	for i := range vk.GammaABCG1 {
		off += copy(vk.GammaABCG1[i][:], b[off:])
	}
	return vk, nil
}

// NumPublicInputs excludes the constant term.
func (vk *VerifyingKey) NumPublicInputs() int {
	if len(vk.GammaABCG1) == 0 {
		return 0
	}
	return len(vk.GammaABCG1) - 1
}

func (vk *VerifyingKey) Points() (*VerifyingKeyPoints, error) {
	if len(vk.GammaABCG1) == 0 {
		return nil, fmt.Errorf("%w: verifying key has no input points", types.ErrSerialization)
	}
	pts := &VerifyingKeyPoints{K: make([]bn254.G1Affine, len(vk.GammaABCG1))}
	if err := decodeG1(&pts.Alpha, vk.AlphaG1[:], "vk.alpha"); err != nil {
		return nil, err
	}
	if err := decodeG2(&pts.Beta, vk.BetaG2[:], "vk.beta"); err != nil {
		return nil, err
	}
	if err := decodeG2(&pts.Gamma, vk.GammaG2[:], "vk.gamma"); err != nil {
		return nil, err
	}
	if err := decodeG2(&pts.Delta, vk.DeltaG2[:], "vk.delta"); err != nil {
		return nil, err
	}
	for i := range vk.GammaABCG1 {
		if err := decodeG1(&pts.K[i], vk.GammaABCG1[i][:], fmt.Sprintf("vk.gamma_abc[%d]", i)); err != nil {
			return nil, err
		}
	}
	return pts, nil
}
