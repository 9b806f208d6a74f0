package circuit

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// Published constraint counts of mint/v1. Each sub-relation is compiled in
// isolation; any gadget change moves a count and fails the regression tests.
const (
	PedersenCommitmentConstraints = 2_477
	RangeProof64Constraints       = 130
	PolicyCheckConstraints        = 130
	SHA256AuthorityConstraints    = 25_819
	SHA256LimitConstraints        = 22_758
	MiscConstraints               = 130

	// The isolated commitment and limit gadgets decompose amount and limit
	// themselves; the full circuit reuses the RangeProof64 bits.
	SharedDecompositionConstraints = 130

	// TargetTotal is the constraint count of the full mint circuit.
	TargetTotal = 51_314
)

// SubRelation is one independently compiled and costed part of the relation.
type SubRelation struct {
	Name        string
	Constraints int
	circuit     func() frontend.Circuit
}

var SubRelations = []SubRelation{
	{"PedersenCommitment", PedersenCommitmentConstraints, func() frontend.Circuit { return &commitmentGadget{} }},
	{"RangeProof64", RangeProof64Constraints, func() frontend.Circuit { return &rangeGadget{} }},
	{"PolicyCheck", PolicyCheckConstraints, func() frontend.Circuit { return &policyGadget{} }},
	{"SHA256Authority", SHA256AuthorityConstraints, func() frontend.Circuit { return &authorityGadget{} }},
	{"SHA256Limit", SHA256LimitConstraints, func() frontend.Circuit { return &limitGadget{} }},
	{"Misc", MiscConstraints, func() frontend.Circuit { return &miscGadget{} }},
}

// TotalConstraints sums the published table, net of the shared decompositions.
func TotalConstraints() int {
	total := -SharedDecompositionConstraints
	for _, s := range SubRelations {
		total += s.Constraints
	}
	return total
}

// Compile builds the R1CS of the full mint relation over the BN254 scalar field.
func Compile() (constraint.ConstraintSystem, error) {
	return compile(NewSetupCircuit())
}

// Measure compiles each sub-relation in isolation and returns its constraint count.
func Measure() (map[string]int, error) {
	counts := make(map[string]int, len(SubRelations))
	for _, s := range SubRelations {
		cs, err := compile(s.circuit())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
		counts[s.Name] = cs.GetNbConstraints()
	}
	return counts, nil
}

func compile(c frontend.Circuit) (constraint.ConstraintSystem, error) {
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, c)
	if err != nil {
		return nil, fmt.Errorf("failed to compile circuit: %w", err)
	}
	return cs, nil
}
