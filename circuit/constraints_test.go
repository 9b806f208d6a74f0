package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sovchain/mint-verifier/types"
)

func TestConstraintTableMatchesTarget(t *testing.T) {
	require.Equal(t, TargetTotal, TotalConstraints())

	seen := make(map[string]bool)
	for _, s := range SubRelations {
		require.False(t, seen[s.Name], "duplicate sub-relation %s", s.Name)
		seen[s.Name] = true
		require.Positive(t, s.Constraints)
	}
	require.Len(t, SubRelations, 6)
}

func TestSubRelationConstraintCounts(t *testing.T) {
	counts, err := Measure()
	require.NoError(t, err)
	for _, s := range SubRelations {
		t.Logf("%s: %d constraints (published %d)", s.Name, counts[s.Name], s.Constraints)
		require.Equal(t, s.Constraints, counts[s.Name], s.Name)
	}
}

func TestMintCircuitConstraintCount(t *testing.T) {
	cs, err := Compile()
	require.NoError(t, err)
	t.Logf("mint circuit: %d constraints", cs.GetNbConstraints())
	require.Equal(t, TargetTotal, cs.GetNbConstraints())

	// The constant one wire is counted as a public variable.
	require.Equal(t, types.NumPublicInputs+1, cs.GetNbPublicVariables())
	// amount, blinding, 32 pubkey bytes, limit
	require.Equal(t, 35, cs.GetNbSecretVariables())
}
