package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sovchain/mint-verifier/circuit"
)

var constraintsCmd = &cobra.Command{
	Use:   "constraints",
	Short: "compile each sub-relation and compare its constraint count with the published table",
	RunE:  constraints,
}

func constraints(cmd *cobra.Command, args []string) error {
	counts, err := circuit.Measure()
	if err != nil {
		return err
	}
	cs, err := circuit.Compile()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	drift := 0
	fmt.Fprintf(out, "%-20s %10s %10s\n", "sub-relation", "count", "published")
	for _, s := range circuit.SubRelations {
		mark := ""
		if counts[s.Name] != s.Constraints {
			mark = "  drift"
			drift++
		}
		fmt.Fprintf(out, "%-20s %10d %10d%s\n", s.Name, counts[s.Name], s.Constraints, mark)
	}
	fmt.Fprintf(out, "%-20s %10d %10d\n", "total ("+circuit.Version+")", cs.GetNbConstraints(), circuit.TargetTotal)

	if drift > 0 || cs.GetNbConstraints() != circuit.TargetTotal {
		return fmt.Errorf("constraint counts differ from the published table")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(constraintsCmd)
}
