package cli

import (
	"fmt"

	"github.com/creedharan/sourcescore/internal/score"
	"github.com/spf13/cobra"
)

// policiesCmd represents the policies command
var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List available scoring policies",
	Long: `List the named scoring policies and their knobs.

Every score record carries the policy name it was produced under, so
numbers from different policies are never compared as if they were
the same scale.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range score.Names() {
			p, err := score.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", p.Name)
			if p.MinProvenance == "" {
				fmt.Printf("  source density:    every unique source qualifies\n")
			} else {
				fmt.Printf("  source density:    provenance %s or better\n", p.MinProvenance)
			}
			fmt.Printf("  zero-source cap:   %.0f\n", p.ZeroSourceCeiling)
			fmt.Printf("  low-OI gate:       OI < %.1f caps at %.0f\n", p.LowOIThreshold, p.LowOICeiling)
			fmt.Printf("  exemption rules:   %d\n", len(p.Prescreen))
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(policiesCmd)
}
