package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"creditflow/metro2"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <record.json>",
		Short: "Validate a tradeline record against the reporting schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read record: %w", err)
			}
			var rec metro2.TradelineRecord
			if err := json.Unmarshal(data, &rec); err != nil {
				return fmt.Errorf("decode record: %w", err)
			}

			res := metro2.NewValidator().Validate(rec)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "compliance score: %d\n", res.ComplianceScore)
			if !res.HasViolations() {
				fmt.Fprintln(out, "no violations found")
				return nil
			}

			fmt.Fprintf(out, "violations (%d):\n", len(res.Violations))
			for _, v := range res.Violations {
				fmt.Fprintf(out, "  [%s] %s %s: %s (%s)\n", v.Severity, v.Field, v.Type, v.Description, v.CitedAuthority)
			}
			fmt.Fprintln(out, "dispute reasons:")
			for _, r := range metro2.DisputeReasons(res.Violations) {
				fmt.Fprintf(out, "  - %s\n", r)
			}
			return nil
		},
	}
}
