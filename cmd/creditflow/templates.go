package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"creditflow/letters"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the letter template catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, tpl := range letters.Templates() {
				dt := string(tpl.Key.DisputeType)
				if dt == "" {
					dt = "*"
				}
				stage := string(tpl.Key.Stage)
				if stage == "" {
					stage = string(letters.StageInitial)
				}
				fmt.Fprintf(out, "%-18s %-14s %-12s %s\n", dt, stage, tpl.CitedSection, tpl.Subject)
			}
			return nil
		},
	}
}
