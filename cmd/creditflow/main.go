package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.SetFlags(0)
		log.Printf("creditflow: %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "creditflow",
		Short:         "Credit dispute enforcement engine",
		Long:          "creditflow validates tradeline records against the Metro-2 reporting schema,\ngenerates dispute correspondence, and drives disputes through the enforcement\nworkflow.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newSweepCmd(&configPath))
	root.AddCommand(newTemplatesCmd())
	return root
}
