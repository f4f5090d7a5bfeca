// Package main provides registry-updater, a CLI for the activity registry.
package main

import (
	"fmt"
	"os"

	"dogmatch-workers/pkg/registry"

	"github.com/spf13/cobra"
)

var registryPath string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "registry-updater",
		Short:         "Maintain the DogMatch activity registry",
		Long:          "registry-updater lists, adds, updates and validates the worker activities described in the activity registry JSON file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&registryPath, "path", registry.DefaultPath, "Path to registry file")
	rootCmd.AddCommand(newListCmd(), newAddCmd(), newUpdateCmd(), newValidateCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
