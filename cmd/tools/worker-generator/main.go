// Package main provides worker-generator, which scaffolds a worker package
// from its activity registry entry.
package main

import (
	"fmt"
	"os"

	"dogmatch-workers/pkg/registry"

	"github.com/spf13/cobra"
)

var (
	activityID   string
	outputDir    string
	registryPath string
	force        bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker-generator",
		Short: "Scaffold a Zeebe worker package from the activity registry",
		Long: `worker-generator reads one activity from the registry and writes the
config, models, validation, handler and test files for it, using the shared
job runner and the registry's input schema.`,
		Example:       "  worker-generator --activity find-similar-breeds",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	cmd.Flags().StringVarP(&activityID, "activity", "a", "", "Activity ID from the registry (required)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "internal/workers", "Root directory for generated workers")
	cmd.Flags().StringVar(&registryPath, "registry", registry.DefaultPath, "Path to the activity registry JSON file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	_ = cmd.MarkFlagRequired("activity")
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	activity, err := reg.Find(activityID)
	if err != nil {
		return err
	}

	files, err := Generate(*activity, outputDir, force)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range files {
		fmt.Fprintf(out, "Generated %s\n", f)
	}
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Implement Execute in handler.go")
	fmt.Fprintln(out, "  2. Register the worker in cmd/worker-manager")
	fmt.Fprintf(out, "  3. Add workers.%s to configs/config.yaml\n", activity.TaskType)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
