package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <input>...",
	Short: "Run one generation pass per input asset",
	Long: `Runs one independent generation pass for every given input asset.
Assets that do not match the trigger pattern are skipped. A failing pass
leaves no output behind and does not stop the remaining passes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	b, err := newBuilder(cmd)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		if err := runPass(cmd, b, path); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d passes failed", failed, len(args))
	}
	return nil
}

func runPass(cmd *cobra.Command, b passBuilder, path string) error {
	f, err := os.Open(path)
	if err != nil {
		slog.Error("cannot read input asset", "input", path, "error", err)
		return err
	}
	defer f.Close()

	result, err := b.Build(cmd.Context(), path, f)
	if err != nil {
		return err
	}
	if result.Skipped {
		slog.Info("input does not match trigger pattern, skipped", "input", path)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "generated %s\n", result.OutputPath)
	return nil
}
