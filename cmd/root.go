// Package cmd wires the blocksync CLI: a root command plus the
// generate-signature and generate-diff subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arnevoss/blocksync/utils"
)

var rootCommand = &cobra.Command{
	Use:   "blocksync",
	Short: "blocksync computes compact binary deltas between two file versions",
	Long: `blocksync computes compact binary deltas between two versions of a
file using a two-tier rolling-hash algorithm in the spirit of rsync.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCommand.AddCommand(newGenerateSignatureCommand())
	rootCommand.AddCommand(newGenerateDiffCommand())
}

// Execute runs the root command, printing a single-line diagnostic and
// exiting non-zero on failure.
func Execute() {
	if err := rootCommand.Execute(); err != nil {
		utils.Fatal(err)
	}
}
