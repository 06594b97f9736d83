package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for simcheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simcheck",
		Short: "Pairwise text similarity check for student submissions",
		Long: `simcheck detects textual overlap between student-submitted documents.

Every subfolder of the assignments folder is one submission and must hold
exactly one document. Each pair of submissions gets a normalized Levenshtein
distance (0 = identical, 1 = nothing in common) and remarks for identical
texts and for misspelled words both documents share.

The result is an HTML matrix by default. Use --json, --markdown or --text
for other formats.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewLexiconCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
