// Package cmd implements the commitsmith command-line surface: parsing
// the current diff, rendering it in the formatter's three shapes,
// building and executing staging plans, and serving the same
// operations over MCP.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	workingDirectory string
	minContextGap    int
	strict           bool
	dbPath           string
)

var rootCmd = &cobra.Command{
	Use:   "commitsmith",
	Short: "Decompose uncommitted changes into atomic, reviewable commits",
	Long: `commitsmith parses an unstaged diff into hunks, lets an agent or
human select and edit pieces of it through a plan document, and stages
exactly those pieces.

Examples:
  commitsmith diff
  commitsmith plan --output plan.md
  commitsmith apply plan.md
  commitsmith serve`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&workingDirectory, "working-directory", ".", "repository root to operate against")
	rootCmd.PersistentFlags().IntVar(&minContextGap, "min-context-gap", 3, "minimum context lines required to split or flag a hunk as splittable")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail on the first validateHunk invariant mismatch instead of logging it")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath(), "path to the plan-run history database")
}

// Execute runs the root command and its subcommands.
func Execute() error {
	return rootCmd.Execute()
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".commitsmith/plans.db"
	}
	return filepath.Join(home, ".commitsmith", "plans.db")
}
