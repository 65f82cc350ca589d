package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"commitsmith/pkg/diffmodel"
	"commitsmith/pkg/executor"
	"commitsmith/pkg/formatter"
)

var (
	diffStaged  bool
	diffContext int
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Parse the current diff and print its compact hunk table",
	RunE:  runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffStaged, "staged", false, "show the staged diff instead of the unstaged diff")
	diffCmd.Flags().IntVar(&diffContext, "context", 0, "render with N lines of context instead of the tool default")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	vcs := executor.NewGitVCS(workingDirectory)

	diffText, err := fetchDiffText(ctx, vcs)
	if err != nil {
		return fmt.Errorf("fetch diff: %w", err)
	}

	parsed := diffmodel.Parse(diffText)
	if err := checkStrict(parsed); err != nil {
		return err
	}

	fmt.Print(formatter.CompactTable(parsed))
	return nil
}

func fetchDiffText(ctx context.Context, vcs executor.VCS) (string, error) {
	if diffContext > 0 {
		return vcs.GetDiffWithContext(ctx, diffContext)
	}
	if diffStaged {
		return vcs.GetStagedDiff(ctx)
	}
	return vcs.GetUnstagedDiff(ctx)
}
