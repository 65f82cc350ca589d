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
	formatDetail        string
	formatScaffold      bool
	formatCommitMessage string
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Render the current diff as a compact table, a detailed hunk block, or a plan scaffold",
	RunE:  runFormat,
}

func init() {
	formatCmd.Flags().StringVar(&formatDetail, "detail", "", "render the detailed block for one hunk id instead of the compact table")
	formatCmd.Flags().BoolVar(&formatScaffold, "scaffold", false, "render a plan-document scaffold instead of the compact table")
	formatCmd.Flags().StringVar(&formatCommitMessage, "commit-message", "", "commit message line for a rendered scaffold")
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	vcs := executor.NewGitVCS(workingDirectory)

	diffText, err := vcs.GetUnstagedDiff(ctx)
	if err != nil {
		return fmt.Errorf("fetch diff: %w", err)
	}

	parsed := diffmodel.Parse(diffText)
	if err := checkStrict(parsed); err != nil {
		return err
	}

	switch {
	case formatDetail != "":
		h := parsed.GetHunk(formatDetail)
		if h == nil {
			return fmt.Errorf("hunk not found: %s", formatDetail)
		}
		fmt.Print(formatter.DetailedBlock(h, minContextGap))
	case formatScaffold:
		fmt.Print(formatter.PlanScaffold(parsed, formatCommitMessage))
	default:
		fmt.Print(formatter.CompactTable(parsed))
	}
	return nil
}
