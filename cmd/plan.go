package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"commitsmith/pkg/diffmodel"
	"commitsmith/pkg/executor"
	"commitsmith/pkg/formatter"
)

var (
	planOutput        string
	planCommitMessage string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Render a plan-document scaffold for the current unstaged diff",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planOutput, "output", "", "write the scaffold to this file instead of stdout")
	planCmd.Flags().StringVar(&planCommitMessage, "commit-message", "", "commit message line for the scaffold")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
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

	scaffold := formatter.PlanScaffold(parsed, planCommitMessage)

	if planOutput == "" {
		fmt.Print(scaffold)
		return nil
	}
	if err := os.WriteFile(planOutput, []byte(scaffold), 0644); err != nil {
		return fmt.Errorf("write plan scaffold to %s: %w", planOutput, err)
	}
	fmt.Printf("wrote plan scaffold to %s\n", planOutput)
	return nil
}
