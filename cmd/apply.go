package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"commitsmith/internal/display"
	"commitsmith/internal/planstore"
	"commitsmith/pkg/diffmodel"
	"commitsmith/pkg/executor"
	"commitsmith/pkg/stagingplan"
)

var applyCmd = &cobra.Command{
	Use:   "apply <plan-file>",
	Short: "Execute a plan document against the current diff and stage its selections",
	Args:  cobra.ExactArgs(1),
	RunE:  runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
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

	planText, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read plan file %s: %w", args[0], err)
	}
	plan := stagingplan.ParseDocument(string(planText))

	res := executor.Execute(ctx, parsed, plan, vcs)

	if store, storeErr := planstore.Open(dbPath); storeErr != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open plan history database %s: %v\n", dbPath, storeErr)
	} else if _, recErr := store.RecordRun(ctx, plan, res); recErr != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record plan run: %v\n", recErr)
	}

	styles := display.NewStyles()
	fmt.Println(styles.RenderExecResult(res))

	if !res.Success {
		return fmt.Errorf("plan execution failed: %s", res.Err.Error())
	}
	return nil
}
