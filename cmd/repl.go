package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"commitsmith/internal/display"
	"commitsmith/pkg/diffmodel"
	"commitsmith/pkg/executor"
	"commitsmith/pkg/stagingplan"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively build and execute a staging plan over the current diff",
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
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

	plan := &stagingplan.StagingPlan{CommitMessage: stagingplan.DefaultCommitMessage}

	historyFile := filepath.Join(os.Getenv("HOME"), ".commitsmith_history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "❯ ",
		HistoryFile:     historyFile,
		HistoryLimit:    500,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("create readline instance: %w", err)
	}
	defer rl.Close()

	styles := display.NewStyles()
	fmt.Println("commitsmith interactive plan builder.")
	fmt.Println("commands: list | include <id> | exclude <id> | message <text> | apply | exit")

	for {
		line, readErr := rl.Readline()
		if readErr != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rl.SaveHistory(line)

		switch {
		case line == "exit" || line == "quit":
			return nil
		case line == "list":
			for _, h := range parsed.GetAllHunks() {
				fmt.Println(styles.RenderHunk(h))
			}
		case strings.HasPrefix(line, "include "):
			setSelection(plan, strings.TrimSpace(strings.TrimPrefix(line, "include ")), stagingplan.All)
		case strings.HasPrefix(line, "exclude "):
			setSelection(plan, strings.TrimSpace(strings.TrimPrefix(line, "exclude ")), stagingplan.None)
		case strings.HasPrefix(line, "message "):
			plan.CommitMessage = strings.TrimSpace(strings.TrimPrefix(line, "message "))
		case line == "apply":
			res := executor.Execute(ctx, parsed, plan, vcs)
			fmt.Println(styles.RenderExecResult(res))
			if res.Success {
				return nil
			}
		default:
			fmt.Printf("unrecognized command: %s\n", line)
		}
	}
}

// setSelection upserts hunkID's selection in plan by HunkID, so
// repeated include/exclude of the same hunk overwrites rather than
// accumulates duplicate selections.
func setSelection(plan *stagingplan.StagingPlan, hunkID string, mode stagingplan.SelectionMode) {
	for i := range plan.Selections {
		if plan.Selections[i].HunkID == hunkID {
			plan.Selections[i].Mode = mode
			return
		}
	}
	plan.Selections = append(plan.Selections, stagingplan.HunkSelection{HunkID: hunkID, Mode: mode})
}
