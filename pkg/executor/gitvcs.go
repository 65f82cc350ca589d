package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// GitVCS is the exec.Command-based VCS adapter: a thin wrapper over the
// git binary run as a subprocess against a fixed working directory.
// Patch text is always fed over stdin, never as an argument, so
// multi-megabyte patches and content containing shell metacharacters
// are never at risk of argv quoting hazards.
type GitVCS struct {
	Dir string
}

func NewGitVCS(dir string) *GitVCS {
	return &GitVCS{Dir: dir}
}

func (g *GitVCS) run(ctx context.Context, stdin string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	runErr := cmd.Run()
	return outBuf.String(), errBuf.String(), runErr
}

func (g *GitVCS) GetUnstagedDiff(ctx context.Context) (string, error) {
	out, stderr, err := g.run(ctx, "", "diff")
	if err != nil {
		return "", fmt.Errorf("git diff: %w (%s)", err, stderr)
	}
	return out, nil
}

func (g *GitVCS) GetStagedDiff(ctx context.Context) (string, error) {
	out, stderr, err := g.run(ctx, "", "diff", "--cached")
	if err != nil {
		return "", fmt.Errorf("git diff --cached: %w (%s)", err, stderr)
	}
	return out, nil
}

func (g *GitVCS) GetDiffWithContext(ctx context.Context, n int) (string, error) {
	out, stderr, err := g.run(ctx, "", "diff", "-U"+strconv.Itoa(n))
	if err != nil {
		return "", fmt.Errorf("git diff -U%d: %w (%s)", n, err, stderr)
	}
	return out, nil
}

func (g *GitVCS) CheckPatch(ctx context.Context, patchText string) (PatchCheckResult, error) {
	_, stderr, err := g.run(ctx, patchText, "apply", "--cached", "--check", "-")
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return PatchCheckResult{Applies: false, ToolError: strings.TrimSpace(stderr)}, nil
		}
		return PatchCheckResult{}, fmt.Errorf("git apply --check: %w", err)
	}
	return PatchCheckResult{Applies: true}, nil
}

func (g *GitVCS) ApplyPatchToIndex(ctx context.Context, patchText string) (ApplyResult, error) {
	return g.applyCached(ctx, patchText, false, false)
}

func (g *GitVCS) ApplyPatchWithRecount(ctx context.Context, patchText string) (ApplyResult, error) {
	return g.applyCached(ctx, patchText, true, false)
}

func (g *GitVCS) ReversePatch(ctx context.Context, patchText string) (ApplyResult, error) {
	return g.applyCached(ctx, patchText, false, true)
}

func (g *GitVCS) applyCached(ctx context.Context, patchText string, recount, reverse bool) (ApplyResult, error) {
	args := []string{"apply", "--cached"}
	if recount {
		args = append(args, "--recount")
	}
	if reverse {
		args = append(args, "--reverse")
	}
	args = append(args, "-")

	_, stderr, err := g.run(ctx, patchText, args...)
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return ApplyResult{Success: false, ToolError: strings.TrimSpace(stderr)}, nil
		}
		return ApplyResult{}, fmt.Errorf("git apply --cached: %w", err)
	}
	return ApplyResult{Success: true}, nil
}

func (g *GitVCS) ResetStaging(ctx context.Context) error {
	_, stderr, err := g.run(ctx, "", "reset")
	if err != nil {
		return fmt.Errorf("git reset: %w (%s)", err, stderr)
	}
	return nil
}

func (g *GitVCS) GetStagedFiles(ctx context.Context) ([]string, error) {
	out, stderr, err := g.run(ctx, "", "diff", "--cached", "--name-only")
	if err != nil {
		return nil, fmt.Errorf("git diff --cached --name-only: %w (%s)", err, stderr)
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

func (g *GitVCS) StageFile(ctx context.Context, path string) error {
	_, stderr, err := g.run(ctx, "", "add", "--", path)
	if err != nil {
		return fmt.Errorf("git add %s: %w (%s)", path, err, stderr)
	}
	return nil
}

func (g *GitVCS) Commit(ctx context.Context, message string) (CommitResult, error) {
	_, stderr, err := g.run(ctx, "", "commit", "-m", message)
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return CommitResult{Success: false, ToolError: strings.TrimSpace(stderr)}, nil
		}
		return CommitResult{}, fmt.Errorf("git commit: %w", err)
	}
	hashOut, hashStderr, hashErr := g.run(ctx, "", "rev-parse", "HEAD")
	if hashErr != nil {
		return CommitResult{}, fmt.Errorf("git rev-parse HEAD: %w (%s)", hashErr, hashStderr)
	}
	return CommitResult{Success: true, Hash: strings.TrimSpace(hashOut)}, nil
}

func (g *GitVCS) GetStatus(ctx context.Context) (string, error) {
	out, stderr, err := g.run(ctx, "", "status", "--porcelain")
	if err != nil {
		return "", fmt.Errorf("git status --porcelain: %w (%s)", err, stderr)
	}
	return out, nil
}
