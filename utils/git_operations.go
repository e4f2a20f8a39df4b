package utils

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// GitOperations answers questions about the git checkout a project lives in.
type GitOperations struct {
	workingDir string
}

// NewGitOperations creates a new GitOperations instance
func NewGitOperations(workingDir string) *GitOperations {
	return &GitOperations{workingDir: workingDir}
}

// IsGitRepo reports whether the working directory is inside a git checkout.
// A missing git binary counts as no repository.
func (g *GitOperations) IsGitRepo(ctx context.Context) bool {
	if _, err := exec.LookPath("git"); err != nil {
		return false
	}
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--git-dir")
	cmd.Dir = g.workingDir
	return cmd.Run() == nil
}

// UncommittedFiles lists files under paths with uncommitted changes, as
// reported by git status --porcelain.
func (g *GitOperations) UncommittedFiles(ctx context.Context, paths ...string) ([]string, error) {
	args := append([]string{"status", "--porcelain", "--untracked-files=no", "--"}, paths...)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.workingDir
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get git status: %w", err)
	}

	var files []string
	for _, line := range strings.Split(string(output), "\n") {
		if len(line) > 3 {
			files = append(files, strings.TrimSpace(line[3:]))
		}
	}
	return files, nil
}
