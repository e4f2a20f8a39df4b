package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defaultIgnorePatterns keeps local state and secrets out of version control.
var defaultIgnorePatterns = []string{
	".solid/",
	"node_modules/",
	"vendor/",
	".env",
}

// EnsureGitignore writes a .gitignore into dir when there is none. An
// existing file is left untouched. It reports whether a file was created.
func EnsureGitignore(dir string) (bool, error) {
	gitignorePath := filepath.Join(dir, ".gitignore")

	_, err := os.Stat(gitignorePath)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("error checking .gitignore: %w", err)
	}

	content := "# solid\n" + strings.Join(defaultIgnorePatterns, "\n") + "\n"
	if err := WriteFileAtomic(gitignorePath, []byte(content), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
