package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/meysamhadeli/solid/apperr"
	"github.com/meysamhadeli/solid/manifest"
)

// projectDir resolves --dir against the working directory.
func projectDir(cwd string, dir string) string {
	if dir == "" {
		return cwd
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(cwd, dir)
}

// loadProjectManifest loads the manifest of a project that must have been
// pulled before.
func loadProjectManifest(dir string) (*manifest.Manifest, error) {
	m, err := manifest.Load(dir)
	if errors.Is(err, apperr.ErrManifestNotFound) {
		return nil, fmt.Errorf("%w: %s", apperr.ErrMissingManifest, manifest.Path(dir))
	}
	return m, err
}
