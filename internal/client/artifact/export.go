// Package artifact saves generated site markup to the local filesystem.
package artifact

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/common"
	"github.com/dmitrijs2005/sitegen/internal/filex"
)

var ErrNoArtifact = errors.New("nothing generated yet")

// Export writes a's markup to dir/name and returns the absolute path.
// dir is created when missing and may start with "~". An empty name means
// common.DefaultArtifactFileName.
func Export(dir, name string, a *models.Artifact) (string, error) {
	if a == nil || a.HTML == "" {
		return "", ErrNoArtifact
	}
	if name == "" {
		name = common.DefaultArtifactFileName
	}
	if filepath.Base(name) != name {
		return "", fmt.Errorf("export: file name %q must not contain a path", name)
	}
	if dir == "" {
		dir = "."
	}

	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	path := filepath.Join(abs, name)
	if err := filex.WriteFileAtomic(path, []byte(a.HTML), 0o644); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}

// Target splits a user-supplied export argument into directory and file
// name. An argument ending in ".html" or ".htm" names a file; anything else
// is a directory receiving defaultName.
func Target(arg, defaultDir, defaultName string) (dir, name string) {
	if arg == "" {
		return defaultDir, defaultName
	}
	switch filepath.Ext(arg) {
	case ".html", ".htm":
		return filepath.Dir(arg), filepath.Base(arg)
	}
	return arg, defaultName
}
