// Package filex holds filesystem helpers for the client: home-relative path
// expansion, directory creation and atomic file writes.
package filex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Atrox/homedir"
)

// Expand resolves a leading "~" to the user's home directory and makes the
// result absolute.
func Expand(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", expanded, err)
	}
	return abs, nil
}

// EnsureDir expands dir and creates it (with parents) if missing.
func EnsureDir(dir string) (string, error) {
	path, err := Expand(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(path, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", path, err)
	}
	return path, nil
}

// WriteFileAtomic writes data next to path under a temporary name and renames
// it into place, so readers never observe a half-written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".sitegen-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := f.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}

	return os.Rename(tmpPath, path)
}
