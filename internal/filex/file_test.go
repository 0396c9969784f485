package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpand_HomePrefix(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := Expand("~/sitegen/session.db")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "sitegen", "session.db"), got)
}

func TestExpand_RelativeBecomesAbsolute(t *testing.T) {
	got, err := Expand("out")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(got), "want absolute path, got %q", got)
}

func TestEnsureDir_CreatesNestedDirectories(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "a", "b", "c")

	got, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, dir, got)

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	// idempotent
	_, err = EnsureDir(dir)
	require.NoError(t, err)
}

func TestEnsureDir_FailsWhenParentIsFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("path semantics differ on windows")
	}
	base := t.TempDir()
	file := filepath.Join(base, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := EnsureDir(filepath.Join(file, "sub"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "mkdir")
}

func TestWriteFileAtomic_WritesAndOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.html")

	require.NoError(t, WriteFileAtomic(path, []byte("<p>one</p>"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("<p>two</p>"), 0o644))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "<p>two</p>", string(b))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "site.html"), []byte("x"), 0o644)
	require.Error(t, err)
}
