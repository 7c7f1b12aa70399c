package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	// second call on an existing directory is a no-op
	require.NoError(t, EnsureDir(dir))
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`[1]`)))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `[1]`, string(b))

	// overwrite replaces content wholesale
	require.NoError(t, WriteFileAtomic(path, []byte(`[1,2]`)))
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `[1,2]`, string(b))

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
