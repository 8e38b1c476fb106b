package cargo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFiles creates the given files, relative to root, with the given contents.
func writeFiles(tb testing.TB, root string, files map[string]string) {
	tb.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(tb, os.WriteFile(path, []byte(content), 0o644))
	}
}

func touch(tb testing.TB, path string, modTime time.Time) {
	tb.Helper()

	require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(tb, os.WriteFile(path, nil, 0o755))
	require.NoError(tb, os.Chtimes(path, modTime, modTime))
}
