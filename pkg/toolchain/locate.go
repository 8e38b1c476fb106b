package toolchain

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/tmaxmax/binutils/pkg/traverse"
)

// MarkerTool is the LLVM tool whose presence identifies the tools directory.
const MarkerTool = "llvm-size"

// FindBinDir searches the compiler's sysroot for the directory containing the LLVM tools.
func FindBinDir(sysroot string) (string, error) {
	return FindBinDirFS(os.DirFS(sysroot), sysroot)
}

// FindBinDirFS searches fsys, which must be rooted at sysroot, for the first file named
// like the platform's marker tool executable and returns the directory that contains it,
// joined to sysroot. Unreadable directories are skipped; the whole tree is searched before
// ErrComponentMissing is returned.
func FindBinDirFS(fsys fs.FS, sysroot string) (string, error) {
	marker := Exe(MarkerTool)

	var found string
	traverse.Depth(fsys, ".", func(name string, entry fs.DirEntry) bool {
		if entry.IsDir() || entry.Name() != marker {
			return true
		}

		found = path.Dir(name)
		return false
	}, nil)

	if found == "" {
		return "", fmt.Errorf("toolchain: %w", ErrComponentMissing)
	}

	return filepath.Join(sysroot, filepath.FromSlash(found)), nil
}
