/*
Package toolchain provides a set of utilities to discover and use an installed
Rust compiler toolchain and the LLVM binary-analysis tools shipped with it.
It abstracts compiler probing under a convenient interface, resolves the
effective compilation target and locates the directory holding the LLVM tools.
*/
package toolchain

import (
	"errors"
	"os"
	"runtime"
	"strings"
)

var (
	// ErrUnavailable is returned when the compiler cannot be executed or does not
	// report the metadata needed to resolve the compilation target.
	ErrUnavailable = errors.New("toolchain unavailable")
	// ErrComponentMissing is returned when the compiler's sysroot does not contain
	// the LLVM tools component.
	ErrComponentMissing = errors.New("`llvm-tools-preview` component is missing or empty. Install it with `rustup component add llvm-tools-preview`")
)

// Exe returns the platform-specific executable file name for the given tool name.
func Exe(name string) string {
	return exe(runtime.GOOS, name)
}

func exe(goos, name string) string {
	if goos == "windows" {
		return name + ".exe"
	}

	return name
}

func isValidImplementationName(name string) bool {
	return name != "" && !strings.ContainsAny(name, string([]rune{os.PathSeparator, os.PathListSeparator}))
}
