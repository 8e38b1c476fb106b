/*
Package rustc provides a Compiler implementation that uses the installed
Rust compiler on the host system.

It registers the rustc compiler.
*/
package rustc

import (
	"os/exec"

	"github.com/tmaxmax/binutils/pkg/toolchain"
)

const compilerName = "rustc"

var execCommandContext = exec.CommandContext

func init() {
	toolchain.RegisterCompiler(compilerName, func(pathOrExecutableName string) (toolchain.Compiler, error) {
		return NewCompiler(pathOrExecutableName)
	})
}
