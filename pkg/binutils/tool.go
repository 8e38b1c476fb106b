/*
Package binutils proxies the LLVM binary-analysis tools shipped with the Rust
toolchain. It builds the requested artifact of a Cargo project, locates the
file the build produced, runs the tool against it and postprocesses the tool's
output.
*/
package binutils

import (
	"github.com/tmaxmax/binutils/pkg/postprocess"
	"github.com/tmaxmax/binutils/pkg/toolchain"
)

// Tool is one of the proxied LLVM tools.
type Tool int

const (
	Nm Tool = iota
	Objcopy
	Objdump
	Profdata
	Size
	Strip
)

// Tools lists every proxied tool.
var Tools = []Tool{Nm, Objcopy, Objdump, Profdata, Size, Strip}

type toolInfo struct {
	name       string
	needsBuild bool
	// report tools print a human-read report that mentions the artifact by name.
	report    bool
	transform postprocess.Transform
}

var toolInfos = [...]toolInfo{
	Nm:       {name: "nm", needsBuild: true, report: true, transform: postprocess.Demangle},
	Objcopy:  {name: "objcopy", needsBuild: true, transform: postprocess.Identity},
	Objdump:  {name: "objdump", needsBuild: true, report: true, transform: postprocess.Demangle},
	Profdata: {name: "profdata", transform: postprocess.Identity},
	Size:     {name: "size", needsBuild: true, report: true, transform: postprocess.Size},
	Strip:    {name: "strip", needsBuild: true, transform: postprocess.Identity},
}

// Name returns the short name of the tool, like "nm".
func (t Tool) Name() string {
	return toolInfos[t].name
}

func (t Tool) String() string {
	return t.Name()
}

// Exe returns the tool's executable file name, like "llvm-nm".
func (t Tool) Exe() string {
	return toolchain.Exe("llvm-" + t.Name())
}

// NeedsBuild reports whether the tool operates on a build artifact.
func (t Tool) NeedsBuild() bool {
	return toolInfos[t].needsBuild
}

// Transform returns the postprocessing applied to the tool's standard output.
func (t Tool) Transform() postprocess.Transform {
	return toolInfos[t].transform
}
