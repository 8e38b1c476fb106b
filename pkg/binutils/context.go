package binutils

import (
	"context"

	"github.com/tmaxmax/binutils/pkg/toolchain"
)

// Context is the execution context of one tool run. It is read-only once created.
type Context struct {
	bindir      string
	buildTarget string
	cfg         toolchain.TargetConfig
	target      toolchain.Triple
}

// NewContext locates the LLVM tools in the compiler's sysroot and resolves the compilation
// target from the explicit target flag, the project's configured build target and the
// compiler's host, in this order of precedence. Empty strings mean the flag or the
// configured target are absent.
func NewContext(ctx context.Context, compiler toolchain.Compiler, targetFlag, buildTarget string) (*Context, error) {
	info := compiler.Info()

	bindir, err := toolchain.FindBinDir(info.Sysroot)
	if err != nil {
		return nil, err
	}

	target := toolchain.ResolveTriple(targetFlag, buildTarget, info.Host)

	cfg, err := compiler.TargetConfig(ctx, target.Name)
	if err != nil {
		return nil, err
	}

	return &Context{
		bindir:      bindir,
		buildTarget: buildTarget,
		cfg:         cfg,
		target:      target,
	}, nil
}

// BinDir is the directory within the sysroot where the LLVM tools reside.
func (c *Context) BinDir() string {
	return c.bindir
}

// BuildTarget is the `[build] target` configured for the project, if any.
func (c *Context) BuildTarget() string {
	return c.buildTarget
}

// TargetConfig holds the architecture facts of the compilation target.
func (c *Context) TargetConfig() toolchain.TargetConfig {
	return c.cfg
}

// Target is the effective compilation target.
func (c *Context) Target() toolchain.Triple {
	return c.target
}
