package toolchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExe(t *testing.T) {
	require.Equal(t, "llvm-nm.exe", exe("windows", "llvm-nm"))
	require.Equal(t, "llvm-nm", exe("linux", "llvm-nm"))
}

type stubCompiler struct{ info CompilerInfo }

func (s stubCompiler) TargetConfig(context.Context, string) (TargetConfig, error) {
	return TargetConfig{}, nil
}

func (s stubCompiler) Info() CompilerInfo { return s.info }

func TestUsePreferredCompiler(t *testing.T) {
	compilersMutex.Lock()
	savedCompilers, savedNames := compilers, compilersNames
	compilers, compilersNames = map[string]CompilerConstructor{}, nil
	compilersMutex.Unlock()

	t.Cleanup(func() {
		compilersMutex.Lock()
		compilers, compilersNames = savedCompilers, savedNames
		compilersMutex.Unlock()
	})

	_, err := UsePreferredCompiler("rustc")
	require.Error(t, err, "no compilers registered")

	RegisterCompiler("rustc", func(p string) (Compiler, error) {
		return stubCompiler{CompilerInfo{Name: "rustc", Path: p}}, nil
	})
	RegisterCompiler("mrustc", func(p string) (Compiler, error) {
		return stubCompiler{CompilerInfo{Name: "mrustc", Path: p}}, nil
	})

	require.Panics(t, func() { RegisterCompiler("rustc", nil) })
	require.Panics(t, func() { RegisterCompiler("a/b", nil) })

	t.Setenv("RUSTC", "")

	c, err := UsePreferredCompiler("")
	require.NoError(t, err)
	require.Equal(t, CompilerInfo{Name: "rustc", Path: "rustc"}, c.Info())

	c, err = UsePreferredCompiler("/opt/bin/sccache-wrapper")
	require.NoError(t, err)
	require.Equal(t, CompilerInfo{Name: "rustc", Path: "/opt/bin/sccache-wrapper"}, c.Info())

	t.Setenv("RUSTC", "/usr/local/bin/rustc")
	c, err = UsePreferredCompiler("")
	require.NoError(t, err)
	require.Equal(t, "/usr/local/bin/rustc", c.Info().Path)

	c, err = NewCompiler("mrustc")
	require.NoError(t, err)
	require.Equal(t, "mrustc", c.Info().Name)

	_, err = NewCompiler("gccrs")
	require.Error(t, err)
}
