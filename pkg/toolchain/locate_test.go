package toolchain_test

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/tmaxmax/binutils/pkg/toolchain"
)

func TestFindBinDirFS(t *testing.T) {
	marker := toolchain.Exe(toolchain.MarkerTool)

	type test struct {
		name      string
		fsys      fstest.MapFS
		expect    string
		expectErr error
	}

	tests := []test{
		{
			name: "Found",
			fsys: fstest.MapFS{
				"lib/rustlib/x86_64-unknown-linux-gnu/lib/libstd.rlib": {},
				"lib/rustlib/x86_64-unknown-linux-gnu/bin/" + marker:   {Mode: 0o755},
				"lib/rustlib/x86_64-unknown-linux-gnu/bin/llvm-nm":     {Mode: 0o755},
			},
			expect: filepath.Join("/sysroot", "lib", "rustlib", "x86_64-unknown-linux-gnu", "bin"),
		},
		{
			name: "DirectoryNamedLikeMarker",
			fsys: fstest.MapFS{
				"a/" + marker + "/readme": {},
				"b/bin/" + marker:         {Mode: 0o755},
			},
			expect: filepath.Join("/sysroot", "b", "bin"),
		},
		{
			name: "Missing",
			fsys: fstest.MapFS{
				"lib/rustlib/x86_64-unknown-linux-gnu/lib/libstd.rlib": {},
				"bin/rustc": {Mode: 0o755},
			},
			expectErr: toolchain.ErrComponentMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := toolchain.FindBinDirFS(tt.fsys, "/sysroot")
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				require.Contains(t, err.Error(), "rustup component add llvm-tools-preview")
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.expect, dir)
			}
		})
	}
}
