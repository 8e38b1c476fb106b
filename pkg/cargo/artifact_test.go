package cargo_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tmaxmax/binutils/pkg/cargo"
	"github.com/tmaxmax/binutils/pkg/toolchain"
)

func TestNewArtifact(t *testing.T) {
	type test struct {
		name      string
		bin       string
		example   string
		lib       bool
		expect    cargo.Artifact
		expectErr bool
	}

	tests := []test{
		{name: "None"},
		{name: "Bin", bin: "app", expect: cargo.Bin{Name: "app"}},
		{name: "Example", example: "demo", expect: cargo.Example{Name: "demo"}},
		{name: "Lib", lib: true, expect: cargo.Lib{}},
		{name: "BinAndExample", bin: "app", example: "demo", expectErr: true},
		{name: "BinAndLib", bin: "app", lib: true, expectErr: true},
		{name: "ExampleAndLib", example: "demo", lib: true, expectErr: true},
		{name: "All", bin: "app", example: "demo", lib: true, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := cargo.NewArtifact(tt.bin, tt.example, tt.lib)
			if tt.expectErr {
				require.ErrorIs(t, err, cargo.ErrInvalidRequest)
				require.Nil(t, a)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.expect, a)
			}
		})
	}
}

func TestArtifact_BuildArgs(t *testing.T) {
	opts := cargo.BuildOptions{Target: "thumbv7m-none-eabi", Artifact: cargo.Example{Name: "blinky"}, Release: true}
	require.Equal(t, []string{"build", "--target", "thumbv7m-none-eabi", "--example", "blinky", "--release"}, opts.Args())

	opts = cargo.BuildOptions{Artifact: cargo.Lib{}}
	require.Equal(t, []string{"build", "--lib"}, opts.Args())

	opts = cargo.BuildOptions{Artifact: cargo.Bin{Name: "app"}}
	require.Equal(t, []string{"build", "--bin", "app"}, opts.Args())
}

func TestProject_Resolve(t *testing.T) {
	const host = "x86_64-unknown-linux-gnu"

	earlier := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Minute)

	type test struct {
		name      string
		files     map[string]time.Time
		artifact  cargo.Artifact
		triple    toolchain.Triple
		release   bool
		expect    string
		expectErr error
	}

	tests := []test{
		{
			name:     "ReleaseBinary",
			files:    map[string]time.Time{"target/release/app": earlier, "target/release/app.d": later},
			artifact: cargo.Bin{Name: "app"},
			triple:   toolchain.ResolveTriple("", "", host),
			release:  true,
			expect:   "target/release/app",
		},
		{
			name:     "WindowsBinary",
			files:    map[string]time.Time{"target/debug/app.exe": earlier},
			artifact: cargo.Bin{Name: "app"},
			triple:   toolchain.ResolveTriple("", "", host),
			expect:   "target/debug/app.exe",
		},
		{
			name:     "ExampleForTarget",
			files:    map[string]time.Time{"target/thumbv7m-none-eabi/debug/examples/blinky": earlier},
			artifact: cargo.Example{Name: "blinky"},
			triple:   toolchain.ResolveTriple("", "thumbv7m-none-eabi", host),
			expect:   "target/thumbv7m-none-eabi/debug/examples/blinky",
		},
		{
			name: "MostRecentLibrary",
			files: map[string]time.Time{
				"target/debug/libmy_lib.rlib": earlier,
				"target/debug/libmy_lib.so":   later,
			},
			artifact: cargo.Lib{},
			triple:   toolchain.ResolveTriple("", "", host),
			expect:   "target/debug/libmy_lib.so",
		},
		{
			name: "AmbiguousLibrary",
			files: map[string]time.Time{
				"target/debug/libmy_lib.rlib": later,
				"target/debug/libmy_lib.a":    later,
				"target/debug/libmy_lib.so":   earlier,
			},
			artifact:  cargo.Lib{},
			triple:    toolchain.ResolveTriple("", "", host),
			expectErr: cargo.ErrAmbiguousArtifact,
		},
		{
			name:      "WrongProfile",
			files:     map[string]time.Time{"target/debug/app": earlier},
			artifact:  cargo.Bin{Name: "app"},
			triple:    toolchain.ResolveTriple("", "", host),
			release:   true,
			expectErr: cargo.ErrArtifactNotFound,
		},
		{
			name:      "HostDirectoryForExplicitTarget",
			files:     map[string]time.Time{"target/debug/app": earlier},
			artifact:  cargo.Bin{Name: "app"},
			triple:    toolchain.ResolveTriple(host, "", host),
			expectErr: cargo.ErrArtifactNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CARGO_TARGET_DIR", "")

			root := t.TempDir()
			writeFiles(t, root, map[string]string{"Cargo.toml": "[package]\nname = \"my-lib\"\n"})
			for name, modTime := range tt.files {
				touch(t, filepath.Join(root, filepath.FromSlash(name)), modTime)
			}

			p, err := cargo.FindProject(root)
			require.NoError(t, err)

			path, err := p.Resolve(tt.artifact, tt.triple, tt.release)
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				require.Contains(t, err.Error(), filepath.Join(root, "target"))
			} else {
				require.NoError(t, err)
				require.Equal(t, filepath.Join(root, filepath.FromSlash(tt.expect)), path)
			}
		})
	}
}
