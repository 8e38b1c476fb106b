package cargo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmaxmax/binutils/pkg/toolchain"
)

// Project is the Cargo package (and, if any, workspace) containing a working directory.
type Project struct {
	// Dir is the directory of the nearest manifest.
	Dir string
	// Root is the workspace root, or Dir if the package is not part of a workspace.
	Root     string
	Manifest *Manifest
	// Config is the nearest `.cargo/config`, nil if there is none.
	Config *Config
}

// FindProject looks for the nearest `Cargo.toml` in dir or its ancestors, and for an enclosing
// workspace manifest above it.
func FindProject(dir string) (*Project, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cargo: %w", err)
	}

	p := &Project{}

	for d := dir; ; {
		path := filepath.Join(d, manifestName)
		if fileExists(path) {
			m, err := ReadManifest(path)
			if err != nil {
				return nil, err
			}

			if p.Manifest == nil {
				p.Dir, p.Root, p.Manifest = d, d, m
			} else if m.Workspace {
				p.Root = d
			}

			if m.Workspace {
				break
			}
		}

		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}

	if p.Manifest == nil {
		return nil, fmt.Errorf("cargo: could not find `%s` in %s or any parent directory", manifestName, dir)
	}

	if p.Config, err = LoadConfig(dir); err != nil {
		return nil, err
	}

	return p, nil
}

// BuildTarget returns the `[build] target` configured for the project, if any.
func (p *Project) BuildTarget() (string, error) {
	return p.Config.Target()
}

// TargetDir returns the root of the build output directory. CARGO_TARGET_DIR takes
// precedence over `build.target-dir`, which takes precedence over `<workspace root>/target`.
func (p *Project) TargetDir() string {
	if dir := os.Getenv("CARGO_TARGET_DIR"); dir != "" {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(p.Dir, dir)
	}

	if dir := p.Config.TargetDir(); dir != "" {
		return dir
	}

	return filepath.Join(p.Root, "target")
}

// ProfileDir returns the directory holding the outputs of a build for the given target
// and profile: `<target dir>[/<triple>]/{debug,release}`. The triple segment is present only
// for builds with a configured target.
func (p *Project) ProfileDir(triple toolchain.Triple, release bool) string {
	profile := "debug"
	if release {
		profile = "release"
	}

	if triple.Explicit() {
		return filepath.Join(p.TargetDir(), triple.Dir(), profile)
	}

	return filepath.Join(p.TargetDir(), profile)
}

// DefaultArtifact returns the package's sole target. It fails with ErrInvalidRequest if the
// package has no targets or more than one.
func (p *Project) DefaultArtifact() (Artifact, error) {
	targets := p.Manifest.Targets(p.Dir)

	switch len(targets) {
	case 0:
		return nil, fmt.Errorf("cargo: %w: no library or binary targets found in %s", ErrInvalidRequest, p.Dir)
	case 1:
		return targets[0], nil
	default:
		names := make([]string, len(targets))
		for i, t := range targets {
			names[i] = t.String()
		}
		return nil, fmt.Errorf("cargo: %w: package has multiple targets (%s), specify one of --bin, --example or --lib", ErrInvalidRequest, strings.Join(names, ", "))
	}
}
