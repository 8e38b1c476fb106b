package cargo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tmaxmax/binutils/pkg/toolchain"
)

// An Artifact selects one compiled output of a package. It is one of Bin, Example or Lib.
type Artifact interface {
	// BuildArgs returns the cargo build flags that select this artifact.
	BuildArgs() []string
	// String describes the artifact for messages.
	String() string

	// fileNames returns the candidate paths of the artifact relative to a profile directory.
	fileNames(m *Manifest) ([]string, error)
}

// Bin is a binary target.
type Bin struct{ Name string }

// Example is an example target.
type Example struct{ Name string }

// Lib is the package's library target.
type Lib struct{}

func (b Bin) BuildArgs() []string     { return []string{"--bin", b.Name} }
func (e Example) BuildArgs() []string { return []string{"--example", e.Name} }
func (Lib) BuildArgs() []string       { return []string{"--lib"} }

func (b Bin) String() string     { return fmt.Sprintf("bin %q", b.Name) }
func (e Example) String() string { return fmt.Sprintf("example %q", e.Name) }
func (Lib) String() string       { return "lib" }

func (b Bin) fileNames(*Manifest) ([]string, error) {
	return []string{b.Name, b.Name + ".exe"}, nil
}

func (e Example) fileNames(*Manifest) ([]string, error) {
	name := filepath.Join("examples", e.Name)
	return []string{name, name + ".exe"}, nil
}

func (Lib) fileNames(m *Manifest) ([]string, error) {
	name, err := m.LibName()
	if err != nil {
		return nil, err
	}

	return []string{
		"lib" + name + ".rlib",
		"lib" + name + ".a",
		"lib" + name + ".so",
		"lib" + name + ".dylib",
		name + ".dll",
		name + ".lib",
	}, nil
}

// NewArtifact builds the artifact selected by the --bin, --example and --lib flags.
// Empty names and a false lib mean the flag was not given. It returns a nil Artifact if no
// flag was given, and ErrInvalidRequest if more than one was.
func NewArtifact(bin, example string, lib bool) (Artifact, error) {
	var selected []Artifact

	if bin != "" {
		selected = append(selected, Bin{Name: bin})
	}
	if example != "" {
		selected = append(selected, Example{Name: example})
	}
	if lib {
		selected = append(selected, Lib{})
	}

	switch len(selected) {
	case 0:
		return nil, nil
	case 1:
		return selected[0], nil
	default:
		return nil, fmt.Errorf("cargo: %w: only one of --bin, --example or --lib may be specified", ErrInvalidRequest)
	}
}

// Resolve returns the path of the file the build produced for the artifact. Among several
// matching files the most recently modified one is chosen; if the most recent ones share a
// modification time ErrAmbiguousArtifact is returned. ErrArtifactNotFound is returned if no
// file matches.
func (p *Project) Resolve(a Artifact, triple toolchain.Triple, release bool) (string, error) {
	dir := p.ProfileDir(triple, release)

	names, err := a.fileNames(p.Manifest)
	if err != nil {
		return "", err
	}

	type candidate struct {
		path    string
		modTime time.Time
	}

	var candidates []candidate
	for _, name := range names {
		path := filepath.Join(dir, name)

		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("cargo: %w", err)
		}
		if info.IsDir() {
			continue
		}

		candidates = append(candidates, candidate{path: path, modTime: info.ModTime()})
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("cargo: %w: no file named %s in %s, check that the package has %s",
			ErrArtifactNotFound, strings.Join(names, " or "), dir, a)
	}

	newest := []candidate{candidates[0]}
	for _, c := range candidates[1:] {
		switch {
		case c.modTime.After(newest[0].modTime):
			newest = []candidate{c}
		case c.modTime.Equal(newest[0].modTime):
			newest = append(newest, c)
		}
	}

	if len(newest) > 1 {
		paths := make([]string, len(newest))
		for i, c := range newest {
			paths[i] = c.path
		}
		return "", fmt.Errorf("cargo: %w: %s matches %s, which were all modified at the same time",
			ErrAmbiguousArtifact, a, strings.Join(paths, ", "))
	}

	return newest[0].path, nil
}
