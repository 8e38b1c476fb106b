package cargo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const manifestName = "Cargo.toml"

// Manifest is the subset of a `Cargo.toml` file needed to name a package's targets.
type Manifest struct {
	Package *struct {
		Name     string `toml:"name"`
		Autobins *bool  `toml:"autobins"`
	} `toml:"package"`
	Lib *struct {
		Name string `toml:"name"`
	} `toml:"lib"`
	Bins []struct {
		Name string `toml:"name"`
	} `toml:"bin"`

	// Workspace reports whether the manifest has a `[workspace]` table.
	Workspace bool `toml:"-"`
}

// ReadManifest parses the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	m := &Manifest{}

	md, err := toml.DecodeFile(path, m)
	if err != nil {
		return nil, fmt.Errorf("cargo: failed to read manifest %s: %w", path, err)
	}

	m.Workspace = md.IsDefined("workspace")

	return m, nil
}

// Targets enumerates the library and binary targets of the package whose manifest
// lives in dir, following Cargo's target auto-discovery for binaries.
func (m *Manifest) Targets(dir string) []Artifact {
	if m.Package == nil {
		return nil
	}

	var targets []Artifact

	if m.Lib != nil || fileExists(filepath.Join(dir, "src", "lib.rs")) {
		targets = append(targets, Lib{})
	}

	seen := map[string]bool{}
	var bins []string
	addBin := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			bins = append(bins, name)
		}
	}

	for _, b := range m.Bins {
		addBin(b.Name)
	}

	if m.Package.Autobins == nil || *m.Package.Autobins {
		if fileExists(filepath.Join(dir, "src", "main.rs")) {
			addBin(m.Package.Name)
		}

		entries, _ := os.ReadDir(filepath.Join(dir, "src", "bin"))
		for _, e := range entries {
			switch {
			case e.IsDir() && fileExists(filepath.Join(dir, "src", "bin", e.Name(), "main.rs")):
				addBin(e.Name())
			case !e.IsDir() && strings.HasSuffix(e.Name(), ".rs"):
				addBin(strings.TrimSuffix(e.Name(), ".rs"))
			}
		}
	}

	sort.Strings(bins)
	for _, b := range bins {
		targets = append(targets, Bin{Name: b})
	}

	return targets
}

// LibName returns the crate name of the package's library.
func (m *Manifest) LibName() (string, error) {
	if m.Lib != nil && m.Lib.Name != "" {
		return m.Lib.Name, nil
	}

	if m.Package == nil {
		return "", fmt.Errorf("cargo: %w: virtual manifest has no library, run from a package directory", ErrInvalidRequest)
	}

	return strings.ReplaceAll(m.Package.Name, "-", "_"), nil
}
