package cargo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the `.cargo/config` settings used to locate build outputs.
type Config struct {
	// Dir is the directory containing the `.cargo` directory the configuration was read from.
	Dir string `toml:"-"`

	Build struct {
		// Target is either a single triple or a list of triples.
		Target    interface{} `toml:"target"`
		TargetDir string      `toml:"target-dir"`
	} `toml:"build"`
}

// Target returns the configured build target, or an empty string if none is configured.
// Multiple configured targets cannot name a single artifact directory and are rejected.
func (c *Config) Target() (string, error) {
	if c == nil {
		return "", nil
	}

	switch t := c.Build.Target.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case []interface{}:
		if len(t) == 1 {
			if s, ok := t[0].(string); ok {
				return s, nil
			}
		}
		if len(t) > 1 {
			return "", fmt.Errorf("cargo: %w: %d build targets configured in %s, pass --target to select one", ErrInvalidRequest, len(t), c.Dir)
		}
	}

	return "", fmt.Errorf("cargo: invalid build.target value %v in %s", c.Build.Target, c.Dir)
}

// TargetDir returns the configured target directory made absolute, or an empty string.
func (c *Config) TargetDir() string {
	if c == nil || c.Build.TargetDir == "" {
		return ""
	}

	if filepath.IsAbs(c.Build.TargetDir) {
		return c.Build.TargetDir
	}

	return filepath.Join(c.Dir, c.Build.TargetDir)
}

var configNames = []string{"config.toml", "config"}

// LoadConfig reads the nearest `.cargo/config.toml` or `.cargo/config` found in dir or
// one of its ancestors. It returns nil and no error if there is none.
func LoadConfig(dir string) (*Config, error) {
	for d := dir; ; {
		for _, name := range configNames {
			path := filepath.Join(d, ".cargo", name)

			c := &Config{Dir: d}
			if _, err := toml.DecodeFile(path, c); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return nil, fmt.Errorf("cargo: failed to read config %s: %w", path, err)
			}

			return c, nil
		}

		parent := filepath.Dir(d)
		if parent == d {
			return nil, nil
		}
		d = parent
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
