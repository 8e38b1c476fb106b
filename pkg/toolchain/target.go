package toolchain

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// TripleSource tells where the effective target triple comes from.
type TripleSource int

const (
	// TripleFromHost means no target was configured and the compiler's host triple is used.
	TripleFromHost TripleSource = iota
	// TripleFromProject means the triple comes from the project's `[build] target` setting.
	TripleFromProject
	// TripleFromFlag means the triple was given explicitly on the command line.
	TripleFromFlag
)

func (s TripleSource) String() string {
	switch s {
	case TripleFromProject:
		return "project"
	case TripleFromFlag:
		return "flag"
	default:
		return "host"
	}
}

// Triple is the effective compilation target together with its origin.
type Triple struct {
	Name   string
	Source TripleSource
}

// ResolveTriple picks the effective target triple. An explicit flag takes precedence
// over the project configured build target, which takes precedence over the host triple.
// Empty strings mean the source is absent.
func ResolveTriple(flag, project, host string) Triple {
	switch {
	case flag != "":
		return Triple{Name: flag, Source: TripleFromFlag}
	case project != "":
		return Triple{Name: project, Source: TripleFromProject}
	default:
		return Triple{Name: host, Source: TripleFromHost}
	}
}

// Explicit reports whether the triple was configured rather than defaulted to the host.
// Builds for an explicit triple place their output under a directory named after it.
func (t Triple) Explicit() bool {
	return t.Source != TripleFromHost
}

// Dir returns the name of the target directory segment for the triple. Custom target
// specifications given as paths to JSON files use the file's stem.
func (t Triple) Dir() string {
	if strings.HasSuffix(t.Name, ".json") {
		return strings.TrimSuffix(filepath.Base(t.Name), ".json")
	}

	return t.Name
}

func (t Triple) String() string {
	return t.Name
}

// Endian is the byte order of a compilation target.
type Endian int

const (
	LittleEndian Endian = iota
	BigEndian
)

func (e Endian) String() string {
	if e == BigEndian {
		return "big"
	}

	return "little"
}

// TargetConfig holds the architecture facts of a compilation target.
type TargetConfig struct {
	Arch         string
	PointerWidth int
	Endian       Endian
}

// ParseTargetConfig parses the `key="value"` lines printed by a compiler's cfg query for
// the given triple. The architecture must be present; the pointer width and endianness
// default to 64 and little when absent.
func ParseTargetConfig(triple string, cfg []byte) (TargetConfig, error) {
	c := TargetConfig{PointerWidth: 64}

	s := bufio.NewScanner(bytes.NewReader(cfg))
	for s.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(s.Text()), "=")
		if !ok {
			continue
		}

		value, err := strconv.Unquote(value)
		if err != nil {
			return TargetConfig{}, fmt.Errorf("toolchain: invalid cfg line %q for target %q", s.Text(), triple)
		}

		switch key {
		case "target_arch":
			c.Arch = value
		case "target_pointer_width":
			width, err := strconv.Atoi(value)
			if err != nil {
				return TargetConfig{}, fmt.Errorf("toolchain: invalid pointer width %q for target %q", value, triple)
			}
			c.PointerWidth = width
		case "target_endian":
			switch value {
			case "little":
				c.Endian = LittleEndian
			case "big":
				c.Endian = BigEndian
			default:
				return TargetConfig{}, fmt.Errorf("toolchain: invalid endianness %q for target %q", value, triple)
			}
		}
	}

	if c.Arch == "" {
		return TargetConfig{}, fmt.Errorf("toolchain: no architecture reported for target %q", triple)
	}

	return c, nil
}

// ArchName returns the architecture name understood by llvm-objdump's --arch-name flag
// for the given target.
func (c TargetConfig) ArchName(triple string) string {
	if strings.HasPrefix(triple, "thumb") {
		return "thumb"
	}

	big := c.Endian == BigEndian

	switch c.Arch {
	case "x86_64":
		return "x86-64"
	case "aarch64":
		if big {
			return "aarch64_be"
		}
	case "arm":
		if big {
			return "armeb"
		}
	case "mips":
		if !big {
			return "mipsel"
		}
	case "mips64":
		if !big {
			return "mips64el"
		}
	case "powerpc":
		return "ppc32"
	case "powerpc64":
		if big {
			return "ppc64"
		}
		return "ppc64le"
	}

	return c.Arch
}
