package binutils

import (
	"context"
	"os/exec"
	"path/filepath"

	"github.com/kballard/go-shellquote"
)

// Invocation describes one run of a tool.
type Invocation struct {
	// Path of the tool's executable.
	Path string
	// Args passed to the tool, in order.
	Args []string
	// Dir is the working directory of the tool. Empty means the current directory.
	Dir string
}

// Invocation assembles the run of tool against the artifact at the given path. An empty
// artifact path means the tool runs without one. The extra arguments are appended verbatim.
//
// Tools that print a report about the artifact run in the artifact's directory and receive
// only its file name, which keeps the names they print short. Tools that read or rewrite the
// artifact as data receive the full path.
func (c *Context) Invocation(tool Tool, artifact string, args []string) Invocation {
	inv := Invocation{Path: filepath.Join(c.bindir, tool.Exe())}

	if tool == Objdump {
		inv.Args = append(inv.Args, "--arch-name", c.cfg.ArchName(c.target.Name))
	}

	if artifact != "" {
		if toolInfos[tool].report {
			inv.Dir = filepath.Dir(artifact)
			inv.Args = append(inv.Args, filepath.Base(artifact))
		} else {
			inv.Args = append(inv.Args, artifact)
		}
	}

	inv.Args = append(inv.Args, args...)

	return inv
}

// Command returns the command that performs the invocation.
func (i Invocation) Command(ctx context.Context) *exec.Cmd {
	cmd := execCommandContext(ctx, i.Path, i.Args...)
	cmd.Dir = i.Dir
	return cmd
}

// String renders the invocation as a shell command line.
func (i Invocation) String() string {
	s := shellquote.Join(append([]string{i.Path}, i.Args...)...)
	if i.Dir != "" {
		s = "cd " + shellquote.Join(i.Dir) + " && " + s
	}
	return s
}
