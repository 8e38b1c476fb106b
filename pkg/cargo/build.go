package cargo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// BuildOptions are the parameters that determine where a build places its output.
type BuildOptions struct {
	// Target is the explicitly requested target triple. The configured `[build] target`
	// is not passed, as cargo reads it on its own.
	Target   string
	Artifact Artifact
	Release  bool
}

// Args returns the cargo command line arguments for the build.
func (o BuildOptions) Args() []string {
	args := []string{"build"}

	if o.Target != "" {
		args = append(args, "--target", o.Target)
	}
	if o.Artifact != nil {
		args = append(args, o.Artifact.BuildArgs()...)
	}
	if o.Release {
		args = append(args, "--release")
	}

	return args
}

// BuildError reports a build that exited with a nonzero status.
type BuildError struct {
	Code int
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("cargo: build failed with exit code %d", e.Code)
}

// A Builder runs cargo builds.
type Builder struct {
	// Cargo is the cargo executable. Defaults to "cargo".
	Cargo string
	// Dir is the directory the build runs in.
	Dir string
	// Stdout and Stderr receive the build's output.
	Stdout, Stderr io.Writer
	// Logger is used to log the build command. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Build runs the build and waits for it to finish. A build that exits with a nonzero status
// results in a *BuildError carrying the status.
func (b *Builder) Build(ctx context.Context, opts BuildOptions) error {
	cargo := b.Cargo
	if cargo == "" {
		cargo = "cargo"
	}

	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}

	args := opts.Args()
	logger.Debug("building", "command", shellquote.Join(append([]string{cargo}, args...)...))

	cmd := execCommandContext(ctx, cargo, args...)
	cmd.Dir = b.Dir
	cmd.Stdout = b.Stdout
	cmd.Stderr = b.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				code = 1
			}
			return &BuildError{Code: code}
		}

		return fmt.Errorf("cargo: failed to run build: %w", err)
	}

	return nil
}
