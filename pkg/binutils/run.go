package binutils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/tmaxmax/binutils/pkg/cargo"
	"github.com/tmaxmax/binutils/pkg/toolchain"
)

// ErrSpawn is returned when a tool's executable cannot be started.
var ErrSpawn = errors.New("failed to launch tool")

var execCommandContext = exec.CommandContext

// Options configure a tool run.
type Options struct {
	Tool Tool
	// Target is the explicitly requested target triple.
	Target string
	// Bin, Example and Lib select the artifact to inspect. At most one may be set;
	// if none is, the package's sole target is used.
	Bin     string
	Example string
	Lib     bool
	Release bool
	// Args are passed verbatim to the tool, after the artifact.
	Args []string

	// Dir is the directory the project is looked up from. Defaults to the working directory.
	Dir string
	// Rustc is the compiler executable. See toolchain.UsePreferredCompiler.
	Rustc string
	// Cargo is the cargo executable. Defaults to "cargo".
	Cargo string

	// Stdout receives the postprocessed output of the tool. Stderr receives the standard error
	// of the build and the tool as it is written. They default to os.Stdout and os.Stderr.
	Stdout, Stderr io.Writer
	// Logger logs the commands being run. If nil, slog.Default() is used.
	Logger *slog.Logger
}

func (o *Options) setDefaults() error {
	if o.Dir == "" {
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("binutils: %w", err)
		}
		o.Dir = dir
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	return nil
}

// Run builds the requested artifact if the tool needs one, runs the tool and writes its
// postprocessed output. It returns the exit code of the tool, or of the build if the build
// failed, in which case the tool is not run. Errors are returned for failures that prevent
// the tool from running.
func Run(ctx context.Context, opts Options) (int, error) {
	artifact, err := cargo.NewArtifact(opts.Bin, opts.Example, opts.Lib)
	if err != nil {
		return 0, err
	}
	if artifact != nil && !opts.Tool.NeedsBuild() {
		return 0, fmt.Errorf("binutils: %w: %s does not operate on build artifacts", cargo.ErrInvalidRequest, opts.Tool)
	}

	if err := opts.setDefaults(); err != nil {
		return 0, err
	}

	var (
		project     *cargo.Project
		buildTarget string
	)

	if opts.Tool.NeedsBuild() {
		if project, err = cargo.FindProject(opts.Dir); err != nil {
			return 0, err
		}
		if buildTarget, err = project.BuildTarget(); err != nil {
			return 0, err
		}
	} else {
		config, err := cargo.LoadConfig(opts.Dir)
		if err != nil {
			return 0, err
		}
		if buildTarget, err = config.Target(); err != nil {
			return 0, err
		}
	}

	compiler, err := toolchain.UsePreferredCompiler(opts.Rustc)
	if err != nil {
		return 0, err
	}

	c, err := NewContext(ctx, compiler, opts.Target, buildTarget)
	if err != nil {
		return 0, err
	}

	opts.Logger.Debug("resolved toolchain", "bindir", c.BinDir(), "target", c.Target().Name, "source", c.Target().Source, "build_target", c.BuildTarget())

	var path string
	if opts.Tool.NeedsBuild() {
		if artifact == nil {
			if artifact, err = project.DefaultArtifact(); err != nil {
				return 0, err
			}
		}

		builder := &cargo.Builder{
			Cargo:  opts.Cargo,
			Dir:    opts.Dir,
			Stdout: opts.Stderr,
			Stderr: opts.Stderr,
			Logger: opts.Logger,
		}

		err := builder.Build(ctx, cargo.BuildOptions{Target: opts.Target, Artifact: artifact, Release: opts.Release})
		if err != nil {
			var buildErr *cargo.BuildError
			if errors.As(err, &buildErr) {
				opts.Logger.Debug("build failed", "code", buildErr.Code)
				return buildErr.Code, nil
			}
			return 0, err
		}

		if path, err = project.Resolve(artifact, c.Target(), opts.Release); err != nil {
			return 0, err
		}
	}

	return c.run(ctx, opts, c.Invocation(opts.Tool, path, opts.Args))
}

func (c *Context) run(ctx context.Context, opts Options, inv Invocation) (int, error) {
	opts.Logger.Debug("running tool", "command", inv.String())

	var stdout bytes.Buffer

	cmd := inv.Command(ctx)
	cmd.Stdout = &stdout
	cmd.Stderr = opts.Stderr

	code, err := exitCode(cmd.Run())
	if err != nil {
		return 0, fmt.Errorf("binutils: %s: %w: %v", opts.Tool.Exe(), ErrSpawn, err)
	}

	if _, err := opts.Stdout.Write(opts.Tool.Transform()(stdout.Bytes())); err != nil {
		return 0, fmt.Errorf("binutils: failed to write output: %w", err)
	}

	return code, nil
}

// exitCode converts the result of running a process into its exit code. Errors other than
// a nonzero exit are returned.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, err
	}

	if code := exitErr.ExitCode(); code > 0 {
		return code, nil
	}

	return 1, nil
}
