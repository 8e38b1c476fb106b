/*
Package cli implements the command line interface of the cargo-* subcommands
and the rust-* passthrough commands.
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/tmaxmax/binutils/pkg/binutils"
	_ "github.com/tmaxmax/binutils/pkg/toolchain/rustc"
)

// Version is set via ldflags at build time.
var Version = "dev"

type runFunc func(ctx context.Context, opts binutils.Options) (int, error)

// NewCommand creates the cargo subcommand proxying the given tool.
func NewCommand(tool binutils.Tool) *cobra.Command {
	return newCommand(tool, binutils.Run)
}

func newCommand(tool binutils.Tool, run runFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:     fmt.Sprintf("cargo-%s [options] [--] [<args>...]", tool.Name()),
		Short:   fmt.Sprintf("Proxy for the `llvm-%s` tool shipped with the Rust toolchain.", tool.Name()),
		Long:    fmt.Sprintf("Proxy for the `llvm-%s` tool shipped with the Rust toolchain.\n\nThe specified <args>... will all be passed to the final tool invocation.", tool.Name()),
		Version: Version,
		// SilenceUsage prevents printing usage on every error
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, tool, args, run)
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().String("target", "", "Target triple for which the code is compiled")
	cmd.Flags().BoolP("verbose", "v", false, "Use verbose output")

	if tool.NeedsBuild() {
		cmd.Flags().String("bin", "", "Build only the specified binary")
		cmd.Flags().String("example", "", "Build only the specified example")
		cmd.Flags().Bool("lib", false, "Build only this package's library")
		cmd.Flags().Bool("release", false, "Build artifacts in release mode, with optimizations")
	}

	return cmd
}

func runTool(cmd *cobra.Command, tool binutils.Tool, args []string, run runFunc) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	target, _ := cmd.Flags().GetString("target")

	opts := binutils.Options{
		Tool:   tool,
		Target: target,
		Args:   args,
		Cargo:  os.Getenv("CARGO"),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Logger: newLogger(cmd.ErrOrStderr(), verbose),
	}

	if tool.NeedsBuild() {
		opts.Bin, _ = cmd.Flags().GetString("bin")
		opts.Example, _ = cmd.Flags().GetString("example")
		opts.Lib, _ = cmd.Flags().GetBool("lib")
		opts.Release, _ = cmd.Flags().GetBool("release")
	}

	code, err := run(cmd.Context(), opts)
	if err != nil {
		return exitError(exitFailure, "%v", err)
	}
	if code != 0 {
		return &ExitError{Code: code}
	}

	return nil
}

// Main runs the cargo subcommand for tool with the given arguments, excluding the program
// name, and returns the process exit code. When run by cargo the first argument is the
// subcommand name, which is skipped.
func Main(tool binutils.Tool, args []string) int {
	if len(args) > 0 && args[0] == tool.Name() {
		args = args[1:]
	}

	cmd := NewCommand(tool)
	cmd.SetArgs(args)

	return exitCode(cmd.ErrOrStderr(), cmd.ExecuteContext(context.Background()))
}

// Forward runs tool from the Rust toolchain with args, unmodified, and returns the process
// exit code.
func Forward(tool binutils.Tool, args []string) int {
	code, err := binutils.Forward(context.Background(), tool, "", args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		return exitCode(os.Stderr, exitError(exitFailure, "%v", err))
	}

	return code
}

func exitCode(stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		exitErr = exitError(exitFailure, "%v", err)
	}

	if exitErr.Message != "" {
		fmt.Fprintf(stderr, "%s %s\n", color.Danger.Sprint("error:"), exitErr.Message)
	}

	return exitErr.Code
}
