package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/tmaxmax/binutils/pkg/binutils"
)

// executeCommand runs a cobra command with the given args and captures stdout/stderr.
func executeCommand(root *cobra.Command, args ...string) (stdout, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

// recordRun returns a runFunc that stores the options it receives and returns code and err.
func recordRun(got *binutils.Options, code int, err error) runFunc {
	return func(_ context.Context, opts binutils.Options) (int, error) {
		*got = opts
		return code, err
	}
}

func TestCommand_Flags(t *testing.T) {
	type test struct {
		name   string
		tool   binutils.Tool
		args   []string
		expect binutils.Options
	}

	tests := []test{
		{
			name: "SizeRelease",
			tool: binutils.Size,
			args: []string{"--bin", "app", "--release", "--", "-A", "-x"},
			expect: binutils.Options{
				Tool:    binutils.Size,
				Bin:     "app",
				Release: true,
				Args:    []string{"-A", "-x"},
			},
		},
		{
			name: "ObjdumpTarget",
			tool: binutils.Objdump,
			args: []string{"--target", "thumbv7m-none-eabi", "--lib", "-v", "--", "-d"},
			expect: binutils.Options{
				Tool:   binutils.Objdump,
				Target: "thumbv7m-none-eabi",
				Lib:    true,
				Args:   []string{"-d"},
			},
		},
		{
			name: "TrailingArgsWithoutSeparator",
			tool: binutils.Nm,
			args: []string{"--example", "demo", "lib.a", "--print-size"},
			expect: binutils.Options{
				Tool:    binutils.Nm,
				Example: "demo",
				Args:    []string{"lib.a", "--print-size"},
			},
		},
		{
			name: "Profdata",
			tool: binutils.Profdata,
			args: []string{"--", "merge", "-o", "out.profdata", "a.profraw", "b.profraw"},
			expect: binutils.Options{
				Tool: binutils.Profdata,
				Args: []string{"merge", "-o", "out.profdata", "a.profraw", "b.profraw"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CARGO", "")

			var got binutils.Options
			_, _, err := executeCommand(newCommand(tt.tool, recordRun(&got, 0, nil)), tt.args...)
			require.NoError(t, err)

			require.NotNil(t, got.Stdout)
			require.NotNil(t, got.Stderr)
			require.NotNil(t, got.Logger)
			got.Stdout, got.Stderr, got.Logger = nil, nil, nil

			require.Equal(t, tt.expect, got)
		})
	}
}

func TestCommand_ProfdataHasNoArtifactFlags(t *testing.T) {
	var got binutils.Options
	_, _, err := executeCommand(newCommand(binutils.Profdata, recordRun(&got, 0, nil)), "--bin", "app")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown flag: --bin")
}

func TestCommand_ExitCodes(t *testing.T) {
	var got binutils.Options

	_, _, err := executeCommand(newCommand(binutils.Size, recordRun(&got, 3, nil)))
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, &ExitError{Code: 3}, exitErr)

	_, _, err = executeCommand(newCommand(binutils.Size, recordRun(&got, 0, errors.New("toolchain unavailable"))))
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, exitFailure, exitErr.Code)
	require.Equal(t, "toolchain unavailable", exitErr.Message)
}

func TestExitCode(t *testing.T) {
	var stderr bytes.Buffer

	require.Equal(t, 0, exitCode(&stderr, nil))
	require.Empty(t, stderr.String())

	require.Equal(t, 3, exitCode(&stderr, &ExitError{Code: 3}))
	require.Empty(t, stderr.String(), "silent exit errors print nothing")

	require.Equal(t, exitFailure, exitCode(&stderr, errors.New("unknown flag: --foo")))
	require.Contains(t, stderr.String(), "error:")
	require.Contains(t, stderr.String(), "unknown flag: --foo")
}
