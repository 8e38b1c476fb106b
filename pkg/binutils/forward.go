package binutils

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/tmaxmax/binutils/pkg/toolchain"
)

// Forward runs the tool from the toolchain of the given compiler with args, unmodified, and
// returns its exit code. No build happens and the output is not postprocessed.
func Forward(ctx context.Context, tool Tool, rustc string, args []string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	compiler, err := toolchain.UsePreferredCompiler(rustc)
	if err != nil {
		return 0, err
	}

	bindir, err := toolchain.FindBinDir(compiler.Info().Sysroot)
	if err != nil {
		return 0, err
	}

	inv := Invocation{Path: filepath.Join(bindir, tool.Exe()), Args: args}

	cmd := inv.Command(ctx)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = stdin, stdout, stderr

	code, err := exitCode(cmd.Run())
	if err != nil {
		return 0, fmt.Errorf("binutils: %s: %w: %v", tool.Exe(), ErrSpawn, err)
	}

	return code, nil
}
