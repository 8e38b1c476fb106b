package rustc

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tmaxmax/binutils/pkg/toolchain"
)

// versionMeta holds the fields of `rustc -vV` this package cares about.
type versionMeta struct {
	release string
	host    string
}

func parseVersionMeta(stdout []byte) (versionMeta, error) {
	var meta versionMeta

	s := bufio.NewScanner(bytes.NewReader(stdout))
	for s.Scan() {
		key, value, ok := strings.Cut(s.Text(), ":")
		if !ok {
			continue
		}

		switch strings.TrimSpace(key) {
		case "release":
			meta.release = strings.TrimSpace(value)
		case "host":
			meta.host = strings.TrimSpace(value)
		}
	}

	if meta.host == "" {
		return versionMeta{}, errors.New("no host triple in version metadata")
	}

	return meta, nil
}

// Compiler is a Rust compiler.
type Compiler struct {
	info toolchain.CompilerInfo
}

var _ toolchain.Compiler = (*Compiler)(nil)

// NewCompiler creates a rustc compiler instance. It looks up an executable using the provided name
// or uses the executable at the given path, if a path is specified. The compiler is queried for its
// version metadata and sysroot; failures wrap toolchain.ErrUnavailable.
func NewCompiler(pathOrExec string) (*Compiler, error) {
	ctx := context.Background()

	cmd := execCommandContext(ctx, pathOrExec, "-vV")
	stdout, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("rustc: failed to query version metadata: %w: %v", toolchain.ErrUnavailable, err)
	}

	meta, err := parseVersionMeta(stdout)
	if err != nil {
		return nil, fmt.Errorf("rustc: %w: %v", toolchain.ErrUnavailable, err)
	}

	sysroot, err := execCommandContext(ctx, cmd.Path, "--print", "sysroot").Output()
	if err != nil {
		return nil, fmt.Errorf("rustc: failed to query sysroot: %w: %v", toolchain.ErrUnavailable, err)
	}

	info := toolchain.CompilerInfo{
		Name:    compilerName,
		Path:    cmd.Path,
		Version: meta.release,
		Host:    meta.host,
		Sysroot: string(bytes.TrimSpace(sysroot)),
	}

	return &Compiler{info: info}, nil
}

// TargetConfig asks the compiler for the cfg values of the given target triple.
func (c *Compiler) TargetConfig(ctx context.Context, triple string) (toolchain.TargetConfig, error) {
	cmd := execCommandContext(ctx, c.info.Path, "--target", triple, "--print", "cfg")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return toolchain.TargetConfig{}, fmt.Errorf("rustc: unknown target %q: %s", triple, bytes.TrimSpace(stderr.Bytes()))
		}

		return toolchain.TargetConfig{}, fmt.Errorf("rustc: failed to query target %q: %w: %v", triple, toolchain.ErrUnavailable, err)
	}

	return toolchain.ParseTargetConfig(triple, stdout)
}

func (c *Compiler) Info() toolchain.CompilerInfo {
	return c.info
}
