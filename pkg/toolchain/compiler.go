package toolchain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// A Compiler reports the facts about an installed compiler toolchain needed to
// locate its components and to describe compilation targets.
type Compiler interface {
	// TargetConfig returns the architecture-level facts of the given target triple,
	// as understood by the compiler. The returned error mentions the triple if the
	// compiler does not recognize it.
	TargetConfig(ctx context.Context, triple string) (TargetConfig, error)
	// Info returns some information about the compiler.
	Info() CompilerInfo
}

// CompilerInfo holds some information about the underlying compiler.
type CompilerInfo struct {
	// Name of the compiler.
	Name string
	// Path of the compiler's executable.
	Path string
	// Version number of the compiler.
	Version string
	// Host is the target triple the compiler runs on and compiles for by default.
	Host string
	// Sysroot is the root directory of the compiler's installation.
	Sysroot string
}

// NewCompiler looks up the compiler's executable with the given name on the host
// and initializes a Compiler instance that uses that executable.
func NewCompiler(name string) (Compiler, error) {
	compilersMutex.RLock()
	constructor := compilers[name]
	compilersMutex.RUnlock()

	if constructor == nil {
		return nil, fmt.Errorf("toolchain: missing compiler %q, forgotten import?", name)
	}

	compiler, err := constructor(name)
	if err != nil {
		return nil, fmt.Errorf("toolchain: failed to initialize compiler %q: %w", name, err)
	}

	return compiler, nil
}

// UsePreferredCompiler initializes the compiler found at pathOrName. If pathOrName is empty,
// the RUSTC environment variable is used instead, and if that is empty too the first
// registered compiler is looked up by its own name.
//
// The implementation is chosen by matching the executable's base name against the
// registered names; wrappers whose name matches none use the first registered implementation.
func UsePreferredCompiler(pathOrName string) (Compiler, error) {
	compilersMutex.RLock()
	defer compilersMutex.RUnlock()

	if len(compilersNames) == 0 {
		return nil, fmt.Errorf("toolchain: no compilers registered, forgotten imports?")
	}

	if pathOrName == "" {
		pathOrName = os.Getenv("RUSTC")
	}
	if pathOrName == "" {
		pathOrName = compilersNames[0]
	}

	name := compilersNames[0]
	base := filepath.Base(pathOrName)
	for _, registeredName := range compilersNames {
		if strings.Contains(base, registeredName) {
			name = registeredName
			break
		}
	}

	compiler, err := compilers[name](pathOrName)
	if err != nil {
		return nil, fmt.Errorf("toolchain: failed to initialize compiler %q: %w", pathOrName, err)
	}

	return compiler, nil
}

// CompilerConstructor is a function that constructs a Compiler from an executable.
// It takes either a path to the executable or the executable's name as an argument.
type CompilerConstructor func(pathOrExecutableName string) (Compiler, error)

var (
	compilers      = map[string]CompilerConstructor{}
	compilersNames []string // provide ordered iteration for the map
	compilersMutex sync.RWMutex
)

// RegisterCompiler adds a custom Compiler implementation for usage.
// If an implementation with the same name already exists or the provided
// constructor is nil, this function panics. If the name has path separators
// or path list separators, this function panics.
//
// The provided name may be used by the constructor to look up the path of the compiler's executable.
func RegisterCompiler(name string, constructor CompilerConstructor) {
	compilersMutex.Lock()
	defer compilersMutex.Unlock()

	if !isValidImplementationName(name) {
		panic(fmt.Sprintf("toolchain: compiler name %q has invalid characters", name))
	}

	if compilers[name] != nil {
		panic(fmt.Sprintf("toolchain: compiler %q is already registered", name))
	}

	if constructor == nil {
		panic(fmt.Sprintf("toolchain: constructor provided for compiler %q is nil", name))
	}

	compilers[name] = constructor
	compilersNames = append(compilersNames, name)
}
