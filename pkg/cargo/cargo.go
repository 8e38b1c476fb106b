/*
Package cargo understands the layout of a Cargo project: its manifest, its
`.cargo/config` build settings and its target directory. It resolves which
compiled artifact a request refers to and runs the build that produces it.
*/
package cargo

import (
	"errors"
	"os/exec"
)

var (
	// ErrInvalidRequest is returned for artifact selections that cannot be satisfied
	// as given, like conflicting selectors or an ambiguous default target.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrArtifactNotFound is returned when no file in the target directory matches the
	// requested artifact.
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrAmbiguousArtifact is returned when several files match the requested artifact
	// and their modification times do not single one out.
	ErrAmbiguousArtifact = errors.New("ambiguous artifact")
)

var execCommandContext = exec.CommandContext
