package cli

import "fmt"

// exitFailure is the exit code for failures that happen before a tool runs.
const exitFailure = 101

// ExitError is an error that carries a specific process exit code.
// Commands return it to signal the desired exit code to Main. An empty message
// means there is nothing to print, as the failing process already reported it.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// exitError creates a new ExitError with the given code and formatted message.
func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
