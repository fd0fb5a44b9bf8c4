package remux

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"mkvsmith/internal/services"
)

// ExecutionError reports an external tool invocation that failed. ExitCode is
// -1 when the process could not be started. It matches
// services.ErrExternalTool with errors.Is.
type ExecutionError struct {
	Tool       string
	ExitCode   int
	Diagnostic string
	Err        error
}

func newExecutionError(tool string, output []byte, err error) *ExecutionError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	diagnostic := strings.TrimSpace(string(output))
	if diagnostic == "" && err != nil {
		diagnostic = err.Error()
	}
	return &ExecutionError{Tool: tool, ExitCode: code, Diagnostic: diagnostic, Err: err}
}

func (e *ExecutionError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s failed: %s", e.Tool, e.Diagnostic)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Tool, e.ExitCode, e.Diagnostic)
}

func (e *ExecutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{services.ErrExternalTool}
	}
	return []error{services.ErrExternalTool, e.Err}
}
