package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrToolNotFound marks a required external binary that could not be resolved.
	ErrToolNotFound = errors.New("tool not found")
	// ErrInspect marks ffprobe failures and malformed ffprobe output.
	ErrInspect = errors.New("inspection error")
	// ErrExternalTool marks a mux or transcode invocation that exited non-zero.
	ErrExternalTool = errors.New("external tool error")
	// ErrFileSystem marks temp-file, rename, and deletion failures.
	ErrFileSystem = errors.New("filesystem error")
	// ErrValidation marks operations rejected before any tool runs.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks an unreadable or invalid configuration file.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short label for the marker carried by err, used in summaries.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrToolNotFound):
		return "tool_not_found"
	case errors.Is(err, ErrInspect):
		return "inspect"
	case errors.Is(err, ErrExternalTool):
		return "external_tool"
	case errors.Is(err, ErrFileSystem):
		return "filesystem"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	default:
		return "unknown"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, ": ")
}
