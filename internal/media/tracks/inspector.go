package tracks

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"

	"mkvsmith/internal/logging"
	"mkvsmith/internal/media/ffprobe"
	"mkvsmith/internal/services"
)

// Source inspects a media file and returns its tracks.
type Source interface {
	Inspect(ctx context.Context, path string) (List, error)
}

type inspectFunc func(ctx context.Context, command []string, path string) (ffprobe.Result, error)

// Inspector queries ffprobe and normalizes its output into Lists.
type Inspector struct {
	command []string
	run     inspectFunc
	logger  *slog.Logger
}

// InspectorOption customizes an Inspector.
type InspectorOption func(*Inspector)

// WithInspectFunc overrides the ffprobe invocation (used in tests).
func WithInspectFunc(fn func(ctx context.Context, command []string, path string) (ffprobe.Result, error)) InspectorOption {
	return func(i *Inspector) {
		if fn != nil {
			i.run = fn
		}
	}
}

// NewInspector constructs an Inspector running the given ffprobe command
// prefix. An empty prefix means ffprobe is unavailable: every inspection
// reports ErrToolNotFound.
func NewInspector(command []string, logger *slog.Logger, opts ...InspectorOption) *Inspector {
	i := &Inspector{
		command: append([]string(nil), command...),
		run:     ffprobe.Inspect,
		logger:  logging.NewComponentLogger(logger, "inspector"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inspect reads the streams of path. Failures carry ErrToolNotFound when ffprobe cannot
// be executed and ErrInspect when it fails or emits malformed output.
func (i *Inspector) Inspect(ctx context.Context, path string) (List, error) {
	if len(i.command) == 0 {
		return nil, services.Wrap(services.ErrToolNotFound, "inspector", "inspect", "ffprobe unavailable", nil)
	}
	result, err := i.run(ctx, i.command, path)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, services.Wrap(services.ErrToolNotFound, "inspector", "inspect", path, err)
		}
		return nil, services.Wrap(services.ErrInspect, "inspector", "inspect", path, err)
	}
	list := FromFFprobe(result)
	i.logger.Debug("tracks inspected",
		logging.String(logging.FieldFile, path),
		logging.Int("track_count", len(list)),
	)
	return list, nil
}

// InspectOrEmpty degrades inspection failures to an empty List, logging the cause.
// Callers treat the tracks as unknown rather than failing.
func InspectOrEmpty(ctx context.Context, src Source, logger *slog.Logger, path string) List {
	list, err := src.Inspect(ctx, path)
	if err == nil {
		return list
	}
	logging.WarnWithContext(logging.WithContext(ctx, logger), "track inspection failed; treating tracks as unknown", "inspect_failed",
		logging.String(logging.FieldFile, path),
		logging.String("error_kind", services.Kind(err)),
		logging.Error(err),
		logging.String(logging.FieldImpact, "decisions for this file assume no existing tracks"),
		logging.String(logging.FieldErrorHint, "verify ffprobe is installed and the file is readable"),
	)
	return List{}
}
