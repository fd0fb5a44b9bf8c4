package remux

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"mkvsmith/internal/deps"
	"mkvsmith/internal/fileutil"
	"mkvsmith/internal/logging"
	"mkvsmith/internal/services"
)

// Runner executes argv and returns its combined output.
type Runner func(ctx context.Context, argv []string) ([]byte, error)

// AV1Encoder encodes inputPath into outputDir and returns the written file.
type AV1Encoder interface {
	Encode(ctx context.Context, inputPath, outputDir string) (string, error)
}

// Executor runs Plans. Each tool invocation is attempted exactly once.
type Executor struct {
	ffmpeg   deps.Tool
	mkvmerge deps.Tool
	run      Runner
	av1      AV1Encoder
	logger   *slog.Logger
}

// NewExecutor returns an Executor invoking the toolchain's ffmpeg and mkvmerge.
func NewExecutor(tc deps.Toolchain, logger *slog.Logger) *Executor {
	return &Executor{
		ffmpeg:   tc.FFmpeg,
		mkvmerge: tc.Mkvmerge,
		run:      defaultRunner,
		logger:   logging.NewComponentLogger(logger, "executor"),
	}
}

// WithRunner allows injecting a custom command runner for tests.
func (e *Executor) WithRunner(r Runner) {
	if e != nil && r != nil {
		e.run = r
	}
}

// WithAV1Encoder sets the encoder used by conversions on the drapto engine.
func (e *Executor) WithAV1Encoder(enc AV1Encoder) {
	if e != nil {
		e.av1 = enc
	}
}

// Execute runs the transcode pass (if any) and the mux pass. mkvmerge writes
// to a staging file beside the output which replaces the output only after a
// zero exit and a non-empty result on disk. Temp files are removed on every
// path; failure to remove them is logged, not returned.
func (e *Executor) Execute(ctx context.Context, plan *Plan) error {
	if plan == nil {
		return services.Wrap(services.ErrValidation, "executor", "execute", "nil plan", nil)
	}
	if err := e.mkvmerge.Require(); err != nil {
		return err
	}
	logger := logging.WithContext(ctx, e.logger)

	if plan.Transcode != nil {
		if err := e.ffmpeg.Require(); err != nil {
			return err
		}
		defer e.cleanup(logger, plan.Transcode.Output)
		if err := e.invoke(ctx, logger, e.ffmpeg, plan.Transcode.Args()); err != nil {
			return err
		}
		if !fileutil.Exists(plan.Transcode.Output) {
			return services.Wrap(services.ErrFileSystem, "executor", "transcode", "ffmpeg did not produce "+plan.Transcode.Output, nil)
		}
	}

	staging := stagingPath(plan.Mux.Output)
	defer e.cleanup(logger, staging)
	if err := e.invoke(ctx, logger, e.mkvmerge, plan.Mux.Args(staging)); err != nil {
		return err
	}
	if !fileutil.Exists(staging) {
		return services.Wrap(services.ErrFileSystem, "executor", "mux", "mkvmerge did not produce "+staging, nil)
	}
	if err := fileutil.ReplaceFile(staging, plan.Mux.Output); err != nil {
		return services.Wrap(services.ErrFileSystem, "executor", "replace output", plan.Mux.Output, err)
	}

	logger.Info("output written",
		logging.String(logging.FieldEventType, "mux_complete"),
		logging.String("output", plan.Mux.Output),
		logging.Bool("transcoded", plan.Transcode != nil),
	)
	return nil
}

// Convert runs a whole-file re-encode into a staging file beside the output
// and replaces the output once the staged file is confirmed on disk.
func (e *Executor) Convert(ctx context.Context, conv *Conversion) error {
	if conv == nil {
		return services.Wrap(services.ErrValidation, "executor", "convert", "nil conversion", nil)
	}
	logger := logging.WithContext(ctx, e.logger)
	staging := stagingPath(conv.Output)
	defer e.cleanup(logger, staging)

	if conv.Engine == EngineDrapto {
		if err := e.encodeAV1(ctx, logger, conv, staging); err != nil {
			return err
		}
	} else {
		if err := e.ffmpeg.Require(); err != nil {
			return err
		}
		if err := e.invoke(ctx, logger, e.ffmpeg, conv.Args(staging)); err != nil {
			return err
		}
	}
	if !fileutil.Exists(staging) {
		return services.Wrap(services.ErrFileSystem, "executor", "convert", "encoder did not produce "+staging, nil)
	}
	if err := fileutil.ReplaceFile(staging, conv.Output); err != nil {
		return services.Wrap(services.ErrFileSystem, "executor", "replace output", conv.Output, err)
	}

	logger.Info("output written",
		logging.String(logging.FieldEventType, "convert_complete"),
		logging.String("output", conv.Output),
		logging.String("engine", string(conv.Engine)),
	)
	return nil
}

// encodeAV1 lets the AV1 encoder write into a private directory beside the
// output, then moves its result to staging.
func (e *Executor) encodeAV1(ctx context.Context, logger *slog.Logger, conv *Conversion, staging string) error {
	if e.av1 == nil {
		return services.Wrap(services.ErrToolNotFound, "executor", "convert", "no AV1 encoder configured", nil)
	}
	workDir, err := os.MkdirTemp(filepath.Dir(conv.Output), tempMarker+"av1-")
	if err != nil {
		return services.Wrap(services.ErrFileSystem, "executor", "convert", "create work directory", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			logging.WarnWithContext(logger, "work directory cleanup failed", "temp_cleanup_failed",
				logging.String("path", workDir),
				logging.Error(services.Wrap(services.ErrFileSystem, "executor", "cleanup", workDir, err)),
				logging.String(logging.FieldImpact, "an intermediate directory was left beside the output"),
				logging.String(logging.FieldErrorHint, "remove the directory manually"),
			)
		}
	}()

	logger.Debug("running AV1 encoder", logging.String(logging.FieldFile, conv.Input))
	encoded, err := e.av1.Encode(context.WithoutCancel(ctx), conv.Input, workDir)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "executor", "av1 encode", conv.Input, err)
	}
	if !fileutil.Exists(encoded) {
		return services.Wrap(services.ErrFileSystem, "executor", "av1 encode", "encoder did not produce "+encoded, nil)
	}
	if err := fileutil.ReplaceFile(encoded, staging); err != nil {
		return services.Wrap(services.ErrFileSystem, "executor", "av1 encode", staging, err)
	}
	return nil
}

// invoke runs one tool to completion. Cancellation of ctx is not passed to
// the process, so an interrupted edit never leaves a half-written file.
func (e *Executor) invoke(ctx context.Context, logger *slog.Logger, tool deps.Tool, args []string) error {
	argv := tool.Args(args...)
	logger.Debug("running external tool",
		logging.String(logging.FieldTool, tool.Name),
		logging.Command(argv),
	)
	output, err := e.run(context.WithoutCancel(ctx), argv)
	if err != nil {
		return newExecutionError(tool.Name, output, err)
	}
	return nil
}

func (e *Executor) cleanup(logger *slog.Logger, path string) {
	if err := fileutil.RemoveIfExists(path); err != nil {
		logging.WarnWithContext(logger, "temp file cleanup failed", "temp_cleanup_failed",
			logging.String("path", path),
			logging.Error(services.Wrap(services.ErrFileSystem, "executor", "cleanup", path, err)),
			logging.String(logging.FieldImpact, "an intermediate file was left beside the output"),
			logging.String(logging.FieldErrorHint, "remove the file manually"),
		)
	}
}

func defaultRunner(ctx context.Context, argv []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	return cmd.CombinedOutput()
}
