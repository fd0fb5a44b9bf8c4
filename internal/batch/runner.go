package batch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"mkvsmith/internal/config"
	"mkvsmith/internal/fileutil"
	"mkvsmith/internal/logging"
	"mkvsmith/internal/media/tracks"
	"mkvsmith/internal/remux"
	"mkvsmith/internal/services"
)

// diagnosticLimit bounds the tool output kept per failed file.
const diagnosticLimit = 100

// Executor runs a compiled plan.
type Executor interface {
	Execute(ctx context.Context, plan *remux.Plan) error
}

// Options controls a single batch run.
type Options struct {
	Root          string
	DeleteSources bool
}

// Runner processes a directory tree one file at a time.
type Runner struct {
	cfg          *config.Config
	classifier   Classifier
	inspector    tracks.Source
	compiler     *remux.Compiler
	executor     Executor
	canTranscode bool
	logger       *slog.Logger
	remove       func(string) error
}

// NewRunner wires a Runner. canTranscode reports whether ffmpeg is available;
// without it audio re-encodes are dropped from decisions with a warning.
func NewRunner(cfg *config.Config, inspector tracks.Source, executor Executor, canTranscode bool, logger *slog.Logger) *Runner {
	logger = logging.NewComponentLogger(logger, "batch")
	return &Runner{
		cfg:          cfg,
		classifier:   NewClassifier(cfg.Batch.PreferredLanguages, cfg.Batch.TargetAudioCodec),
		inspector:    inspector,
		compiler:     remux.NewCompiler(inspector, cfg.Batch.AudioBitrate, logger),
		executor:     executor,
		canTranscode: canTranscode,
		logger:       logger,
		remove:       os.Remove,
	}
}

// Run processes every container under opts.Root, then every bare video. Per
// file failures are counted and do not stop the run. Cancellation is honoured
// between files; the summary collected so far is returned with ctx.Err().
func (r *Runner) Run(ctx context.Context, opts Options) (Summary, error) {
	start := time.Now()
	summary := Summary{}
	logger := logging.WithContext(ctx, r.logger)

	found, err := Discover(opts.Root, r.cfg.IsVideoExtension, logger)
	if err != nil {
		return summary, err
	}
	logger.Info("batch started",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.String("root", opts.Root),
		logging.Int("containers", len(found.Containers)),
		logging.Int("videos", len(found.Videos)),
		logging.Bool("delete_sources", opts.DeleteSources),
	)

	for _, path := range found.Containers {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.add(r.processContainer(services.WithFile(ctx, path), path, opts))
	}
	for _, path := range found.Videos {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.add(r.processVideo(services.WithFile(ctx, path), path, opts))
	}

	summary.Duration = time.Since(start)
	logger.Info("batch finished",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("unchanged", summary.Unchanged),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (r *Runner) processContainer(ctx context.Context, path string, opts Options) Result {
	logger := logging.WithContext(ctx, r.logger)
	res := Result{Path: path, Kind: KindContainer, Output: path}

	list := tracks.InspectOrEmpty(ctx, r.inspector, r.logger, path)
	sidecar := FindSidecar(path, r.cfg.Batch.SubtitleSuffixes)
	d := r.limit(logger, r.classifier.ClassifyContainer(path, list, sidecar))
	res.Action = d.Summary()
	logDecision(logger, d)

	if d.NoAction() {
		res.Status = StatusUnchanged
		if opts.DeleteSources && sidecar != "" && d.HasPreferredSubtitle {
			r.deleteSources(logger, &res, path, sidecar)
		}
		return res
	}

	if err := r.apply(ctx, d, []string{path}, path); err != nil {
		r.fail(logger, &res, err)
		return res
	}
	res.Status = StatusUpdated
	logger.Info("container updated",
		logging.String(logging.FieldEventType, "container_updated"),
		logging.String("changes", res.Action),
	)
	if opts.DeleteSources && d.NeedsSubtitle {
		r.deleteSources(logger, &res, path, d.SubtitleSource)
	}
	return res
}

func (r *Runner) processVideo(ctx context.Context, path string, opts Options) Result {
	logger := logging.WithContext(ctx, r.logger)
	res := Result{Path: path, Kind: KindVideo}
	target := containerPathFor(path)
	res.Output = target

	if _, err := os.Stat(target); err == nil {
		res.Status = StatusSkipped
		res.Action = "container already exists"
		logger.Debug("video skipped", logging.String("container", target))
		return res
	}

	list := tracks.InspectOrEmpty(ctx, r.inspector, r.logger, path)
	sidecar := FindSidecar(path, r.cfg.Batch.SubtitleSuffixes)
	d := r.limit(logger, r.classifier.ClassifyVideo(path, list, sidecar))
	res.Action = d.Summary()
	logDecision(logger, d)

	if err := r.apply(ctx, d, []string{path}, target); err != nil {
		r.fail(logger, &res, err)
		return res
	}
	res.Status = StatusCreated
	logger.Info("container created",
		logging.String(logging.FieldEventType, "container_created"),
		logging.String("container", target),
		logging.String("changes", res.Action),
	)
	if opts.DeleteSources {
		sources := []string{path}
		if d.NeedsSubtitle {
			sources = append(sources, d.SubtitleSource)
		}
		r.deleteSources(logger, &res, target, sources...)
	}
	return res
}

func (r *Runner) apply(ctx context.Context, d Decision, sources []string, output string) error {
	plan, err := r.compiler.Compile(ctx, d.Queue(), sources, output)
	if err != nil {
		return err
	}
	return r.executor.Execute(ctx, plan)
}

// limit drops the audio re-encode when no transcoder is available.
func (r *Runner) limit(logger *slog.Logger, d Decision) Decision {
	if !d.NeedsAudioTranscode || r.canTranscode {
		return d
	}
	logging.WarnWithContext(logger, "audio transcode skipped; ffmpeg unavailable", "transcode_unavailable",
		logging.String("audio_codec", d.SourceAudioCodec),
		logging.String("target_codec", d.TargetAudioCodec),
		logging.String(logging.FieldImpact, "audio is kept in its original codec"),
		logging.String(logging.FieldErrorHint, "install ffmpeg or set tools.ffmpeg"),
	)
	return d.WithoutTranscode()
}

// deleteSources removes paths only when output exists on disk at the time of
// deletion.
func (r *Runner) deleteSources(logger *slog.Logger, res *Result, output string, paths ...string) {
	if !fileutil.Exists(output) {
		logging.WarnWithContext(logger, "source deletion skipped; output missing", "delete_skipped",
			logging.String("output", output),
			logging.String(logging.FieldImpact, "sources are kept"),
			logging.String(logging.FieldErrorHint, "inspect the output path and rerun"),
		)
		return
	}
	for _, path := range paths {
		if path == "" || path == output {
			continue
		}
		if err := r.remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logging.WarnWithContext(logger, "source deletion failed", "delete_failed",
				logging.String("path", path),
				logging.Error(services.Wrap(services.ErrFileSystem, "batch", "delete source", path, err)),
				logging.String(logging.FieldImpact, "source file remains beside the output"),
				logging.String(logging.FieldErrorHint, "remove the file manually"),
			)
			continue
		}
		res.Deleted = append(res.Deleted, path)
		logger.Info("source deleted",
			logging.String(logging.FieldEventType, "source_deleted"),
			logging.String("path", path),
		)
	}
}

func (r *Runner) fail(logger *slog.Logger, res *Result, err error) {
	diagnostic := err.Error()
	var execErr *remux.ExecutionError
	if errors.As(err, &execErr) {
		diagnostic = execErr.Diagnostic
	}
	res.Status = StatusFailed
	res.Err = err
	res.Diagnostic = logging.Truncate(diagnostic, diagnosticLimit)
	logging.ErrorWithContext(logger, "file processing failed", "batch_file_failed",
		logging.String("error_kind", services.Kind(err)),
		logging.String("diagnostic", res.Diagnostic),
		logging.String("changes", res.Action),
		logging.String(logging.FieldErrorHint, "rerun with --log-level debug to see the full tool command"),
	)
}

func logDecision(logger *slog.Logger, d Decision) {
	result := "no_action"
	if !d.NoAction() {
		result = "apply"
	}
	logger.Debug("file classified", logging.Args(logging.DecisionAttrs("remux", result, d.Summary())...)...)
}
