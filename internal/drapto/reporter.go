package drapto

import (
	"log/slog"

	draptolib "github.com/five82/drapto"

	"mkvsmith/internal/logging"
)

const progressStep = 10

// logReporter turns Drapto callbacks into log lines.
type logReporter struct {
	logger     *slog.Logger
	lastBucket int
}

func newLogReporter(logger *slog.Logger) *logReporter {
	return &logReporter{logger: logger, lastBucket: -1}
}

func (r *logReporter) Hardware(s draptolib.HardwareSummary) {
	r.logger.Debug("drapto hardware", logging.Any("hostname", s.Hostname))
}

func (r *logReporter) Initialization(s draptolib.InitializationSummary) {
	r.logger.Info("drapto encode starting",
		logging.Any("output", s.OutputFile),
		logging.Any("resolution", s.Resolution),
		logging.Any("dynamic_range", s.DynamicRange),
		logging.Any("duration", s.Duration),
	)
}

func (r *logReporter) StageProgress(s draptolib.StageProgress) {
	r.logger.Debug("drapto stage",
		logging.Any("stage", s.Stage),
		logging.Any("message", s.Message),
	)
}

func (r *logReporter) CropResult(s draptolib.CropSummary) {
	r.logger.Info("drapto crop detection",
		logging.Any("crop", s.Crop),
		logging.Any("required", s.Required),
		logging.Any("message", s.Message),
	)
}

func (r *logReporter) EncodingConfig(s draptolib.EncodingConfigSummary) {
	r.logger.Info("drapto encoding config",
		logging.Any("encoder", s.Encoder),
		logging.Any("preset", s.Preset),
		logging.Any("quality", s.Quality),
		logging.Any("audio_codec", s.AudioCodec),
	)
}

func (r *logReporter) EncodingStarted(totalFrames uint64) {
	r.lastBucket = -1
	r.logger.Info("drapto encoding started", logging.Any("total_frames", totalFrames))
}

func (r *logReporter) EncodingProgress(s draptolib.ProgressSnapshot) {
	r.progress(float64(s.Percent), logging.Duration("eta", s.ETA))
}

// progress logs once per progressStep percent.
func (r *logReporter) progress(percent float64, attrs ...logging.Attr) {
	bucket := int(percent) / progressStep
	if bucket <= r.lastBucket {
		return
	}
	r.lastBucket = bucket
	attrs = append([]logging.Attr{logging.Int("percent", bucket*progressStep)}, attrs...)
	r.logger.Info("drapto progress", logging.Args(attrs...)...)
}

func (r *logReporter) ValidationComplete(s draptolib.ValidationSummary) {
	r.logger.Info("drapto validation", logging.Any("passed", s.Passed))
}

func (r *logReporter) EncodingComplete(s draptolib.EncodingOutcome) {
	r.logger.Info("drapto encoding complete",
		logging.Any("output", s.OutputFile),
		logging.Any("original_size", s.OriginalSize),
		logging.Any("encoded_size", s.EncodedSize),
		logging.Any("elapsed", s.TotalTime),
	)
}

func (r *logReporter) Warning(message string) {
	r.logger.Warn("drapto warning",
		logging.String(logging.FieldEventType, "drapto_warning"),
		logging.String("message", message),
	)
}

func (r *logReporter) Error(e draptolib.ReporterError) {
	r.logger.Error("drapto error",
		logging.String(logging.FieldEventType, "drapto_error"),
		logging.Any("title", e.Title),
		logging.Any("message", e.Message),
		logging.Any(logging.FieldErrorHint, e.Suggestion),
	)
}

func (r *logReporter) OperationComplete(message string) {
	r.logger.Debug("drapto operation complete", logging.String("message", message))
}

func (r *logReporter) BatchStarted(s draptolib.BatchStartInfo) {
	r.logger.Debug("drapto batch started", logging.Any("files", s.TotalFiles))
}

func (r *logReporter) FileProgress(s draptolib.FileProgressContext) {
	r.logger.Debug("drapto file progress",
		logging.Any("current", s.CurrentFile),
		logging.Any("total", s.TotalFiles),
	)
}

func (r *logReporter) BatchComplete(s draptolib.BatchSummary) {
	r.logger.Debug("drapto batch complete",
		logging.Any("succeeded", s.SuccessfulCount),
		logging.Any("total", s.TotalFiles),
	)
}

var _ draptolib.Reporter = (*logReporter)(nil)
