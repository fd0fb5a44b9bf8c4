package drapto

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func captureReporter() (*logReporter, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return newLogReporter(logger), &buf
}

func TestProgressIsSampledInSteps(t *testing.T) {
	rep, buf := captureReporter()
	rep.EncodingStarted(1000)
	for _, percent := range []float64{0.5, 3, 9.9, 10, 14, 25, 25.5, 100} {
		rep.progress(percent)
	}
	got := strings.Count(buf.String(), "drapto progress")
	if got != 4 {
		t.Fatalf("expected 4 progress lines (0, 10, 20, 100), got %d:\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "percent=100") {
		t.Fatalf("expected completion to be logged:\n%s", buf.String())
	}
}

func TestEncodingStartedResetsSampling(t *testing.T) {
	rep, buf := captureReporter()
	rep.progress(50)
	rep.EncodingStarted(10)
	rep.progress(50)
	if got := strings.Count(buf.String(), "percent=50"); got != 2 {
		t.Fatalf("expected progress to restart after a new encode, got %d lines", got)
	}
}

func TestWarningIsTagged(t *testing.T) {
	rep, buf := captureReporter()
	rep.Warning("crop detection skipped")
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "event_type=drapto_warning") {
		t.Fatalf("unexpected warning output %q", out)
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("/media/in/Movie.mp4", "/media/work")
	if got != filepath.Join("/media/work", "Movie.mkv") {
		t.Fatalf("OutputPath = %q", got)
	}
}
