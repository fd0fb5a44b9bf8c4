package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"mkvsmith/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config rooted in a per-test temp directory.
// Flatpak discovery is disabled so tests never shell out to flatpak.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Tools.FlatpakFallback = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStubbedBinaries writes stub executables for the provided names into a
// temp bin directory and points the tool configuration at them. If names is
// empty, ffprobe, mkvmerge, and ffmpeg are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffprobe", "mkvmerge", "ffmpeg"}
		}
		for _, name := range names {
			path := WriteStub(b.t, filepath.Join(b.baseDir, "bin"), name, "exit 0\n")
			switch name {
			case "ffprobe":
				b.cfg.Tools.FFprobe = path
			case "mkvmerge":
				b.cfg.Tools.Mkvmerge = path
			case "ffmpeg":
				b.cfg.Tools.FFmpeg = path
			}
		}
	}
}

// WithMissingTool points the named tool at a path that does not exist. The
// file name differs from name so common install directories never match.
func WithMissingTool(name string) ConfigOption {
	return func(b *configBuilder) {
		missing := filepath.Join(b.baseDir, "missing", name+"-not-installed")
		switch name {
		case "ffprobe":
			b.cfg.Tools.FFprobe = missing
		case "mkvmerge":
			b.cfg.Tools.Mkvmerge = missing
		case "ffmpeg":
			b.cfg.Tools.FFmpeg = missing
		}
	}
}

// WriteStub writes an executable shell script named name into dir and returns
// its path.
func WriteStub(t testing.TB, dir, name, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}
