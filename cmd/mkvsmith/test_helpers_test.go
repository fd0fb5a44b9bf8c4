package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mkvsmith/internal/config"
	"mkvsmith/internal/testsupport"
)

const ffprobeJSON = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "disposition": {"default": 1}},
    {"index": 1, "codec_name": "ac3", "codec_type": "audio", "tags": {"language": "eng"}, "disposition": {"default": 1}},
    {"index": 2, "codec_name": "subrip", "codec_type": "subtitle", "tags": {"language": "eng"}, "disposition": {"default": 1}},
    {"index": 3, "codec_name": "subrip", "codec_type": "subtitle", "tags": {"language": "slv", "title": "Slovenski"}, "disposition": {"default": 0}}
  ],
  "format": {"filename": "movie.mkv", "nb_streams": 4}
}`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	dir        string
}

// setupCLITestEnv writes a config pointing at stub tools. ffprobe prints
// ffprobeJSON, mkvmerge writes its -o target and ffmpeg its last argument.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("MKVSMITH_CONFIG", "")

	opts = append([]testsupport.ConfigOption{testsupport.WithStubbedBinaries()}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	bin := filepath.Join(base, "bin")
	if stubbed(cfg.Tools.FFprobe) {
		cfg.Tools.FFprobe = testsupport.WriteStub(t, bin, "ffprobe", "cat <<'JSON'\n"+ffprobeJSON+"\nJSON\n")
	}
	if stubbed(cfg.Tools.Mkvmerge) {
		cfg.Tools.Mkvmerge = testsupport.WriteStub(t, bin, "mkvmerge", "if [ \"$1\" = \"-o\" ]; then printf 'muxed' > \"$2\"; fi\n")
	}

	if stubbed(cfg.Tools.FFmpeg) {
		cfg.Tools.FFmpeg = testsupport.WriteStub(t, bin, "ffmpeg", "[ \"$#\" -gt 1 ] || exit 0\nfor last; do :; done\nprintf 'converted' > \"$last\"\n")
	}

	configPath := filepath.Join(base, "mkvsmith.toml")
	writeTestConfig(t, configPath, cfg)

	dir := filepath.Join(base, "media")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir media: %v", err)
	}
	return &cliTestEnv{cfg: cfg, configPath: configPath, dir: dir}
}

// stubbed reports whether path names an existing stub rather than a tool
// deliberately pointed at a missing file.
func stubbed(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[tools]\nffprobe = %q\nmkvmerge = %q\nffmpeg = %q\nflatpak_fallback = false\n\n[logging]\nlevel = \"error\"\n",
		cfg.Tools.FFprobe,
		cfg.Tools.Mkvmerge,
		cfg.Tools.FFmpeg,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
