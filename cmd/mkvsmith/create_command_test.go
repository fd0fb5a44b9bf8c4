package main

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mkvsmith/internal/media/tracks"
	"mkvsmith/internal/ops"
	"mkvsmith/internal/testsupport"
)

func TestCreateDryRun(t *testing.T) {
	env := setupCLITestEnv(t)
	video := testsupport.WriteFile(t, filepath.Join(env.dir, "movie.mp4"), "")
	subs := testsupport.WriteFile(t, filepath.Join(env.dir, "movie.slv.srt"), "1\n")

	out, _, err := runCLI(t, []string{"create", video + ":eng", subs + ":sl", "--title", "Movie: Part 1", "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("create --dry-run: %v", err)
	}
	requireContains(t, out, "--title 'Movie: Part 1'")
	requireContains(t, out, "--language 0:eng")
	requireContains(t, out, "--language 0:slv")
	requireContains(t, out, "Output: "+filepath.Join(env.dir, "Movie- Part 1.mkv"))
}

func TestCreateQueue(t *testing.T) {
	inputs := []externalInput{
		{Path: "movie.mp4", Language: "eng"},
		{Path: "extra.mkv"},
		{Path: "movie.srt", Language: "slv"},
		{Path: "dub.AC3"},
		{Path: "angle.mp4", Language: "hrv"},
	}
	sources, q := createQueue(inputs)
	if diff := cmp.Diff([]string{"movie.mp4", "extra.mkv"}, sources); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}
	want := []ops.Operation{
		ops.SetLanguage{Index: 0, Language: "eng"},
		ops.AddExternalTrack{Type: tracks.Subtitle, Path: "movie.srt", Language: "slv"},
		ops.AddExternalTrack{Type: tracks.Audio, Path: "dub.AC3"},
		ops.AddExternalTrack{Type: tracks.Video, Path: "angle.mp4", Language: "hrv"},
	}
	if diff := cmp.Diff(want, q.Operations()); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultCreateOutput(t *testing.T) {
	if got := defaultCreateOutput("/m/movie.mp4", "A/B: C?", "_"); got != "/m/A-B- C.mkv" {
		t.Fatalf("unexpected titled output %q", got)
	}
	if got := defaultCreateOutput("/m/movie.mp4", "  ", "_"); got != "/m/_movie.mkv" {
		t.Fatalf("unexpected untitled output %q", got)
	}
}
