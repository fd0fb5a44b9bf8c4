package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mkvsmith/internal/services"
	"mkvsmith/internal/testsupport"
)

func TestBatchCreatesContainersAndReports(t *testing.T) {
	env := setupCLITestEnv(t)
	existing := testsupport.WriteFile(t, filepath.Join(env.dir, "show.mkv"), "")
	testsupport.WriteFile(t, filepath.Join(env.dir, "clip.mp4"), "")
	testsupport.WriteFile(t, filepath.Join(env.dir, "notes.txt"), "")

	out, _, err := runCLI(t, []string{"batch", "--root", env.dir}, env.configPath)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	requireContains(t, out, "clip.mp4")
	requireContains(t, out, "created")
	requireContains(t, out, "show.mkv")
	requireContains(t, out, "updated")
	requireContains(t, out, "2 succeeded")
	requireContains(t, out, "0 failed")

	data, err := os.ReadFile(filepath.Join(env.dir, "clip.mkv"))
	if err != nil || string(data) != "muxed" {
		t.Fatalf("expected clip.mkv from the mux stub, got %q (%v)", data, err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "clip.mp4")); err != nil {
		t.Fatalf("source must be kept without --delete-sources: %v", err)
	}
	data, err = os.ReadFile(existing)
	if err != nil || string(data) != "muxed" {
		t.Fatalf("expected show.mkv rewritten in place for its default subtitle, got %q (%v)", data, err)
	}
}

func TestBatchDeleteSourcesCompatFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.dir, "clip.mp4"), "")

	out, _, err := runCLI(t, []string{"batch", "--root", env.dir, "-qq"}, env.configPath)
	if err != nil {
		t.Fatalf("batch -qq: %v", err)
	}
	requireContains(t, out, "1 deleted")
	if _, err := os.Stat(filepath.Join(env.dir, "clip.mp4")); !os.IsNotExist(err) {
		t.Fatalf("expected clip.mp4 to be deleted, stat err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "clip.mkv")); err != nil {
		t.Fatalf("expected clip.mkv to remain: %v", err)
	}
}

func TestBatchRequiresMuxer(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithMissingTool("mkvmerge"))
	testsupport.WriteFile(t, filepath.Join(env.dir, "clip.mp4"), "")

	_, _, err := runCLI(t, []string{"batch", "--root", env.dir}, env.configPath)
	if !errors.Is(err, services.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "clip.mkv")); !os.IsNotExist(err) {
		t.Fatalf("no output expected without mkvmerge, stat err=%v", err)
	}
}

func TestBatchFailuresDoNotFailCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Tools.Mkvmerge = testsupport.WriteStub(t, t.TempDir(), "mkvmerge", "if [ \"$1\" = \"-o\" ]; then echo 'Error: broken input' >&2; exit 2; fi\n")
	writeTestConfig(t, env.configPath, env.cfg)
	testsupport.WriteFile(t, filepath.Join(env.dir, "clip.mp4"), "")

	out, _, err := runCLI(t, []string{"batch", "--root", env.dir}, env.configPath)
	if err != nil {
		t.Fatalf("batch must succeed despite per-file failures: %v", err)
	}
	requireContains(t, out, "1 failed")
	requireContains(t, out, "Error: broken input")
}

func TestBatchRootMustBeDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	file := testsupport.WriteFile(t, filepath.Join(env.dir, "clip.mp4"), "")

	if _, _, err := runCLI(t, []string{"batch", "--root", file}, env.configPath); err == nil {
		t.Fatal("expected a file root to be rejected")
	}
}

func TestBatchLockPath(t *testing.T) {
	a := batchLockPath("/media/Movies")
	b := batchLockPath("/other/Movies")
	if a == b {
		t.Fatalf("expected distinct lock paths for distinct roots, got %s", a)
	}
	if a != batchLockPath("/media/Movies") {
		t.Fatal("lock path must be stable for a root")
	}
	if !strings.HasPrefix(filepath.Base(a), "mkvsmith-movies-") || filepath.Dir(a) != filepath.Clean(os.TempDir()) {
		t.Fatalf("unexpected lock path %s", a)
	}
}
