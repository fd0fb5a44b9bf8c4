package main

import (
	"bytes"
	"strings"
	"testing"

	"mkvsmith/internal/deps"
	"mkvsmith/internal/preflight"
	"mkvsmith/internal/testsupport"
)

func TestToolRowStates(t *testing.T) {
	tests := []struct {
		name   string
		status deps.Status
		want   checkState
	}{
		{"available", deps.Status{Name: "mkvmerge", Command: "/usr/bin/mkvmerge", Available: true}, stateReady},
		{"missing muxer", deps.Status{Name: "mkvmerge", Detail: `binary "mkvmerge" not found`}, stateMissing},
		{"missing optional", deps.Status{Name: "ffmpeg", Optional: true, Detail: `binary "ffmpeg" not found`}, stateOptional},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := toolRow(tt.status)
			if row.state != tt.want {
				t.Fatalf("state = %s, want %s", row.state, tt.want)
			}
			if row.state.blocking() != (tt.want == stateMissing) {
				t.Fatalf("unexpected blocking for %s", row.state)
			}
		})
	}
}

func TestCheckSummaryNamesBlockers(t *testing.T) {
	tools := []checkRow{toolRow(deps.Status{Name: "ffmpeg", Optional: true})}
	if got := checkSummary(tools); got != "Ready" {
		t.Fatalf("optional tools must not block, got %q", got)
	}
	checks := []checkRow{preflightRow(preflight.Result{Name: "Batch root"})}
	if got := checkSummary(tools, checks); got != "Not ready: Batch root" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestRenderCheckSectionColors(t *testing.T) {
	rows := []checkRow{{name: "mkvmerge", state: stateMissing, detail: "not found"}}
	plain := renderCheckSection("Tools", rows, false)
	if !strings.HasPrefix(plain, "Tools\n") || !strings.Contains(plain, "missing") {
		t.Fatalf("unexpected section %q", plain)
	}
	if strings.Contains(plain, "\x1b[") {
		t.Fatal("plain section must not contain escape codes")
	}
	colored := renderCheckSection("Tools", rows, true)
	if !strings.Contains(colored, "\x1b[") {
		t.Fatalf("expected escape codes in %q", colored)
	}
}

func TestShouldColorizeNonTerminal(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}

func TestCheckCommandReportsTools(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"check", "--root", env.dir}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "Tools\n")
	requireContains(t, out, "mkvmerge")
	requireContains(t, out, "Batch root")
	requireContains(t, out, "ready")
	requireNotContains(t, out, "missing")
}

func TestCheckCommandFailsWithoutMuxer(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithMissingTool("mkvmerge"))
	out, _, err := runCLI(t, []string{"check", "--root", env.dir}, env.configPath)
	if err == nil {
		t.Fatal("expected check to fail without mkvmerge")
	}
	requireContains(t, out, "missing")
	requireContains(t, out, "Not ready: mkvmerge")
}
