package main

import (
	"testing"

	"mkvsmith/internal/media/tracks"
)

func TestParseExternal(t *testing.T) {
	cases := []struct {
		value string
		want  externalInput
	}{
		{"movie.srt", externalInput{Path: "movie.srt"}},
		{"movie.srt:sl", externalInput{Path: "movie.srt", Language: "sl"}},
		{"movie.srt:slv:default", externalInput{Path: "movie.srt", Language: "slv", Default: true}},
		{"movie.srt:DEFAULT", externalInput{Path: "movie.srt", Default: true}},
		{"/data/a:b/movie.srt:hrv", externalInput{Path: "/data/a:b/movie.srt", Language: "hrv"}},
		{"/data/x:y.srt", externalInput{Path: "/data/x:y.srt"}},
	}
	for _, tc := range cases {
		got, err := parseExternal(tc.value)
		if err != nil {
			t.Fatalf("parseExternal(%q): %v", tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("parseExternal(%q) = %+v, want %+v", tc.value, got, tc.want)
		}
	}
	if _, err := parseExternal("  "); err == nil {
		t.Fatal("expected an error for an empty value")
	}
}

func TestParseDefault(t *testing.T) {
	kind, index, err := parseDefault("s:3")
	if err != nil || kind != tracks.Subtitle || index != 3 {
		t.Fatalf("parseDefault(s:3) = %v, %d, %v", kind, index, err)
	}
	kind, index, err = parseDefault("audio:1")
	if err != nil || kind != tracks.Audio || index != 1 {
		t.Fatalf("parseDefault(audio:1) = %v, %d, %v", kind, index, err)
	}
	if _, _, err := parseDefault("s:x"); err == nil {
		t.Fatal("expected non-numeric index to fail")
	}
}

func TestParseIndexedKeepsColons(t *testing.T) {
	index, value, err := parseIndexed("title", "2: Part 1: Intro")
	if err != nil {
		t.Fatalf("parseIndexed: %v", err)
	}
	if index != 2 || value != " Part 1: Intro" {
		t.Fatalf("unexpected result %d %q", index, value)
	}
}

func TestShellQuote(t *testing.T) {
	cases := map[string]string{
		"plain.mkv":    "plain.mkv",
		"s0:yes":       "s0:yes",
		"":             "''",
		"two words":    "'two words'",
		"it's":         `'it'\''s'`,
		"/a/b (1).mkv": "'/a/b (1).mkv'",
	}
	for in, want := range cases {
		if got := shellQuote(in); got != want {
			t.Fatalf("shellQuote(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultEditOutput(t *testing.T) {
	if got := defaultEditOutput("/media/movie.mp4", "_"); got != "/media/_movie.mkv" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := defaultEditOutput("/media/movie.mkv", ""); got != "/media/movie.mkv" {
		t.Fatalf("unexpected output with empty prefix %q", got)
	}
}
