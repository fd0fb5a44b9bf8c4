package audio

import (
	"reflect"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		encoder  string
		lossless bool
		ok       bool
	}{
		{"aac", "aac", false, true},
		{"AC3", "ac3", false, true},
		{"mp3", "libmp3lame", false, true},
		{"flac", "flac", true, true},
		{"opus", "libopus", false, true},
		{"Vorbis", "libvorbis", false, true},
		{"dts", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, ok := Lookup(tt.name)
			if ok != tt.ok {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
			if codec.Encoder != tt.encoder || codec.Lossless != tt.lossless {
				t.Fatalf("Lookup(%q) = %+v", tt.name, codec)
			}
		})
	}
}

func TestBitrate(t *testing.T) {
	ac3, _ := Lookup("ac3")
	if got := ac3.Bitrate(""); got != "192k" {
		t.Fatalf("default bitrate = %q, want 192k", got)
	}
	if got := ac3.Bitrate("384k"); got != "384k" {
		t.Fatalf("configured bitrate = %q, want 384k", got)
	}
	flac, _ := Lookup("flac")
	if got := flac.Bitrate("384k"); got != "" {
		t.Fatalf("lossless bitrate = %q, want empty", got)
	}
}

func TestSupported(t *testing.T) {
	want := []string{"aac", "ac3", "flac", "mp3", "opus", "vorbis"}
	if got := Supported(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Supported() = %v, want %v", got, want)
	}
}

func TestMatches(t *testing.T) {
	if !Matches("AC3", "ac3") {
		t.Fatal("expected case-insensitive match")
	}
	if Matches("eac3", "ac3") {
		t.Fatal("expected eac3 not to match ac3")
	}
}
