package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"  Movie: Part 1  ":  "Movie- Part 1",
		"What? <Really>":     "What Really",
		"AC/DC Live":         "AC-DC Live",
		"":                   "",
		`dir\name*"quoted"|`: "dir-name-quoted",
	}
	for input, want := range tests {
		if got := SanitizeFileName(input); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := map[string]string{
		"/media/Movies":   "media_movies",
		"Season 01":       "season_01",
		"  ":              "unknown",
		"***":             "unknown",
		"already-ok_name": "already-ok_name",
		"a  --  b":        "a_--_b",
	}
	for input, want := range tests {
		if got := SanitizeToken(input); got != want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", input, got, want)
		}
	}
}
