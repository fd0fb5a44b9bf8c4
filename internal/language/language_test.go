package language

import (
	"reflect"
	"testing"
)

func TestToISO3(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"sl", "slv"},
		{"hr", "hrv"},
		{"sr", "srp"},
		{"bs", "bos"},
		{"slv", "slv"},
		{"scc", "srp"},
		{"slo", "slv"},
		{"slk", "slk"},
		{"sk", "slk"},
		{"fre", "fra"},
		{"ENG", "eng"},
		{"slovene", "slv"},
		{"sr-Latn", "srp"},
		{"tr", "tur"},
		{"xy", "und"},
		{"", "und"},
		{"und", "und"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ToISO3(tt.input); result != tt.expected {
				t.Errorf("ToISO3(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"slv", "Slovenian"},
		{"hr", "Croatian"},
		{"eng", "English"},
		{"tr", "Turkish"},
		{"", "Unknown"},
		{"und", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := DisplayName(tt.input); result != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestExtractFromTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		expected string
	}{
		{"nil", nil, ""},
		{"lowercase key", map[string]string{"language": "SLV"}, "slv"},
		{"uppercase key", map[string]string{"LANGUAGE": "hrv"}, "hrv"},
		{"ietf key", map[string]string{"language_ietf": "sr-Latn"}, "sr-latn"},
		{"blank value", map[string]string{"language": "  "}, ""},
		{"nul padded", map[string]string{"language": "eng\u0000"}, "eng"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ExtractFromTags(tt.tags); result != tt.expected {
				t.Errorf("ExtractFromTags() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestFromTagsDefaultsToUndetermined(t *testing.T) {
	if got := FromTags(nil); got != Undetermined {
		t.Fatalf("FromTags(nil) = %q, want und", got)
	}
	if got := FromTags(map[string]string{"language": "sl"}); got != "slv" {
		t.Fatalf("FromTags(sl) = %q, want slv", got)
	}
}

func TestNormalizeList(t *testing.T) {
	got := NormalizeList([]string{"sl", "SLV", "hr", "", "xy", "srp", "bosnian"})
	want := []string{"slv", "hrv", "srp", "bos"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeList() = %v, want %v", got, want)
	}
	if NormalizeList(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}
