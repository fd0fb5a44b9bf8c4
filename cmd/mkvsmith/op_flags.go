package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"mkvsmith/internal/language"
	"mkvsmith/internal/media/tracks"
	"mkvsmith/internal/ops"
)

// rawOp is one operation flag occurrence, kept in command-line order.
type rawOp struct {
	flag  string
	value string
}

// opValue is a pflag.Value that appends every occurrence of its flag to a
// slice shared by all operation flags.
type opValue struct {
	flag     string
	typeName string
	ops      *[]rawOp
}

var _ pflag.Value = (*opValue)(nil)

func newOpValue(flag, typeName string, sink *[]rawOp) *opValue {
	return &opValue{flag: flag, typeName: typeName, ops: sink}
}

func (v *opValue) Set(value string) error {
	if v.flag == "remove" {
		for _, part := range strings.Split(value, ",") {
			*v.ops = append(*v.ops, rawOp{flag: v.flag, value: strings.TrimSpace(part)})
		}
		return nil
	}
	*v.ops = append(*v.ops, rawOp{flag: v.flag, value: value})
	return nil
}

func (v *opValue) String() string {
	var values []string
	for _, op := range *v.ops {
		if op.flag == v.flag {
			values = append(values, op.value)
		}
	}
	return strings.Join(values, ",")
}

func (v *opValue) Type() string { return v.typeName }

// operation parses the flag value into its queue operation.
func (r rawOp) operation() (ops.Operation, error) {
	switch r.flag {
	case "remove":
		index, err := parseIndex(r.flag, r.value)
		if err != nil {
			return nil, err
		}
		return ops.RemoveTrack{Index: index}, nil
	case "language":
		index, lang, err := parseIndexed(r.flag, r.value)
		if err != nil {
			return nil, err
		}
		return ops.SetLanguage{Index: index, Language: lang}, nil
	case "title":
		index, title, err := parseIndexed(r.flag, r.value)
		if err != nil {
			return nil, err
		}
		return ops.SetTitle{Index: index, Title: title}, nil
	case "transcode":
		index, codec, err := parseIndexed(r.flag, r.value)
		if err != nil {
			return nil, err
		}
		return ops.TranscodeAudio{Index: index, Codec: codec}, nil
	case "default":
		kind, index, err := parseDefault(r.value)
		if err != nil {
			return nil, err
		}
		return ops.SetDefault{Type: kind, Index: index}, nil
	case "add-subtitle", "add-audio":
		in, err := parseExternal(r.value)
		if err != nil {
			return nil, fmt.Errorf("--%s %w", r.flag, err)
		}
		kind := tracks.Audio
		if r.flag == "add-subtitle" {
			kind = tracks.Subtitle
		}
		return ops.AddExternalTrack{Type: kind, Path: in.Path, Language: in.Language, Default: in.Default}, nil
	default:
		return nil, fmt.Errorf("--%s: unknown operation flag", r.flag)
	}
}

// externalInput is a file named on the command line with an optional
// language and default marker.
type externalInput struct {
	Path     string
	Language string
	Default  bool
}

// parseIndexed splits "N:VALUE" at the first colon. VALUE may itself contain
// colons (track titles).
func parseIndexed(flag, value string) (int, string, error) {
	head, rest, ok := strings.Cut(value, ":")
	if !ok {
		return 0, "", fmt.Errorf("--%s %q: expected INDEX:VALUE", flag, value)
	}
	index, err := parseIndex(flag, head)
	if err != nil {
		return 0, "", err
	}
	return index, rest, nil
}

func parseIndex(flag, value string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || index < 0 {
		return 0, fmt.Errorf("--%s %q: track index must be a non-negative integer", flag, value)
	}
	return index, nil
}

// parseDefault parses "TYPE:N" where TYPE is video, audio, subtitle or their
// one-letter forms.
func parseDefault(value string) (tracks.Type, int, error) {
	head, rest, ok := strings.Cut(value, ":")
	if !ok {
		return 0, 0, fmt.Errorf("--default %q: expected TYPE:INDEX", value)
	}
	kind, err := tracks.ParseType(head)
	if err != nil {
		return 0, 0, fmt.Errorf("--default %q: %w", value, err)
	}
	index, err := parseIndex("default", rest)
	if err != nil {
		return 0, 0, err
	}
	return kind, index, nil
}

// parseExternal parses "PATH[:LANG[:default]]" from the right so paths may
// contain colons.
func parseExternal(value string) (externalInput, error) {
	rest := strings.TrimSpace(value)
	var in externalInput
	if i := strings.LastIndex(rest, ":"); i >= 0 && strings.EqualFold(rest[i+1:], "default") {
		in.Default = true
		rest = rest[:i]
	}
	rest, in.Language = splitLanguage(rest)
	in.Path = rest
	if in.Path == "" {
		return externalInput{}, fmt.Errorf("%q: missing file path", value)
	}
	return in, nil
}

// splitLanguage strips a trailing ":LANG" when LANG names a language.
func splitLanguage(value string) (string, string) {
	i := strings.LastIndex(value, ":")
	if i < 0 {
		return value, ""
	}
	candidate := value[i+1:]
	if !looksLikeLanguage(candidate) {
		return value, ""
	}
	return value[:i], candidate
}

func looksLikeLanguage(value string) bool {
	if value == "" || strings.ContainsAny(value, `/\. `) {
		return false
	}
	return language.ToISO3(value) != language.Undetermined
}
