package textutil

import (
	"strings"
	"unicode"
)

// maxTokenLength bounds tokens embedded in file names.
const maxTokenLength = 40

// SanitizeFileName makes name safe as a single path element. Separators,
// colons, and asterisks become dashes; quotes, wildcards, and redirection
// characters are dropped; whitespace runs collapse to one space. Trailing
// dots are trimmed.
func SanitizeFileName(name string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*':
			b.WriteRune('-')
		case strings.ContainsRune(`?"<>|`, r) || unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			if !space {
				b.WriteRune(' ')
			}
			space = true
			continue
		default:
			b.WriteRune(r)
		}
		space = false
	}
	return strings.TrimRight(strings.TrimSpace(b.String()), ". ")
}

// SanitizeToken converts value to a lowercase token of ASCII letters, digits,
// hyphens, and underscores. Other runs become a single underscore. Returns
// "unknown" when nothing usable remains.
func SanitizeToken(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			if !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
		}
		if b.Len() >= maxTokenLength {
			break
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "unknown"
	}
	return out
}
