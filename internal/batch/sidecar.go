package batch

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const subtitleExt = ".srt"

// FindSidecar locates the external subtitle belonging to mediaPath. The exact
// stem with each configured suffix is tried first, in order; then any .srt in
// the same directory whose stem is the media stem or starts with the stem
// followed by "." or "_". Returns "" when nothing matches.
func FindSidecar(mediaPath string, suffixes []string) string {
	dir := filepath.Dir(mediaPath)
	stem := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))

	for _, suffix := range suffixes {
		candidate := filepath.Join(dir, stem+suffix)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.EqualFold(filepath.Ext(entry.Name()), subtitleExt) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		nameStem := strings.TrimSuffix(name, filepath.Ext(name))
		if nameStem == stem || strings.HasPrefix(nameStem, stem+".") || strings.HasPrefix(nameStem, stem+"_") {
			return filepath.Join(dir, name)
		}
	}
	return ""
}
