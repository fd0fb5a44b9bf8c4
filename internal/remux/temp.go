package remux

import (
	"path/filepath"
	"strings"
)

const (
	tempMarker      = ".mkvsmith-"
	transcodeSuffix = tempMarker + "audio.mkv"
	stagingSuffix   = tempMarker + "mux.mkv"
)

// transcodePath names the transcode pass output beside the final output.
func transcodePath(output string) string {
	dir := filepath.Dir(output)
	stem := strings.TrimSuffix(filepath.Base(output), filepath.Ext(output))
	return filepath.Join(dir, "."+stem+transcodeSuffix)
}

// stagingPath names the file mkvmerge writes before it is renamed to output.
func stagingPath(output string) string {
	dir := filepath.Dir(output)
	stem := strings.TrimSuffix(filepath.Base(output), filepath.Ext(output))
	return filepath.Join(dir, "."+stem+stagingSuffix)
}

// IsTempName reports whether name is an intermediate file created by a plan.
func IsTempName(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, ".") &&
		(strings.HasSuffix(base, transcodeSuffix) || strings.HasSuffix(base, stagingSuffix))
}
