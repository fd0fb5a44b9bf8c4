package batch

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"mkvsmith/internal/config"
	"mkvsmith/internal/logging"
	"mkvsmith/internal/remux"
	"mkvsmith/internal/services"
)

// Discovery partitions the files under a root.
type Discovery struct {
	Containers []string
	Videos     []string
}

// Discover walks root recursively and collects Matroska containers and
// convertible video files, each in lexical walk order. Intermediate files left
// by an interrupted run are ignored. Unreadable subdirectories are logged and
// skipped.
func Discover(root string, isVideo func(ext string) bool, logger *slog.Logger) (Discovery, error) {
	var found Discovery
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logging.WarnWithContext(logger, "directory skipped", "discover_dir_failed",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "files below this directory are not processed"),
				logging.String(logging.FieldErrorHint, "check directory permissions"),
			)
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if remux.IsTempName(d.Name()) {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		switch {
		case ext == config.ContainerExtension:
			found.Containers = append(found.Containers, path)
		case isVideo != nil && isVideo(ext):
			found.Videos = append(found.Videos, path)
		}
		return nil
	})
	if err != nil {
		return Discovery{}, services.Wrap(services.ErrFileSystem, "batch", "discover", root, err)
	}
	return found, nil
}

// containerPathFor names the container built from a bare video file.
func containerPathFor(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + config.ContainerExtension
}
