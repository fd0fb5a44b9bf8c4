package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path with content, making parent directories as needed,
// and returns path. Empty content writes a single placeholder byte so the
// file counts as present to fileutil.Exists.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if content == "" {
		content = "x"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
