package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0x42
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteCueSheet writes a cue sheet and its referenced audio files into dir
// and returns the cue path. Audio files are filled with placeholder bytes.
func WriteCueSheet(t testing.TB, dir, name, text string, audio ...string) string {
	t.Helper()

	cuePath := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(cuePath, []byte(text), 0o644); err != nil {
		t.Fatalf("write %s: %v", cuePath, err)
	}
	for _, file := range audio {
		WriteFile(t, filepath.Join(dir, file), 64)
	}
	return cuePath
}
