// Package testutil provides helpers shared by the tests of condgen.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// NewTestLogger returns a debug logger that writes to t.Log().
// Records only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// WriteFile writes content to name under dir, creating parent
// directories, and returns the file path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// BookSchema is a schema file declaring the Book and Publisher schemas.
const BookSchema = `schemas:
  - name: Book
    columns:
      - name: id
        type: int
        primary_key: true
        autoincrement: true
      - name: title
        type: string
        indexed: true
        nullable: true
      - name: publisherId
        column: publisher_id
        type: string
        indexed: true
        association: Publisher
  - name: Publisher
    columns:
      - name: name
        type: string
        primary_key: true
`
