package tool

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNextAvailablePath(t *testing.T) {
	dir := t.TempDir()

	got := NextAvailablePath(dir, "file.txt")
	if got != filepath.Join(dir, "file.txt") {
		t.Errorf("expected untouched name, got %s", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "file.txt"), []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	got = NextAvailablePath(dir, "file.txt")
	if got != filepath.Join(dir, "file-2.txt") {
		t.Errorf("expected file-2.txt, got %s", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "file-2.txt"), []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}
	got = NextAvailablePath(dir, "file.txt")
	if got != filepath.Join(dir, "file-3.txt") {
		t.Errorf("expected file-3.txt, got %s", got)
	}
}

func TestCopyWithContext(t *testing.T) {
	var dst bytes.Buffer
	n, err := CopyWithContext(context.Background(), &dst, strings.NewReader("stream data"))
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len("stream data")) || dst.String() != "stream data" {
		t.Errorf("expected full copy, wrote %d bytes: %q", n, dst.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CopyWithContext(ctx, &dst, strings.NewReader("more")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGetFileInfoFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("plain text content"), 0o644); err != nil {
		t.Fatal(err)
	}

	name, size, mimeType, err := GetFileInfoFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if name != "doc.txt" {
		t.Errorf("expected doc.txt, got %s", name)
	}
	if size != 18 {
		t.Errorf("expected 18 bytes, got %d", size)
	}
	if mimeType == "" {
		t.Error("expected a sniffed MIME type")
	}

	if _, _, _, err := GetFileInfoFromPath(dir); err == nil {
		t.Error("expected error for directory path")
	}
}
