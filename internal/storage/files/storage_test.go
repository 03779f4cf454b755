package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndRemove(t *testing.T) {
	t.Parallel()

	storage, err := New(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	name, err := storage.Save("photo.PNG", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Fatalf("expected lowercased extension, got %q", name)
	}

	data, err := os.ReadFile(filepath.Join(storage.Dir(), name))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Fatalf("unexpected content: %q", data)
	}

	if err := storage.Remove(name); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := storage.Remove(name); err != nil {
		t.Fatalf("Remove of missing file must not fail: %v", err)
	}
}

func TestSaveStripsHostilePath(t *testing.T) {
	t.Parallel()

	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	name, err := storage.Save("../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if strings.Contains(name, "/") || strings.Contains(name, "..") {
		t.Fatalf("stored name leaks path segments: %q", name)
	}
}
