package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestLocal(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/files")
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}
	return s
}

func TestLocalPutAndExists(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()
	data := "hello local storage"

	err := s.Put(ctx, "photos/2026/08/test.jpg", strings.NewReader(data), int64(len(data)), "image/jpeg", nil)
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	ok, err := s.Exists(ctx, "photos/2026/08/test.jpg")
	if err != nil || !ok {
		t.Fatalf("Exists() = %v, %v, want true", ok, err)
	}

	stored, err := os.ReadFile(filepath.Join(s.basePath, "photos/2026/08/test.jpg"))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(stored) != data {
		t.Errorf("stored %q, want %q", stored, data)
	}
}

func TestLocalPutReportsProgress(t *testing.T) {
	s := newTestLocal(t)
	data := strings.Repeat("x", 100)

	var last Progress
	err := s.Put(context.Background(), "p.bin", strings.NewReader(data), int64(len(data)), "application/octet-stream", func(p Progress) {
		if p.BytesTransferred < last.BytesTransferred {
			t.Errorf("progress went backwards: %d < %d", p.BytesTransferred, last.BytesTransferred)
		}
		last = p
	})
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if last.BytesTransferred != int64(len(data)) {
		t.Errorf("final transferred = %d, want %d", last.BytesTransferred, len(data))
	}
	if last.TotalBytes != int64(len(data)) {
		t.Errorf("total = %d, want %d", last.TotalBytes, len(data))
	}
}

func TestLocalDelete(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	if err := s.Put(ctx, "doomed.jpg", strings.NewReader("bye"), 3, "image/jpeg", nil); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Delete(ctx, "doomed.jpg"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	ok, _ := s.Exists(ctx, "doomed.jpg")
	if ok {
		t.Error("file still exists after delete")
	}

	// Deleting a missing file is not an error
	if err := s.Delete(ctx, "never-existed.jpg"); err != nil {
		t.Errorf("Delete() missing file error = %v", err)
	}
}

func TestLocalGetURL(t *testing.T) {
	s := newTestLocal(t)
	got := s.GetURL("photos/a.jpg")
	want := "http://localhost:8080/files/photos/a.jpg"
	if got != want {
		t.Errorf("GetURL() = %q, want %q", got, want)
	}
}
