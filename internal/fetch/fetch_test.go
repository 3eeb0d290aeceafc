package fetch

import (
	"archive/zip"
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// makeZip builds an in-memory zip with the given file entries.
func makeZip(t *testing.T, files map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := f.Write(content); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func TestDownload(t *testing.T) {
	content := []byte("binary payload")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(content)
	}))
	defer server.Close()

	dst := filepath.Join(t.TempDir(), "artifact")
	f := New().WithProgressWriter(io.Discard)

	if err := f.Download(server.URL, dst); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read downloaded file: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("downloaded content = %q, want %q", got, content)
	}
}

func TestDownloadHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dst := filepath.Join(t.TempDir(), "artifact")
	f := New().WithProgressWriter(io.Discard)

	if err := f.Download(server.URL, dst); err == nil {
		t.Error("Download() error = nil, want error for 404")
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("destination file should not exist after failed download")
	}
}

func TestFetchExecutable(t *testing.T) {
	zipData := makeZip(t, map[string][]byte{
		"bugster": []byte("#!/bin/sh\necho bugster\n"),
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(zipData)
	}))
	defer server.Close()

	dir := t.TempDir()
	f := New().WithProgressWriter(io.Discard)

	execPath, err := f.FetchExecutable(server.URL, dir, "bugster")
	if err != nil {
		t.Fatalf("FetchExecutable() error = %v", err)
	}

	info, err := os.Stat(execPath)
	if err != nil {
		t.Fatalf("stat %s: %v", execPath, err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0111 == 0 {
		t.Errorf("executable bit not set on %s (mode %v)", execPath, info.Mode())
	}
}

func TestFetchExecutableMissingBinary(t *testing.T) {
	zipData := makeZip(t, map[string][]byte{
		"README.txt": []byte("not a binary"),
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(zipData)
	}))
	defer server.Close()

	f := New().WithProgressWriter(io.Discard)

	if _, err := f.FetchExecutable(server.URL, t.TempDir(), "bugster"); err == nil {
		t.Error("FetchExecutable() error = nil, want missing executable error")
	}
}

func TestUnzipRejectsTraversal(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("../escape")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("evil")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	archive := filepath.Join(dir, "bad.zip")
	if err := os.WriteFile(archive, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(dir, "out")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}

	if err := Unzip(archive, dest); err == nil {
		t.Error("Unzip() error = nil, want traversal rejection")
	}
}

func TestSweepStale(t *testing.T) {
	base := t.TempDir()

	stale := filepath.Join(base, tempPrefix+"old")
	fresh := filepath.Join(base, tempPrefix+"new")
	other := filepath.Join(base, "unrelated-dir")
	for _, dir := range []string{stale, fresh, other} {
		if err := os.Mkdir(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}

	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}

	removed := SweepStale(base, 24*time.Hour)
	if removed != 1 {
		t.Errorf("SweepStale() = %d, want 1", removed)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale dir should have been removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh dir should have been kept")
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("unrelated dir should have been kept")
	}
}
