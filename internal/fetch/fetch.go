// Package fetch downloads and unpacks release artifacts.
package fetch

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
)

// tempPrefix names installer-owned temp directories so interrupted runs can
// be recognized and swept later.
const tempPrefix = "bugster-install-"

// Fetcher downloads release archives over HTTP.
type Fetcher struct {
	client   *http.Client
	progress io.Writer // progress bar destination, io.Discard to silence
}

// New creates a fetcher with a bounded download timeout.
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 10 * time.Minute,
		},
		progress: os.Stderr,
	}
}

// WithProgressWriter redirects progress bar output (for tests).
func (f *Fetcher) WithProgressWriter(w io.Writer) *Fetcher {
	f.progress = w
	return f
}

// Download fetches url into dst, showing a progress bar.
func (f *Fetcher) Download(url, dst string) error {
	resp, err := f.client.Get(url)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: server returned status %d", resp.StatusCode)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	bar := progressbar.NewOptions64(
		resp.ContentLength,
		progressbar.OptionSetWriter(f.progress),
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)

	if _, err := io.Copy(io.MultiWriter(out, bar), resp.Body); err != nil {
		os.Remove(dst)
		return fmt.Errorf("download failed: %w", err)
	}

	return nil
}

// FetchExecutable downloads the archive at url into dir, unpacks it, and
// returns the path of the named executable after marking it runnable.
func (f *Fetcher) FetchExecutable(url, dir, execName string) (string, error) {
	archivePath := filepath.Join(dir, "bugster.zip")
	if err := f.Download(url, archivePath); err != nil {
		return "", err
	}

	if err := Unzip(archivePath, dir); err != nil {
		return "", fmt.Errorf("failed to extract archive: %w", err)
	}

	execPath := filepath.Join(dir, execName)
	if _, err := os.Stat(execPath); err != nil {
		return "", fmt.Errorf("executable not found in archive at %s", execPath)
	}

	if !strings.HasSuffix(execName, ".exe") {
		if err := os.Chmod(execPath, 0755); err != nil {
			return "", fmt.Errorf("failed to mark %s executable: %w", execPath, err)
		}
	}

	return execPath, nil
}

// Unzip extracts archive into destDir, rejecting entries that escape it.
func Unzip(archive, destDir string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	for _, file := range r.File {
		target := filepath.Join(destDir, file.Name)
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}

		if err := extractFile(file, target); err != nil {
			return err
		}
	}

	return nil
}

func extractFile(file *zip.File, target string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to read archive entry %s: %w", file.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to extract %s: %w", file.Name, err)
	}
	return nil
}

// NewTempDir creates an exclusively owned scratch directory for one run.
func NewTempDir() (string, error) {
	dir, err := os.MkdirTemp("", tempPrefix)
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	return dir, nil
}

// SweepStale removes leftover installer temp directories under baseDir that
// are older than maxAge. Interrupted runs never clean up after themselves,
// so the next run does it for them. Errors are ignored; this is best effort.
func SweepStale(baseDir string, maxAge time.Duration) int {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return 0
	}

	removed := 0
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if os.RemoveAll(filepath.Join(baseDir, entry.Name())) == nil {
			removed++
		}
	}
	return removed
}
