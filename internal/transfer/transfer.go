// Package transfer performs artifact downloads, replacements, and removals
// against the plugin directory.
package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/craftpkg/craftpkg/internal/inventory"
	"github.com/craftpkg/craftpkg/pkg/logger"
	"github.com/craftpkg/craftpkg/pkg/registry"
)

const copyChunkSize = 8192

// ProgressFunc receives transfer progress after each chunk. total is -1 when
// the size is unknown.
type ProgressFunc func(filename string, written, total int64)

// TransferError indicates a fetch or write failure for one artifact. The
// partially written destination is always cleaned up before this surfaces.
type TransferError struct {
	Filename string
	Err      error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer of %s failed: %v", e.Filename, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// NotFoundError indicates no local artifact matched a removal request.
type NotFoundError struct {
	Pattern string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unable to locate package %s", e.Pattern)
}

// AmbiguousError indicates a removal request matched more than one local
// artifact. Nothing is deleted; the caller must disambiguate.
type AmbiguousError struct {
	Pattern    string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("multiple candidates for %s: %s", e.Pattern, strings.Join(e.Candidates, ", "))
}

// Manager streams artifacts from the registry CDN into the plugin directory.
type Manager struct {
	fetcher   registry.HTTPFetcher
	userAgent string
	progress  ProgressFunc
}

// NewManager creates a transfer manager. progress may be nil.
func NewManager(fetcher registry.HTTPFetcher, userAgent string, progress ProgressFunc) *Manager {
	return &Manager{fetcher: fetcher, userAgent: userAgent, progress: progress}
}

// Install streams file into dir under its registry filename. The download
// goes to a .partial sibling first and is renamed into place once complete,
// so a failed transfer never leaves a half-written artifact behind.
func (m *Manager) Install(ctx context.Context, dir string, file registry.File) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return &TransferError{Filename: file.Filename, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.URL, nil)
	if err != nil {
		return &TransferError{Filename: file.Filename, Err: err}
	}
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.fetcher.Do(req)
	if err != nil {
		return &TransferError{Filename: file.Filename, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &TransferError{Filename: file.Filename, Err: fmt.Errorf("download failed with status %d", resp.StatusCode)}
	}

	dest := filepath.Join(dir, file.Filename)
	partial := dest + ".partial"

	out, err := os.Create(partial) // #nosec G304 -- dest derives from the configured plugin directory
	if err != nil {
		return &TransferError{Filename: file.Filename, Err: err}
	}

	total := file.Size
	if total == 0 {
		total = -1
	}

	written, err := m.copyWithProgress(out, resp.Body, file.Filename, total)
	if err == nil && total > 0 && written != total {
		err = fmt.Errorf("truncated download: got %d bytes, want %d", written, total)
	}
	if err != nil {
		_ = out.Close()
		_ = os.Remove(partial)
		return &TransferError{Filename: file.Filename, Err: err}
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(partial)
		return &TransferError{Filename: file.Filename, Err: err}
	}
	if err := os.Rename(partial, dest); err != nil {
		_ = os.Remove(partial)
		return &TransferError{Filename: file.Filename, Err: err}
	}

	logger.Info("artifact installed",
		logger.String("filename", file.Filename),
		logger.String("dir", dir))
	return nil
}

// Upgrade replaces oldFilename with the given file. The new artifact is
// fetched and renamed into place first; the old one is only removed once the
// replacement is durably on disk, so a failed fetch leaves the old version
// untouched.
func (m *Manager) Upgrade(ctx context.Context, dir, oldFilename string, file registry.File) error {
	if err := m.Install(ctx, dir, file); err != nil {
		return err
	}

	if oldFilename == file.Filename {
		return nil
	}

	oldPath := filepath.Join(dir, oldFilename)
	if _, err := os.Stat(oldPath); os.IsNotExist(err) {
		return nil
	}
	if err := os.Remove(oldPath); err != nil {
		return &TransferError{Filename: oldFilename, Err: fmt.Errorf("failed to remove old artifact: %w", err)}
	}

	logger.Info("artifact upgraded",
		logger.String("old", oldFilename),
		logger.String("new", file.Filename))
	return nil
}

// Remove deletes the single artifact whose filename contains pattern,
// case-insensitively. Zero matches is NotFoundError; more than one is
// AmbiguousError and nothing is deleted.
func (m *Manager) Remove(dir, pattern string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Pattern: pattern}
		}
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	needle := strings.ToLower(pattern)
	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), inventory.Extension) {
			continue
		}
		if strings.Contains(strings.ToLower(name), needle) {
			candidates = append(candidates, name)
		}
	}

	switch len(candidates) {
	case 0:
		return "", &NotFoundError{Pattern: pattern}
	case 1:
		target := candidates[0]
		if err := os.Remove(filepath.Join(dir, target)); err != nil {
			return "", fmt.Errorf("failed to remove %s: %w", target, err)
		}
		logger.Info("artifact removed", logger.String("filename", target))
		return target, nil
	default:
		return "", &AmbiguousError{Pattern: pattern, Candidates: candidates}
	}
}

func (m *Manager) copyWithProgress(dst io.Writer, src io.Reader, filename string, total int64) (int64, error) {
	buf := make([]byte, copyChunkSize)
	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return written, writeErr
			}
			written += int64(n)
			if m.progress != nil {
				m.progress(filename, written, total)
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}
