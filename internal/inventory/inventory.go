// Package inventory enumerates locally installed plugin artifacts.
package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/craftpkg/craftpkg/internal/identity"
)

// Extension is the filename suffix marking a file as a managed artifact.
// Files outside this extension are invisible to the inventory.
const Extension = ".jar"

// Artifact is one locally installed plugin file.
type Artifact struct {
	Filename string
	Hash     string
}

// IOError records a file or directory that could not be read during a scan.
type IOError struct {
	Filename string
	Err      error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Filename, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one directory scan. Artifacts are ordered by
// filename; Skipped holds per-file read failures (the scan does not abort on
// the first unreadable file).
type Result struct {
	Artifacts []Artifact
	Skipped   []*IOError
}

// Scan enumerates artifacts in dir, non-recursively. A missing directory is
// an empty inventory, not an error. Two files with identical content are both
// retained as distinct artifacts.
func Scan(dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &Result{}, nil
		}
		return nil, &IOError{Filename: dir, Err: err}
	}

	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), Extension) {
			continue
		}

		hash, err := identity.ComputeFile(filepath.Join(dir, name))
		if err != nil {
			result.Skipped = append(result.Skipped, &IOError{Filename: name, Err: err})
			continue
		}
		result.Artifacts = append(result.Artifacts, Artifact{Filename: name, Hash: hash})
	}
	return result, nil
}
