// Package identity computes the content digest that joins local artifacts to
// registry version records.
package identity

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Compute streams r through sha512 and returns the hex digest. The digest
// depends on byte content only, never on filename or timestamps.
func Compute(r io.Reader) (string, error) {
	hash := sha512.New()
	if _, err := io.Copy(hash, r); err != nil {
		return "", fmt.Errorf("failed to compute hash: %w", err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// ComputeFile computes the content digest of the file at path.
func ComputeFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()
	return Compute(file)
}
