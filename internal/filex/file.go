// Package filex contains small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the parent directory of path if it does not exist
// and returns the cleaned path. Used before opening the local database file.
func EnsureParentDir(path string) (string, error) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return path, nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return path, nil
}
