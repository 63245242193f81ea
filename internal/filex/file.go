// Package filex holds small filesystem helpers for the CLI.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureSubdDir creates dirName under the working directory if needed and
// returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// PortraitFileName is the local name for a downloaded portrait: the last
// element of the storage key, or "character-<id>" if the key has none.
func PortraitFileName(id int64, key string) string {
	base := filepath.Base(filepath.FromSlash(key))
	if key == "" || base == "." || base == string(filepath.Separator) {
		return fmt.Sprintf("character-%d", id)
	}
	return fmt.Sprintf("character-%d-%s", id, base)
}
