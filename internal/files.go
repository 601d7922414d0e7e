package internal

import (
	"os"
	"path/filepath"
)

// FullPathname returns an absolute version of filename, resolved
// against the current working directory.
func FullPathname(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		return filename, nil
	}
	wd, err := os.Getwd()
	return filepath.Join(wd, filename), err
}
