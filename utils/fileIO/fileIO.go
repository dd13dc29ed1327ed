package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Helper function that checks if a file exists.
func FileExists(filename string) bool {
	if fstat, err := os.Stat(filename); err == nil && !fstat.IsDir() {
		return true
	}
	return false
}

// DirExists probes whether a directory exists at the given path. A missing
// path is reported as false with a nil error; any other stat failure, or a
// non-directory at that path, is returned as an error.
func DirExists(path string) (bool, error) {
	fstat, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat '%s': %w", path, err)
	}
	if !fstat.IsDir() {
		return false, fmt.Errorf("'%s' exists but is not a directory", path)
	}
	return true, nil
}

// EnsureDir creates the directory along with any missing parents. It succeeds
// whether or not the directory already exists.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", path, err)
	}
	return nil
}

// ListDir returns "folder/entry" for every immediate child of root/folder,
// in the order the directory is enumerated. A folder that cannot be read,
// including one that does not exist, is an error.
func ListDir(root string, folder string) ([]string, error) {
	dirPath := filepath.Join(root, folder)
	dir, err := os.Open(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory '%s': %w", dirPath, err)
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory '%s': %w", dirPath, err)
	}

	files := make([]string, 0, len(names))
	for _, name := range names {
		files = append(files, folder+"/"+name)
	}
	return files, nil
}
