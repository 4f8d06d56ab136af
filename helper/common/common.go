package common

import (
	"fmt"
	"os"
	"path/filepath"
)

// SetupDataDir creates the data directory if it is missing and checks
// that files can be created in it
func SetupDataDir(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data dir: (%s): %w", dataDir, err)
	}

	probe, err := os.CreateTemp(dataDir, ".probe-*")
	if err != nil {
		return fmt.Errorf("data dir (%s) is not writable: %w", dataDir, err)
	}

	_ = probe.Close()

	return os.Remove(probe.Name())
}

// FileExists checks if the file at the specified path exists
func FileExists(filePath string) bool {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return false
	}

	return !fileInfo.IsDir()
}

// DirEntries lists the names of the regular files in dir matching the glob pattern
func DirEntries(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}

	files := matches[:0]

	for _, m := range matches {
		if FileExists(m) {
			files = append(files, m)
		}
	}

	return files, nil
}
