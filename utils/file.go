package utils

import (
	"os"
	"path/filepath"

	"go.viam.com/utils"
)

// ResolvePath returns path unchanged if it is empty or absolute and otherwise joins it onto dir.
// Config files use it so that relative paths are read relative to the config itself.
func ResolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// RemoveFileNoError will remove the file at the given path if it exists. Any
// errors will be suppressed.
func RemoveFileNoError(path string) {
	utils.UncheckedErrorFunc(func() error {
		if _, err := os.Stat(path); err == nil {
			return os.Remove(path)
		}
		return nil
	})
}
