// Package fileutil writes generated files with consistent permissions.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadableByAll is the file permission mode for generated source code
// files intended to be read by build tools and other users.
const ReadableByAll os.FileMode = 0o644

// DirReadableByAll is the permission mode for directories holding generated files.
const DirReadableByAll os.FileMode = 0o755

// WriteGenerated writes data to path, creating missing parent directories.
// A symlink at path is refused so output cannot be redirected.
func WriteGenerated(path string, data []byte) error {
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("fileutil: refusing to write to symlink: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), DirReadableByAll); err != nil {
		return fmt.Errorf("fileutil: creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, ReadableByAll); err != nil {
		return fmt.Errorf("fileutil: writing %s: %w", path, err)
	}
	return nil
}
