// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"os"
	"path/filepath"
)

// ResolvePath returns path if it exists. Otherwise, if a file with the
// same base name exists in assetsDir, that path is returned. When
// neither exists path is returned unchanged and Extract reports it as
// not found.
func ResolvePath(path, assetsDir string) string {
	if _, err := os.Stat(path); err == nil || assetsDir == "" {
		return path
	}
	alt := filepath.Join(assetsDir, filepath.Base(path))
	if _, err := os.Stat(alt); err == nil {
		return alt
	}
	return path
}
