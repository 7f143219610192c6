package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// Canonicalize returns the path with all symbolic links of its existing
// part resolved. Trailing elements that do not exist (yet) are joined back
// onto the resolved part unchanged, so the result is where a file created at
// the path would actually end up.
func (f *Handler) Canonicalize(path string) (string, error) {
	existing := filepath.Clean(path)

	var missing []string

	for {
		resolved, err := f.osHandler.EvalSymlinks(existing)
		if err == nil {
			return filepath.Join(append([]string{resolved}, missing...)...), nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("(fs-canonical) failed to eval symlinks: %w", err)
		}

		parent := filepath.Dir(existing)
		if parent == existing {
			return "", fmt.Errorf("(fs-canonical) failed to eval symlinks: %w", err)
		}

		missing = append([]string{filepath.Base(existing)}, missing...)
		existing = parent
	}
}
