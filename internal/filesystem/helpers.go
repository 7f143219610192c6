package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
)

// Exists is a helper function checking if a path already exists. A
// non-existing path is not an error, any other stat failure is.
func (f *Handler) Exists(path string) (bool, error) {
	if _, err := f.osHandler.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("(fs-exists) failed to stat: %w", err)
	}

	return true, nil
}

// handleSize converts a int64 filesize to a uint64 filesize (with sizes < 0 becoming 0).
func handleSize(size int64) uint64 {
	if size < 0 {
		return 0
	}

	return uint64(size)
}
