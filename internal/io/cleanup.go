package io

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
)

// clearDestination removes anything existing at the destination and makes
// sure the destination's parent directories exist.
func (i *Handler) clearDestination(dst string) error {
	if err := i.osHandler.RemoveAll(dst); err != nil {
		return fmt.Errorf("failed to remove existing dst: %w", err)
	}

	if err := i.osHandler.MkdirAll(filepath.Dir(dst), DefaultDirPerms); err != nil {
		return fmt.Errorf("failed to create dst parents: %w", err)
	}

	return nil
}

// cleanTempFile removes an intermediate file after a failed transfer. It is
// a best effort operation, the transfer error is what gets returned.
func (i *Handler) cleanTempFile(path string) {
	if err := i.osHandler.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failure removing temporary file cleaning after failure (skipped)",
			"path", path,
			"err", err,
		)
	}
}
