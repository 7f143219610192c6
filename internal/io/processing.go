package io

import (
	"fmt"
	"path/filepath"

	"github.com/desertwitch/davtree/internal/schema"
)

// copyElement copies a single filesystem element and, for a directory, all of
// its descendants. Symbolic links are recreated and never followed.
func (i *Handler) copyElement(src, dst string, metadata *schema.Metadata, depth int, report *Report) error {
	e := &Element{
		SourcePath: src,
		DestPath:   dst,
		Metadata:   metadata,
		Depth:      depth,
	}

	switch {
	case metadata.IsSymlink:
		return i.processSymlink(e, report)

	case metadata.IsDir:
		return i.processDirectory(e, report)

	case metadata.IsRegular:
		return i.processFile(e, report)

	default:
		return fmt.Errorf("(io-element) %w: %s", ErrUnsupportedType, src)
	}
}

// processDirectory is the principal method for copying a directory. The
// directory is created owner-writable so that its descendants can be copied
// into it, its real permissions are applied after all descendants are done.
func (i *Handler) processDirectory(e *Element, report *Report) error {
	if err := i.unixHandler.Mkdir(e.DestPath, 0o700); err != nil {
		return fmt.Errorf("(io-dir) failed to mkdir: %w", err)
	}
	addToReport(report, e)

	entries, err := i.osHandler.ReadDir(e.SourcePath)
	if err != nil {
		return fmt.Errorf("(io-dir) failed to readdir: %w", err)
	}

	for _, entry := range entries {
		childSrc := filepath.Join(e.SourcePath, entry.Name())
		childDst := filepath.Join(e.DestPath, entry.Name())

		metadata, err := i.fsHandler.GetMetadata(childSrc)
		if err != nil {
			return fmt.Errorf("(io-dir) failed to get metadata: %w", err)
		}

		if err := i.copyElement(childSrc, childDst, metadata, e.Depth+1, report); err != nil {
			return err
		}
	}

	if err := i.ensurePermissions(e.DestPath, e.Metadata); err != nil {
		return fmt.Errorf("(io-dir) failed to ensure permissions: %w", err)
	}

	return nil
}

// processSymlink is the principal method for copying a symbolic link. The
// link is recreated with the very same target, relative or absolute.
func (i *Handler) processSymlink(e *Element, report *Report) error {
	if err := i.unixHandler.Symlink(e.Metadata.SymlinkTo, e.DestPath); err != nil {
		return fmt.Errorf("(io-syml) failed to symlink: %w", err)
	}

	if err := i.ensureLinkPermissions(e.DestPath, e.Metadata); err != nil {
		return fmt.Errorf("(io-syml) failed to ensure permissions: %w", err)
	}

	addToReport(report, e)

	return nil
}
