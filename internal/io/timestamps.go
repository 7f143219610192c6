package io

import (
	"fmt"
	"sort"

	"golang.org/x/sys/unix"
)

// ensureTimestamps restores the access and modification times of all
// elements in a [Report]. The deepest elements are handled first, as
// touching a directory's children would otherwise alter the directory's
// modification time again.
func (i *Handler) ensureTimestamps(report *Report) error {
	elements := make([]*Element, len(report.AnyCreated))
	copy(elements, report.AnyCreated)

	sort.SliceStable(elements, func(a, b int) bool {
		return elements[a].Depth > elements[b].Depth
	})

	for _, e := range elements {
		if err := i.ensureTimestamp(e); err != nil {
			return err
		}
	}

	return nil
}

// ensureTimestamp restores the access and modification times of a single
// [Element], not following a symbolic link.
func (i *Handler) ensureTimestamp(e *Element) error {
	ts := []unix.Timespec{e.Metadata.AccessedAt, e.Metadata.ModifiedAt}

	if e.Metadata.IsSymlink {
		if err := i.unixHandler.LutimesNano(e.DestPath, ts); err != nil {
			return fmt.Errorf("(io-times) failed to set link timestamps: %w", err)
		}

		return nil
	}

	if err := i.unixHandler.UtimesNano(e.DestPath, ts); err != nil {
		return fmt.Errorf("(io-times) failed to set timestamps: %w", err)
	}

	return nil
}
