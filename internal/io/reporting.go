package io

import (
	"github.com/desertwitch/davtree/internal/schema"
)

// Element is a single filesystem element that was created at the
// destination of an operation.
type Element struct {
	SourcePath string
	DestPath   string
	Metadata   *schema.Metadata

	// Depth is the distance to the top-level element of the operation.
	Depth int
}

// Report tracks all creations made by an operation.
type Report struct {
	AnyCreated      []*Element
	DirsCreated     []*Element
	FilesCreated    []*Element
	SymlinksCreated []*Element

	// BytesCopied is the sum of all transferred file contents.
	BytesCopied uint64

	// Renamed is set when the operation was completed with a single rename,
	// in which case the top-level element is the only one recorded.
	Renamed bool
}

// addToReport adds an [Element] to a [Report].
func addToReport(r *Report, e *Element) {
	r.AnyCreated = append(r.AnyCreated, e)

	switch {
	case e.Metadata.IsSymlink:
		r.SymlinksCreated = append(r.SymlinksCreated, e)

	case e.Metadata.IsDir:
		r.DirsCreated = append(r.DirsCreated, e)

	default:
		r.FilesCreated = append(r.FilesCreated, e)
	}
}
