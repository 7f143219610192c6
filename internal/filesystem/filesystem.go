// Package filesystem implements the read-only side of a tree: classifying a
// real path into a [schema.Node] and gathering the metadata and disk usage
// information that the mutating packages depend on.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/desertwitch/davtree/internal/schema"
	"golang.org/x/sys/unix"
)

// osProvider defines operating system methods needed by the [Handler].
type osProvider interface {
	EvalSymlinks(path string) (string, error)
	Readlink(name string) (string, error)
	Stat(name string) (os.FileInfo, error)
}

// unixProvider defines Unix operating system methods needed by the [Handler].
type unixProvider interface {
	Lstat(path string, stat *unix.Stat_t) error
	Statfs(path string, buf *unix.Statfs_t) error
}

// Handler is the principal implementation for the filesystem services. It is
// stateless apart from its providers and therefore safe for concurrent use.
type Handler struct {
	osHandler   osProvider
	unixHandler unixProvider
}

// NewHandler returns a pointer to a new filesystem [Handler].
func NewHandler(osHandler osProvider, unixHandler unixProvider) *Handler {
	return &Handler{
		osHandler:   osHandler,
		unixHandler: unixHandler,
	}
}

// Classify performs a single stat on a real path and returns a container-type
// [schema.Node] for a directory or a leaf-type [schema.Node] for anything
// else. A non-existing path results in an error wrapping [ErrNotExist].
//
// Containment of the path is not checked here, this is the responsibility of
// the caller.
func (f *Handler) Classify(path string) (schema.Node, error) {
	info, err := f.osHandler.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return schema.Node{}, fmt.Errorf("(fs-classify) %w: %w", ErrNotExist, err)
		}

		return schema.Node{}, fmt.Errorf("(fs-classify) failed to stat: %w", err)
	}

	if info.IsDir() {
		return schema.NewContainer(path), nil
	}

	return schema.NewLeaf(path), nil
}
