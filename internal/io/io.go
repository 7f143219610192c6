// Package io implements the mutating side of a tree: recursive copying and
// moving of whole filesystem subtrees, replacing whatever existed at the
// destination beforehand.
//
// All paths handed to this package are real paths that the caller has
// already validated for containment. Operations are best effort and not
// transactional: when a failure occurs in the middle of a subtree, whatever
// was created up to that point stays on disk.
package io

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertwitch/davtree/internal/schema"
	"golang.org/x/sys/unix"
)

const (
	// DefaultDirPerms are the permissions for destination parent directories
	// that need to be created and have no source counterpart.
	DefaultDirPerms = 0o755

	// TempSuffix ends the name of an intermediate file whose content is still
	// being transferred.
	TempSuffix = ".davtree"
)

// fsProvider defines filesystem methods needed by the [Handler].
type fsProvider interface {
	GetMetadata(path string) (*schema.Metadata, error)
	HasEnoughFreeSpace(path string, minFree uint64, fileSize uint64) (bool, error)
}

// osProvider defines operating system methods needed by the [Handler].
type osProvider interface {
	CreateTemp(dir, pattern string) (*os.File, error)
	MkdirAll(path string, perm os.FileMode) error
	Open(name string) (*os.File, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	Lstat(name string) (os.FileInfo, error)
}

// unixProvider defines Unix operating system methods needed by the [Handler].
type unixProvider interface {
	Chmod(path string, mode uint32) error
	Chown(path string, uid, gid int) error
	Lchown(path string, uid, gid int) error
	Mkdir(path string, mode uint32) error
	Symlink(oldpath, newpath string) error
	UtimesNano(path string, times []unix.Timespec) error
	LutimesNano(path string, times []unix.Timespec) error
}

// Options are the tunables of a [Handler].
type Options struct {
	// MinFree is the amount of bytes that must remain free on the destination
	// filesystem after each file transfer. Zero disables the check.
	MinFree uint64

	// VerifyHash enables BLAKE3 hashing of both sides of each file transfer.
	VerifyHash bool

	// PreserveOwner enables copying of file ownership, which usually requires
	// the process to run with elevated privileges.
	PreserveOwner bool
}

// Handler is the principal implementation for the IO services. It holds no
// mutable state and is safe for concurrent use, although concurrent
// operations on overlapping subtrees are not coordinated.
type Handler struct {
	fsHandler   fsProvider
	osHandler   osProvider
	unixHandler unixProvider
	opts        Options
}

// NewHandler returns a pointer to a new IO [Handler].
func NewHandler(fsHandler fsProvider, osHandler osProvider, unixHandler unixProvider, opts Options) *Handler {
	return &Handler{
		fsHandler:   fsHandler,
		osHandler:   osHandler,
		unixHandler: unixHandler,
		opts:        opts,
	}
}

// Copy recursively duplicates the source subtree (or single element) to the
// destination. An existing destination is removed first, so the destination
// ends up as an exact replica of the source and never as a merge of both.
//
// The returned [Report] lists everything that was created, also when an
// error is returned after a partial copy.
func (i *Handler) Copy(src, dst string) (*Report, error) {
	metadata, err := i.prepare(src, dst)
	if err != nil {
		return nil, fmt.Errorf("(io-copy) %w", err)
	}

	report := &Report{}

	if err := i.copyElement(src, dst, metadata, 0, report); err != nil {
		return report, fmt.Errorf("(io-copy) %w", err)
	}

	if err := i.ensureTimestamps(report); err != nil {
		return report, fmt.Errorf("(io-copy) %w", err)
	}

	return report, nil
}

// Move recursively relocates the source subtree (or single element) to the
// destination, replacing an existing destination. A rename is attempted
// first; across filesystem boundaries the subtree is copied and the source
// removed afterwards.
//
// The existing destination is removed before the rename is attempted, so it
// is gone also when the rename then fails. As with [Handler.Copy], a failed
// cross-device copy leaves its partial state behind.
func (i *Handler) Move(src, dst string) (*Report, error) {
	metadata, err := i.prepare(src, dst)
	if err != nil {
		return nil, fmt.Errorf("(io-move) %w", err)
	}

	report := &Report{}

	err = i.osHandler.Rename(src, dst)
	if err == nil {
		report.Renamed = true
		addToReport(report, &Element{SourcePath: src, DestPath: dst, Metadata: metadata})

		return report, nil
	}
	if !errors.Is(err, unix.EXDEV) {
		return nil, fmt.Errorf("(io-move) failed to rename: %w", err)
	}

	if err := i.copyElement(src, dst, metadata, 0, report); err != nil {
		return report, fmt.Errorf("(io-move) failed cross-device copy: %w", err)
	}

	if err := i.ensureTimestamps(report); err != nil {
		return report, fmt.Errorf("(io-move) %w", err)
	}

	if err := i.osHandler.RemoveAll(src); err != nil {
		return report, fmt.Errorf("(io-move) failed to remove src after copy: %w", err)
	}

	return report, nil
}

// prepare checks the relation of source and destination, captures the source
// metadata and clears the way for the destination. Nothing on the filesystem
// is modified unless all checks have passed.
func (i *Handler) prepare(src, dst string) (*schema.Metadata, error) {
	if err := checkLocations(src, dst); err != nil {
		return nil, err
	}

	metadata, err := i.fsHandler.GetMetadata(src)
	if err != nil {
		if errors.Is(err, unix.ENOENT) {
			return nil, fmt.Errorf("%w: %w", ErrSourceNotExist, err)
		}

		return nil, fmt.Errorf("failed to get src metadata: %w", err)
	}

	if err := i.clearDestination(dst); err != nil {
		return nil, err
	}

	return metadata, nil
}

// checkLocations refuses source and destination combinations where the
// removal of the destination or the recursion into the source would
// destroy or endlessly repeat the source itself.
func checkLocations(src, dst string) error {
	src = filepath.Clean(src)
	dst = filepath.Clean(dst)
	sep := string(filepath.Separator)

	switch {
	case src == dst:
		return ErrSameLocation

	case strings.HasPrefix(dst, strings.TrimSuffix(src, sep)+sep):
		return ErrDestInsideSource

	case strings.HasPrefix(src, strings.TrimSuffix(dst, sep)+sep):
		return ErrSourceInsideDest
	}

	return nil
}
