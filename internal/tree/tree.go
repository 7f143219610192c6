// Package tree is the composition root that exposes a real directory as a
// virtual namespace to a file-access protocol layer. It resolves virtual
// paths into [schema.Node] values, and copies or moves whole subtrees, while
// guaranteeing that no path outside of the configured root is ever examined
// or mutated.
//
// A [Tree] is immutable after creation. Any number of goroutines may use the
// same [Tree], and any number of trees with different roots may coexist.
// Every call is independent: nothing is cached between calls.
package tree

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/desertwitch/davtree/internal/filesystem"
	"github.com/desertwitch/davtree/internal/io"
	"github.com/desertwitch/davtree/internal/pathing"
	"github.com/desertwitch/davtree/internal/schema"
	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// osProvider defines all operating system methods the packages composed by
// a [Tree] need.
type osProvider interface {
	CreateTemp(dir, pattern string) (*os.File, error)
	EvalSymlinks(path string) (string, error)
	Lstat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	Open(name string) (*os.File, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Readlink(name string) (string, error)
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	Stat(name string) (os.FileInfo, error)
}

// unixProvider defines all Unix operating system methods the packages
// composed by a [Tree] need.
type unixProvider interface {
	Chmod(path string, mode uint32) error
	Chown(path string, uid, gid int) error
	Lchown(path string, uid, gid int) error
	Lstat(path string, stat *unix.Stat_t) error
	LutimesNano(path string, times []unix.Timespec) error
	Mkdir(path string, mode uint32) error
	Statfs(path string, buf *unix.Statfs_t) error
	Symlink(oldpath, newpath string) error
	UtimesNano(path string, times []unix.Timespec) error
}

// Options are the tunables of a [Tree].
type Options struct {
	// MinFree is the amount of bytes that must remain free on the filesystem
	// of the root after each file copied by a mutation.
	MinFree uint64

	// VerifyHash enables hash verification of copied file contents.
	VerifyHash bool

	// PreserveOwner enables copying of file ownership.
	PreserveOwner bool
}

// DefaultOptions returns the default [Options]. Ownership is preserved only
// when running with root privileges, where it is actually possible.
func DefaultOptions() Options {
	return Options{
		MinFree:       0,
		VerifyHash:    true,
		PreserveOwner: os.Geteuid() == 0,
	}
}

// Tree maps a virtual namespace onto a single root directory.
type Tree struct {
	resolver  *pathing.Resolver
	canonical *pathing.Resolver
	fsHandler *filesystem.Handler
	ioHandler *io.Handler
}

// New returns a pointer to a new [Tree] for a root directory, which must
// exist at the time of creation.
func New(root string, opts Options) (*Tree, error) {
	return newTree(root, opts, &schema.OS{}, &schema.Unix{})
}

func newTree(root string, opts Options, osHandler osProvider, unixHandler unixProvider) (*Tree, error) {
	resolver, err := pathing.NewResolver(root)
	if err != nil {
		return nil, fmt.Errorf("(tree) %w", err)
	}

	fsHandler := filesystem.NewHandler(osHandler, unixHandler)

	node, err := fsHandler.Classify(resolver.Root())
	if err != nil {
		return nil, fmt.Errorf("(tree) %w: %w", ErrRootNotDirectory, err)
	}
	if !node.IsContainer() {
		return nil, fmt.Errorf("(tree) %w: %s", ErrRootNotDirectory, resolver.Root())
	}

	canonicalRoot, err := fsHandler.Canonicalize(resolver.Root())
	if err != nil {
		return nil, fmt.Errorf("(tree) %w", err)
	}

	canonical, err := pathing.NewResolver(canonicalRoot)
	if err != nil {
		return nil, fmt.Errorf("(tree) %w", err)
	}

	ioHandler := io.NewHandler(fsHandler, osHandler, unixHandler, io.Options{
		MinFree:       opts.MinFree,
		VerifyHash:    opts.VerifyHash,
		PreserveOwner: opts.PreserveOwner,
	})

	return &Tree{
		resolver:  resolver,
		canonical: canonical,
		fsHandler: fsHandler,
		ioHandler: ioHandler,
	}, nil
}

// Root returns the absolute root directory of the [Tree].
func (t *Tree) Root() string {
	return t.resolver.Root()
}

// Resolve returns the [schema.Node] for a virtual path. It fails with an
// [Error] of kind [ErrForbidden] when the path resolves outside of the root
// (also by way of a symbolic link), [ErrNotFound] when nothing exists at the
// path, and [ErrIO] otherwise.
func (t *Tree) Resolve(virtualPath string) (schema.Node, error) {
	realPath := t.resolver.Resolve(virtualPath)
	display := pathing.DisplayPath(virtualPath)

	contained, err := t.contains(realPath)
	if err != nil {
		return schema.Node{}, newIOError("failed to access "+display, err)
	}
	if !contained {
		return schema.Node{}, newForbidden("you are not allowed to access " + display)
	}

	node, err := t.fsHandler.Classify(realPath)
	if err != nil {
		if errors.Is(err, filesystem.ErrNotExist) {
			return schema.Node{}, newNotFound("file at location "+display+" not found", err)
		}

		return schema.Node{}, newIOError("failed to access "+display, err)
	}

	return node, nil
}

// Copy recursively copies the virtual source to the virtual destination,
// replacing anything that exists at the destination. It fails with an
// [Error] of kind [ErrForbidden] when either path resolves outside of the
// root, [ErrNotFound] when the source does not exist, and [ErrIO] otherwise.
// A failed copy may have left a partial destination behind.
func (t *Tree) Copy(virtualSrc, virtualDest string) error {
	return t.mutate("copy", t.ioHandler.Copy, virtualSrc, virtualDest)
}

// Move recursively moves the virtual source to the virtual destination,
// replacing anything that exists at the destination. It fails like
// [Tree.Copy]; after success the source no longer exists.
func (t *Tree) Move(virtualSrc, virtualDest string) error {
	return t.mutate("move", t.ioHandler.Move, virtualSrc, virtualDest)
}

// mutate is the shared pipeline of all structural mutations: resolve,
// validate containment, stat the source, mutate.
func (t *Tree) mutate(op string, fn func(src, dst string) (*io.Report, error), virtualSrc, virtualDest string) error {
	src := t.resolver.Resolve(virtualSrc)
	dst := t.resolver.Resolve(virtualDest)
	displaySrc := pathing.DisplayPath(virtualSrc)
	displayDest := pathing.DisplayPath(virtualDest)

	contained, err := t.contains(dst)
	if err != nil {
		return newIOError("failed to access "+displayDest, err)
	}
	if !contained {
		return newForbidden("you are not allowed to " + op + " to " + displayDest)
	}

	contained, err = t.contains(src)
	if err != nil {
		return newIOError("failed to access "+displaySrc, err)
	}
	if !contained {
		return newForbidden("you are not allowed to " + op + " from " + displaySrc)
	}

	exists, err := t.fsHandler.Exists(src)
	if err != nil {
		return newIOError("failed to access "+displaySrc, err)
	}
	if !exists {
		return newNotFound("file at location "+displaySrc+" not found", nil)
	}

	report, err := fn(src, dst)
	if err != nil {
		if errors.Is(err, io.ErrSourceNotExist) {
			return newNotFound("file at location "+displaySrc+" not found", err)
		}

		return newIOError("failed to "+op+" "+displaySrc+" to "+displayDest, err)
	}

	slog.Debug("Tree mutation completed:",
		"op", op,
		"src", displaySrc,
		"dst", displayDest,
		"dirs", len(report.DirsCreated),
		"files", len(report.FilesCreated),
		"symlinks", len(report.SymlinksCreated),
		"size", humanize.IBytes(report.BytesCopied),
		"renamed", report.Renamed,
	)

	return nil
}

// contains reports whether a real path lies within the root, both as written
// and with the symbolic links of its existing part resolved. The lexical
// check comes first, so traversal sequences never reach the filesystem.
func (t *Tree) contains(realPath string) (bool, error) {
	if !t.resolver.IsContained(realPath) {
		return false, nil
	}

	canonicalPath, err := t.fsHandler.Canonicalize(realPath)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return t.canonical.IsContained(canonicalPath), nil
}

// ResolveAsync is the asynchronous variant of [Tree.Resolve].
func (t *Tree) ResolveAsync(virtualPath string) *Future[schema.Node] {
	return goFuture(func() (schema.Node, error) {
		return t.Resolve(virtualPath)
	})
}

// CopyAsync is the asynchronous variant of [Tree.Copy].
func (t *Tree) CopyAsync(virtualSrc, virtualDest string) *Future[struct{}] {
	return goFuture(func() (struct{}, error) {
		return struct{}{}, t.Copy(virtualSrc, virtualDest)
	})
}

// MoveAsync is the asynchronous variant of [Tree.Move].
func (t *Tree) MoveAsync(virtualSrc, virtualDest string) *Future[struct{}] {
	return goFuture(func() (struct{}, error) {
		return struct{}{}, t.Move(virtualSrc, virtualDest)
	})
}

// knownCauses are the failures whose description is safe to show to a
// client, as they carry no path information.
var knownCauses = []error{
	io.ErrSameLocation,
	io.ErrDestInsideSource,
	io.ErrSourceInsideDest,
	io.ErrNotEnoughSpace,
	io.ErrHashMismatch,
	io.ErrRenameExists,
	io.ErrUnsupportedType,
	filesystem.ErrInvalidStats,
}
