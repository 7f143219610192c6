// Package pathing translates virtual paths of the exposed namespace into real
// paths below a root directory and decides whether a real path is contained
// within that root. It performs no filesystem I/O.
package pathing

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Resolver maps virtual paths onto a single immutable root directory. It is
// safe for concurrent use, as its state never changes after creation.
type Resolver struct {
	root string
}

// NewResolver returns a pointer to a new [Resolver] for the given root. The
// root is made absolute and cleaned; it is not required to exist.
func NewResolver(root string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("(pathing) %w: %w", ErrRootNotAbsolute, err)
	}

	return &Resolver{root: filepath.Clean(abs)}, nil
}

// Root returns the cleaned absolute root of the [Resolver].
func (r *Resolver) Root() string {
	return r.root
}

// Resolve joins the root with the virtual path. Leading and trailing path
// separators are trimmed from the virtual path, trailing ones from the root.
//
// Traversal sequences are not stripped here, they are merely normalized by
// the join. Whether the result is usable must be decided with
// [Resolver.IsContained].
func (r *Resolver) Resolve(virtualPath string) string {
	sep := string(filepath.Separator)

	root := strings.TrimRight(r.root, sep)
	if root == "" {
		root = sep
	}

	return filepath.Join(root, strings.Trim(virtualPath, sep))
}

// IsContained reports whether a real path lies within the root, with the
// root itself counting as contained. The path is normalized before the
// comparison, so ".." elements cannot be used to slip past the prefix check.
func (r *Resolver) IsContained(realPath string) bool {
	if realPath == "" {
		return false
	}

	p := filepath.Clean(realPath)
	if !filepath.IsAbs(p) {
		return false
	}

	if r.root == string(filepath.Separator) {
		return true
	}

	return p == r.root || strings.HasPrefix(p, r.root+string(filepath.Separator))
}

// DisplayPath returns the form of a virtual path that is safe to show to a
// client, which is the trimmed virtual path with a single leading slash. It
// never contains anything from the real filesystem.
func DisplayPath(virtualPath string) string {
	return "/" + strings.Trim(virtualPath, "/")
}
