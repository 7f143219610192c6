package tree

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

var (
	// ErrForbidden is the kind of an [Error] that occurs when a path resolves
	// to a location outside of the tree's root. It is a permanent rejection.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is the kind of an [Error] that occurs when the target of a
	// resolution or the source of a mutation does not exist.
	ErrNotFound = errors.New("not found")

	// ErrIO is the kind of an [Error] that occurs on any other filesystem
	// failure. A failed recursive mutation may have left partial state.
	ErrIO = errors.New("i/o error")

	// ErrRootNotDirectory occurs when a [Tree] is to be created for a root
	// that does not exist or is not a directory.
	ErrRootNotDirectory = errors.New("root is not a directory")
)

// Error is the error type returned by all [Tree] operations. Its message is
// built from virtual paths only and never discloses a real path; the
// underlying cause remains reachable through [errors.Unwrap] for callers
// that need to inspect it.
type Error struct {
	// Kind is one of [ErrForbidden], [ErrNotFound] or [ErrIO].
	Kind error

	// Msg is the client-safe description of the failure.
	Msg string

	cause error
}

// Error returns the client-safe message. For [ErrIO] errors the description
// of the underlying system error is appended, stripped of any paths.
func (e *Error) Error() string {
	if e.cause == nil || e.Kind != ErrIO { //nolint:errorlint,err113
		return e.Msg
	}

	return e.Msg + ": " + describe(e.cause)
}

// Is allows matching an [Error] against its kind with [errors.Is].
func (e *Error) Is(target error) bool {
	return target == e.Kind //nolint:errorlint,err113
}

// Unwrap returns the underlying cause of the [Error].
func (e *Error) Unwrap() error {
	return e.cause
}

func newForbidden(msg string) *Error {
	return &Error{Kind: ErrForbidden, Msg: msg}
}

func newNotFound(msg string, cause error) *Error {
	return &Error{Kind: ErrNotFound, Msg: msg, cause: cause}
}

func newIOError(msg string, cause error) *Error {
	return &Error{Kind: ErrIO, Msg: msg, cause: cause}
}

// describe returns a path-free description of an error: the system error
// number's text when there is one, the innermost known sentinel otherwise.
func describe(err error) string {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno.Error()
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Err.Error()
	}

	for _, known := range knownCauses {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "operation failed"
}
