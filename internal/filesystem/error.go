package filesystem

import "errors"

var (
	// ErrNotExist is an error that occurs when a path that is to be classified
	// or examined does not exist on the filesystem.
	ErrNotExist = errors.New("path does not exist")

	// ErrInvalidStats is an error that occurs when the operating system
	// returns disk usage statistics that cannot possibly be correct.
	ErrInvalidStats = errors.New("invalid disk usage statistics")
)
