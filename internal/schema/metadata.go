package schema

import "golang.org/x/sys/unix"

// Metadata is the filesystem metadata of a single filesystem element, as
// captured with an lstat call. It is meant to be passed by reference.
type Metadata struct {
	Perms      uint32
	UID        uint32
	GID        uint32
	AccessedAt unix.Timespec
	ModifiedAt unix.Timespec
	Size       uint64
	IsDir      bool
	IsRegular  bool
	IsSymlink  bool
	SymlinkTo  string
}
