package filesystem

import (
	"fmt"

	"github.com/desertwitch/davtree/internal/schema"
	"golang.org/x/sys/unix"
)

// GetMetadata returns [schema.Metadata] for a path. Symbolic links are not
// followed, their own metadata and target are recorded instead.
func (f *Handler) GetMetadata(path string) (*schema.Metadata, error) {
	var stat unix.Stat_t

	if err := f.unixHandler.Lstat(path, &stat); err != nil {
		return nil, fmt.Errorf("(fs-metadata) failed to lstat: %w", err)
	}

	metadata := &schema.Metadata{
		Perms:      uint32(stat.Mode) & 0o7777, //nolint:unconvert
		UID:        stat.Uid,
		GID:        stat.Gid,
		AccessedAt: stat.Atim,
		ModifiedAt: stat.Mtim,
		Size:       handleSize(stat.Size),
		IsDir:      (stat.Mode & unix.S_IFMT) == unix.S_IFDIR,
		IsRegular:  (stat.Mode & unix.S_IFMT) == unix.S_IFREG,
		IsSymlink:  (stat.Mode & unix.S_IFMT) == unix.S_IFLNK,
	}

	if metadata.IsSymlink {
		symlinkTarget, err := f.osHandler.Readlink(path)
		if err != nil {
			return nil, fmt.Errorf("(fs-metadata) failed to readlink: %w", err)
		}
		metadata.SymlinkTo = symlinkTarget
	}

	return metadata, nil
}
