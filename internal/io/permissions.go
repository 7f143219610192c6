package io

import (
	"fmt"

	"github.com/desertwitch/davtree/internal/schema"
)

// ensurePermissions sets the permissions and, if enabled, the ownership of a
// path to the ones recorded in the given [schema.Metadata].
func (i *Handler) ensurePermissions(path string, metadata *schema.Metadata) error {
	if i.opts.PreserveOwner {
		if err := i.unixHandler.Chown(path, int(metadata.UID), int(metadata.GID)); err != nil {
			return fmt.Errorf("(io-perms) failed to chown: %w", err)
		}
	}

	if err := i.unixHandler.Chmod(path, metadata.Perms); err != nil {
		return fmt.Errorf("(io-perms) failed to chmod: %w", err)
	}

	return nil
}

// ensureLinkPermissions sets the ownership of a symbolic link itself, if
// enabled. Permissions of a symbolic link are not relevant on Linux.
func (i *Handler) ensureLinkPermissions(path string, metadata *schema.Metadata) error {
	if !i.opts.PreserveOwner {
		return nil
	}

	if err := i.unixHandler.Lchown(path, int(metadata.UID), int(metadata.GID)); err != nil {
		return fmt.Errorf("(io-perms) failed to lchown: %w", err)
	}

	return nil
}
