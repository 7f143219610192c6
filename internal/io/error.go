package io

import "errors"

var (
	// ErrSourceNotExist is an error that occurs when the source of an
	// operation no longer exists at the time the operation is started.
	ErrSourceNotExist = errors.New("source does not exist")

	// ErrSameLocation is an error that occurs when source and destination of
	// an operation are the same path.
	ErrSameLocation = errors.New("source and destination are the same")

	// ErrDestInsideSource is an error that occurs when the destination of an
	// operation is located within the source subtree.
	ErrDestInsideSource = errors.New("destination is inside of source")

	// ErrSourceInsideDest is an error that occurs when the source of an
	// operation is located within the destination subtree, which would be
	// removed as part of overwriting the destination.
	ErrSourceInsideDest = errors.New("source is inside of destination")

	// ErrNotEnoughSpace is an error that occurs when there is not enough free
	// space to take the to be transferred file on the destination.
	ErrNotEnoughSpace = errors.New("not enough free space on destination")

	// ErrHashMismatch is an error that occurs when there is a source/destination hash
	// mismatch, this usually means that there are underlying transfer/hardware issues.
	ErrHashMismatch = errors.New("hash mismatch")

	// ErrRenameExists is an error that occurs when the intermediate file is to be renamed
	// to its final filename, but that final filename already exists on the destination.
	ErrRenameExists = errors.New("rename destination already exists")

	// ErrUnsupportedType is an error that occurs when a filesystem element is
	// neither a directory, a regular file nor a symbolic link.
	ErrUnsupportedType = errors.New("unsupported filesystem element type")
)
