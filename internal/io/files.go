package io

import (
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/zeebo/blake3"
)

// processFile is the principal method for copying a regular file. Apart from
// transferring the content itself, it handles both spacing and permissioning.
// Free space is only checked when a minimum free threshold is configured.
func (i *Handler) processFile(e *Element, report *Report) error {
	if i.opts.MinFree > 0 {
		enoughSpace, err := i.fsHandler.HasEnoughFreeSpace(filepath.Dir(e.DestPath), i.opts.MinFree, e.Metadata.Size)
		if err != nil {
			return fmt.Errorf("(io-file) failed to check enough space: %w", err)
		}
		if !enoughSpace {
			return fmt.Errorf("(io-file) %w: %s", ErrNotEnoughSpace, e.SourcePath)
		}
	}

	written, err := i.transferFile(e)
	if err != nil {
		return fmt.Errorf("(io-file) failed to transfer file: %w", err)
	}

	if err := i.ensurePermissions(e.DestPath, e.Metadata); err != nil {
		return fmt.Errorf("(io-file) failed to ensure permissions: %w", err)
	}

	report.BytesCopied += written
	addToReport(report, e)

	return nil
}

// transferFile copies the content of a file into a uniquely named
// intermediate file next to the destination, which is renamed to the destination once the content
// has been synced (and verified, if enabled).
func (i *Handler) transferFile(e *Element) (uint64, error) {
	var dstClosed, tmpRenamed bool

	srcFile, err := i.osHandler.Open(e.SourcePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open src: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := i.osHandler.CreateTemp(filepath.Dir(e.DestPath), "."+filepath.Base(e.DestPath)+".*"+TempSuffix)
	if err != nil {
		return 0, fmt.Errorf("failed to create tmp: %w", err)
	}
	tmpPath := dstFile.Name()
	defer func() {
		if !dstClosed {
			dstFile.Close()
		}
		if !tmpRenamed {
			i.cleanTempFile(tmpPath)
		}
	}()

	var reader io.Reader = srcFile
	var writer io.Writer = dstFile
	var srcHasher, dstHasher hash.Hash

	if i.opts.VerifyHash {
		srcHasher = blake3.New()
		dstHasher = blake3.New()
		reader = io.TeeReader(srcFile, srcHasher)
		writer = io.MultiWriter(dstFile, dstHasher)
	}

	written, err := io.Copy(writer, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to copy: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		return 0, fmt.Errorf("failed to sync dst: %w", err)
	}

	if i.opts.VerifyHash {
		srcChecksum := hex.EncodeToString(srcHasher.Sum(nil))
		dstChecksum := hex.EncodeToString(dstHasher.Sum(nil))

		if srcChecksum != dstChecksum {
			return 0, fmt.Errorf("%w: %s (src) != %s (dst)", ErrHashMismatch, srcChecksum, dstChecksum)
		}
	}

	dstClosed = true
	if err := dstFile.Close(); err != nil {
		return 0, fmt.Errorf("failed to close dst: %w", err)
	}

	if _, err := i.osHandler.Lstat(e.DestPath); err == nil {
		return 0, ErrRenameExists
	} else if !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("failed to check rename dst existence: %w", err)
	}

	if err := i.osHandler.Rename(tmpPath, e.DestPath); err != nil {
		return 0, fmt.Errorf("failed to rename tmp to dst: %w", err)
	}
	tmpRenamed = true

	return uint64(written), nil //nolint:gosec
}
