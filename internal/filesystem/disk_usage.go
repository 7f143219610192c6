package filesystem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DiskStats holds disk usage information. It is meant to be passed by value.
type DiskStats struct {
	TotalSize uint64
	FreeSpace uint64
}

// GetDiskUsage gets the [DiskStats] of the filesystem a path resides on.
func (f *Handler) GetDiskUsage(path string) (DiskStats, error) {
	var stat unix.Statfs_t
	if err := f.unixHandler.Statfs(path, &stat); err != nil {
		return DiskStats{}, fmt.Errorf("(fs-diskstats) failed to statfs: %w", err)
	}

	stats := DiskStats{
		TotalSize: stat.Blocks * handleSize(int64(stat.Bsize)), //nolint:unconvert
		FreeSpace: stat.Bavail * handleSize(int64(stat.Bsize)), //nolint:unconvert
	}

	if stats.TotalSize == 0 {
		return DiskStats{}, fmt.Errorf("(fs-diskstats) %w: %+v", ErrInvalidStats, stats)
	}

	return stats, nil
}

// HasEnoughFreeSpace is a helper method that allows checking if the
// filesystem a path resides on can house a certain fileSize without
// exceeding a certain minFree threshold.
func (f *Handler) HasEnoughFreeSpace(path string, minFree uint64, fileSize uint64) (bool, error) {
	stats, err := f.GetDiskUsage(path)
	if err != nil {
		return false, fmt.Errorf("(fs-enoughspace) failed to get usage: %w", err)
	}

	requiredFree := minFree
	if minFree <= fileSize {
		requiredFree = fileSize
	}

	if stats.FreeSpace >= requiredFree {
		return true, nil
	}

	return false, nil
}
