package io

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertwitch/davtree/internal/filesystem"
	"github.com/desertwitch/davtree/internal/schema"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// newRealHandler returns a [Handler] operating on the real filesystem.
func newRealHandler() *Handler {
	osProv := &schema.OS{}
	unixProv := &schema.Unix{}

	return NewHandler(filesystem.NewHandler(osProv, unixProv), osProv, unixProv, Options{VerifyHash: true})
}

// writeTree creates files and directories below root. Keys ending with a
// slash are directories, values starting with "-> " are symlink targets, all
// other values are file contents.
func writeTree(t *testing.T, root string, tree map[string]string) {
	t.Helper()

	for rel, content := range tree {
		path := filepath.Join(root, rel)

		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755))

			continue
		}

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

		if target, ok := strings.CutPrefix(content, "-> "); ok {
			require.NoError(t, os.Symlink(target, path))

			continue
		}

		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// readTree returns the contents below root in the format of [writeTree].
// A root that is a file is returned under the key ".".
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()

	tree := make(map[string]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)

		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			require.NoError(t, err)
			tree[rel] = "-> " + target

		case d.IsDir():
			if rel != "." {
				tree[rel+"/"] = ""
			}

		default:
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			tree[rel] = string(data)
		}

		return nil
	})
	require.NoError(t, err)

	return tree
}

type mockFsProvider struct {
	mock.Mock
}

func (m *mockFsProvider) GetMetadata(path string) (*schema.Metadata, error) {
	args := m.Called(path)
	metadata, _ := args.Get(0).(*schema.Metadata)

	return metadata, args.Error(1)
}

func (m *mockFsProvider) HasEnoughFreeSpace(path string, minFree uint64, fileSize uint64) (bool, error) {
	args := m.Called(path, minFree, fileSize)

	return args.Bool(0), args.Error(1)
}

// renameFailingOS is the real [schema.OS], except that renames of one
// specific path fail with a configured error.
type renameFailingOS struct {
	schema.OS
	failPath string
	failErr  error
}

func (o *renameFailingOS) Rename(oldpath, newpath string) error {
	if oldpath == o.failPath {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: o.failErr}
	}

	return o.OS.Rename(oldpath, newpath)
}

// fullDiskUnix is the real [schema.Unix], except that every filesystem
// reports no available blocks.
type fullDiskUnix struct {
	schema.Unix
}

func (u *fullDiskUnix) Statfs(path string, buf *unix.Statfs_t) error {
	if err := u.Unix.Statfs(path, buf); err != nil {
		return err //nolint:wrapcheck
	}
	buf.Bavail = 0

	return nil
}

type mockUnixProvider struct {
	mock.Mock
}

func (m *mockUnixProvider) Chmod(path string, mode uint32) error {
	return m.Called(path, mode).Error(0)
}

func (m *mockUnixProvider) Chown(path string, uid, gid int) error {
	return m.Called(path, uid, gid).Error(0)
}

func (m *mockUnixProvider) Lchown(path string, uid, gid int) error {
	return m.Called(path, uid, gid).Error(0)
}

func (m *mockUnixProvider) Mkdir(path string, mode uint32) error {
	return m.Called(path, mode).Error(0)
}

func (m *mockUnixProvider) Symlink(oldpath, newpath string) error {
	return m.Called(oldpath, newpath).Error(0)
}

func (m *mockUnixProvider) UtimesNano(path string, times []unix.Timespec) error {
	return m.Called(path, times).Error(0)
}

func (m *mockUnixProvider) LutimesNano(path string, times []unix.Timespec) error {
	return m.Called(path, times).Error(0)
}
