package tree

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/davtree/internal/schema"
	"github.com/stretchr/testify/require"
)

// newTestTree returns a [Tree] for a new temporary root, which is populated
// with the given files.
func newTestTree(t *testing.T, files map[string]string) (*Tree, string) {
	t.Helper()

	root := t.TempDir()
	writeFiles(t, root, files)

	tr, err := New(root, Options{VerifyHash: true})
	require.NoError(t, err)

	return tr, root
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

// statFailingOS is the real [schema.OS], except that a stat of one specific
// path fails with a configured error.
type statFailingOS struct {
	schema.OS
	failPath string
	failErr  error
}

func (o *statFailingOS) Stat(name string) (os.FileInfo, error) {
	if name == o.failPath {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: o.failErr}
	}

	return o.OS.Stat(name)
}

// gatedOS is the real [schema.OS], except that a stat of one specific path
// blocks until the gate is closed.
type gatedOS struct {
	schema.OS
	gatePath string
	gate     chan struct{}
}

func (o *gatedOS) Stat(name string) (os.FileInfo, error) {
	if name == o.gatePath {
		<-o.gate
	}

	return o.OS.Stat(name)
}
