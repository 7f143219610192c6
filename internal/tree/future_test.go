package tree

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/desertwitch/davtree/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyAsync(t *testing.T) {
	t.Parallel()

	tr, root := newTestTree(t, map[string]string{
		"a.txt": "a",
	})

	_, err := tr.CopyAsync("/a.txt", "/b.txt").Wait()
	require.NoError(t, err)

	assert.Equal(t, "a", readFile(t, filepath.Join(root, "b.txt")))
}

func TestMoveAsync_Error(t *testing.T) {
	t.Parallel()

	tr, _ := newTestTree(t, nil)

	f := tr.MoveAsync("/missing", "/b.txt")
	<-f.Done()

	_, err := f.Await(context.Background())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.Wait()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFuture_AwaitGivesUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.txt": "a"})

	osProv := &gatedOS{gatePath: filepath.Join(root, "a.txt"), gate: make(chan struct{})}
	tr, err := newTree(root, Options{}, osProv, &schema.Unix{})
	require.NoError(t, err)

	f := tr.ResolveAsync("/a.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = f.Await(ctx)
	require.ErrorIs(t, err, context.Canceled)

	select {
	case <-f.Done():
		t.Fatal("operation completed before the gate was opened")
	default:
	}

	close(osProv.gate)

	node, err := f.Wait()
	require.NoError(t, err)
	assert.True(t, node.IsLeaf())
}

func TestResolveAsync_Concurrent(t *testing.T) {
	t.Parallel()

	tr, _ := newTestTree(t, map[string]string{
		"dir/a.txt": "a",
	})

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			node, err := tr.ResolveAsync("/dir").Wait()
			assert.NoError(t, err)
			assert.True(t, node.IsContainer())
		}()
	}
	wg.Wait()
}
