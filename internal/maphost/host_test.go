package maphost

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/pathtrace"
	"github.com/pdrpinto/pathtrace/internal/logging"
)

const twoNodeMap = "goal: b\nnodes: [{id: a}, {id: b}]\nedges: [[a, b]]\n"
const threeNodeMap = "goal: c\nnodes: [{id: a}, {id: b}, {id: c}]\nedges: [[a, b], [b, c]]\n"

func writeMap(t *testing.T, path, doc string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
}

func TestNew_LoadsMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	writeMap(t, path, twoNodeMap)

	host, err := New(path, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, uint64(1), host.Version())
	assert.Equal(t, 2, host.Current().Graph.Len())
}

func TestNew_FailsOnBadMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	writeMap(t, path, "goal: a\n")

	_, err := New(path, logging.Discard())
	require.Error(t, err)
}

func TestReload_SwapsWithoutTouchingOldGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	writeMap(t, path, twoNodeMap)

	host, err := New(path, logging.Discard())
	require.NoError(t, err)
	before := host.Current()

	writeMap(t, path, threeNodeMap)
	require.NoError(t, host.Reload())

	assert.Equal(t, uint64(2), host.Version())
	assert.Equal(t, 3, host.Current().Graph.Len())
	assert.Equal(t, 2, before.Graph.Len(), "graphs held by in-flight searches stay intact")

	result := pathtrace.BreadthFirst(host.Current().Graph, "a", "c")
	assert.Equal(t, []string{"a", "b", "c"}, result.Path)
}

func TestReload_KeepsPreviousMapOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	writeMap(t, path, twoNodeMap)

	host, err := New(path, logging.Discard())
	require.NoError(t, err)

	writeMap(t, path, "goal: missing\nnodes: [{id: a}]\n")
	require.Error(t, host.Reload())

	assert.Equal(t, uint64(1), host.Version())
	assert.Equal(t, 2, host.Current().Graph.Len())
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	writeMap(t, path, twoNodeMap)

	host, err := New(path, logging.Discard())
	require.NoError(t, err)
	host.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- host.Watch(ctx) }()

	// give the watcher time to register before writing
	time.Sleep(50 * time.Millisecond)
	writeMap(t, path, threeNodeMap)

	require.Eventually(t, func() bool {
		return host.Current().Graph.Len() == 3
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
