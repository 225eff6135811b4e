package runstore

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/pathtrace"
)

func TestPutGet(t *testing.T) {
	store, err := New(4)
	require.NoError(t, err)

	result := pathtrace.Result[string]{Start: "a", Target: "b", Found: true, Path: []string{"a", "b"}}
	run := store.Put(result, 3)

	_, err = uuid.Parse(run.ID)
	require.NoError(t, err)

	got, err := store.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, result, got.Result)
	assert.Equal(t, uint64(3), got.MapVersion)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	store, err := New(2)
	require.NoError(t, err)

	first := store.Put(pathtrace.Result[string]{Start: "1"}, 1)
	second := store.Put(pathtrace.Result[string]{Start: "2"}, 1)

	_, err = store.Get(first.ID) // touch first so second is oldest
	require.NoError(t, err)

	store.Put(pathtrace.Result[string]{Start: "3"}, 1)

	_, err = store.Get(second.ID)
	require.ErrorIs(t, err, ErrRunNotFound)
	_, err = store.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
}

func TestNew_RejectsNonPositiveSize(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)
}
