package pathtrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplay_WalksTraceInOrder(t *testing.T) {
	graph := buildTestGraph(t, []int{1, 2, 3}, [][2]int{{1, 2}, {2, 3}}, nil, 3)
	result := BreadthFirst(graph, 1, 3)

	replay := NewReplay(result)
	require.Equal(t, len(result.Trace), replay.Len())
	assert.Equal(t, -1, replay.Position())

	_, ok := replay.Current()
	assert.False(t, ok, "no current step before the first Next")

	var seen []int
	for {
		step, ok := replay.Next()
		if !ok {
			break
		}
		seen = append(seen, step.Index)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
	assert.True(t, replay.Done())

	last, ok := replay.Current()
	require.True(t, ok)
	assert.Equal(t, EventGoal, last.Event)
}

func TestReplay_PrevSeekReset(t *testing.T) {
	graph := buildTestGraph(t, []int{1, 2, 3}, [][2]int{{1, 2}, {2, 3}}, nil, 3)
	replay := NewReplay(BreadthFirst(graph, 1, 3))

	_, ok := replay.Prev()
	assert.False(t, ok)

	step, ok := replay.Seek(2)
	require.True(t, ok)
	assert.Equal(t, 2, step.Index)

	step, ok = replay.Prev()
	require.True(t, ok)
	assert.Equal(t, 1, step.Index)

	_, ok = replay.Seek(10)
	assert.False(t, ok)
	assert.Equal(t, 1, replay.Position(), "failed seek keeps the cursor")

	replay.Reset()
	step, ok = replay.Next()
	require.True(t, ok)
	assert.Equal(t, 0, step.Index)
}

func TestReplay_EmptyTrace(t *testing.T) {
	graph := buildTestGraph(t, []int{1}, nil, nil, 1)
	replay := NewReplay(BreadthFirst(graph, 1, 99))

	assert.Equal(t, 0, replay.Len())
	assert.True(t, replay.Done())
	_, ok := replay.Next()
	assert.False(t, ok)
}

func TestReplay_SharesResultWithoutMutatingIt(t *testing.T) {
	graph := buildTestGraph(t, []int{1, 2}, [][2]int{{1, 2}}, nil, 2)
	result := DepthFirst(graph, 1, 2)

	first, second := NewReplay(result), NewReplay(result)
	first.Next()
	first.Next()

	step, ok := second.Next()
	require.True(t, ok)
	assert.Equal(t, 0, step.Index)
	assert.Equal(t, 1, first.Position())
}
