package pathtrace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchBatch_MatchesSequentialSearches(t *testing.T) {
	graph := buildTestGraph(t,
		[]int{1, 2, 3, 4, 5},
		[][2]int{{1, 2}, {2, 3}, {1, 4}, {4, 3}, {3, 5}},
		[]int{2}, 5)

	var queries []Query[int]
	for _, algorithm := range bothAlgorithms() {
		for start := 1; start <= 5; start++ {
			for target := 1; target <= 5; target++ {
				queries = append(queries, Query[int]{Algorithm: algorithm, Start: start, Target: target})
			}
		}
	}

	results, err := SearchBatch(context.Background(), graph, queries, WithWorkers(4))
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	for i, query := range queries {
		want, err := Search(graph, query.Algorithm, query.Start, query.Target)
		require.NoError(t, err)
		assert.Equal(t, want, results[i], "query %d", i)
	}
}

func TestSearchBatch_UnknownAlgorithm(t *testing.T) {
	graph := buildTestGraph(t, []int{1, 2}, [][2]int{{1, 2}}, nil, 2)

	_, err := SearchBatch(context.Background(), graph, []Query[int]{
		{Algorithm: BFS, Start: 1, Target: 2},
		{Algorithm: Algorithm(9), Start: 1, Target: 2},
	}, WithWorkers(1))
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestSearchBatch_Cancelled(t *testing.T) {
	graph := buildTestGraph(t, []int{1, 2}, [][2]int{{1, 2}}, nil, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := SearchBatch(ctx, graph, []Query[int]{{Algorithm: BFS, Start: 1, Target: 2}})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestSearchBatch_Empty(t *testing.T) {
	graph := buildTestGraph(t, []int{1}, nil, nil, 1)

	results, err := SearchBatch(context.Background(), graph, nil, WithWorkers(0))
	require.NoError(t, err)
	assert.Empty(t, results)
}
