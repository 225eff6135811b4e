package pathtrace

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Query is one search request of a batch.
type Query[NodeType comparable] struct {
	Algorithm Algorithm
	Start     NodeType
	Target    NodeType
}

// SearchBatch runs independent searches over the same read-only graph on a
// bounded pool of goroutines. Results come back in query order.
//
// The graph must not be mutated until SearchBatch returns. Cancelling ctx
// stops queries that have not started yet and returns ctx's error.
func SearchBatch[NodeType comparable](
	contextObject context.Context,
	graph Topology[NodeType],
	queries []Query[NodeType],
	options ...Option,
) ([]Result[NodeType], error) {
	searchOptions := applyOptions(options)

	results := make([]Result[NodeType], len(queries))
	group, groupContext := errgroup.WithContext(contextObject)
	group.SetLimit(searchOptions.NumberOfWorkers)

	for i, query := range queries {
		if groupContext.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupContext.Err(); err != nil {
				return err
			}
			result, err := Search(graph, query.Algorithm, query.Start, query.Target)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := contextObject.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
