package pathtrace

import (
	"fmt"
	"runtime"
	"strings"
)

// Topology is the read-only view of a graph the search needs.
// N must be comparable so it can be used in maps.
type Topology[NodeType comparable] interface {
	Has(node NodeType) bool
	IsHazard(node NodeType) bool
	NeighborsOf(node NodeType) []NodeType
}

// Algorithm selects the traversal order.
type Algorithm int

const (
	BFS Algorithm = iota
	DFS
)

func (algorithm Algorithm) String() string {
	switch algorithm {
	case BFS:
		return "bfs"
	case DFS:
		return "dfs"
	default:
		return fmt.Sprintf("algorithm(%d)", int(algorithm))
	}
}

// ParseAlgorithm accepts "bfs" or "dfs" in any case.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs":
		return BFS, nil
	case "dfs":
		return DFS, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (algorithm Algorithm) MarshalText() ([]byte, error) {
	if algorithm != BFS && algorithm != DFS {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(algorithm))
	}
	return []byte(algorithm.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (algorithm *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*algorithm = parsed
	return nil
}

// Result contains the outcome of a search.
type Result[NodeType comparable] struct {
	Algorithm      Algorithm
	Start          NodeType
	Target         NodeType
	Found          bool
	Path           []NodeType
	Trace          []Step[NodeType]
	Visited        []NodeType
	Frontier       []NodeType
	AvoidedHazards []NodeType
}

// Hops returns the number of edges on the path, or -1 when no path was found.
func (result Result[NodeType]) Hops() int {
	if !result.Found {
		return -1
	}
	return len(result.Path) - 1
}

// Options defines parameters for batch searches.
type Options struct {
	NumberOfWorkers int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many goroutines run searches of a batch.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{NumberOfWorkers: runtime.NumCPU()}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	return searchOptions
}

// Search runs the selected algorithm from startNode to targetNode.
//
// An unknown start or target is not an error: the result simply reports
// that no path was found. The only error is ErrUnknownAlgorithm.
func Search[NodeType comparable](
	graph Topology[NodeType],
	algorithm Algorithm,
	startNode NodeType,
	targetNode NodeType,
) (Result[NodeType], error) {
	switch algorithm {
	case BFS:
		return BreadthFirst(graph, startNode, targetNode), nil
	case DFS:
		return DepthFirst(graph, startNode, targetNode), nil
	default:
		return Result[NodeType]{}, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(algorithm))
	}
}
