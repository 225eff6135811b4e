package pathtrace

import (
	"fmt"

	"github.com/pdrpinto/pathtrace/internal"
)

// Event names the state change a Step records.
type Event int

const (
	// EventStart is the snapshot taken before the first expansion.
	EventStart Event = iota
	// EventDiscover is emitted each time a node joins the frontier.
	EventDiscover
	// EventGoal is emitted when the target is taken off the frontier.
	EventGoal
)

func (event Event) String() string {
	switch event {
	case EventStart:
		return "start"
	case EventDiscover:
		return "discover"
	case EventGoal:
		return "goal"
	default:
		return fmt.Sprintf("event(%d)", int(event))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (event Event) MarshalText() ([]byte, error) { return []byte(event.String()), nil }

// Step is an immutable snapshot of the search state. Every slice is owned
// by the step; sets are listed in insertion order.
type Step[NodeType comparable] struct {
	Index          int
	Event          Event
	Node           NodeType
	Visited        []NodeType
	Frontier       []NodeType
	Path           []NodeType
	AvoidedHazards []NodeType
}

// searchState is the working state shared by both traversals.
type searchState[NodeType comparable] struct {
	visited  *internal.OrderedSet[NodeType]
	frontier *internal.OrderedSet[NodeType]
	avoided  *internal.OrderedSet[NodeType]
	trace    []Step[NodeType]
}

func newSearchState[NodeType comparable]() *searchState[NodeType] {
	return &searchState[NodeType]{
		visited:  internal.NewOrderedSet[NodeType](),
		frontier: internal.NewOrderedSet[NodeType](),
		avoided:  internal.NewOrderedSet[NodeType](),
	}
}

// record appends a snapshot. The live sets are copied, never shared.
func (state *searchState[NodeType]) record(event Event, node NodeType, path []NodeType) {
	state.trace = append(state.trace, Step[NodeType]{
		Index:          len(state.trace),
		Event:          event,
		Node:           node,
		Visited:        state.visited.Snapshot(),
		Frontier:       state.frontier.Snapshot(),
		Path:           internal.CloneSlice(path),
		AvoidedHazards: state.avoided.Snapshot(),
	})
}

func (state *searchState[NodeType]) result(
	algorithm Algorithm,
	start NodeType,
	target NodeType,
	path []NodeType,
) Result[NodeType] {
	return Result[NodeType]{
		Algorithm:      algorithm,
		Start:          start,
		Target:         target,
		Found:          path != nil,
		Path:           internal.CloneSlice(path),
		Trace:          state.trace,
		Visited:        state.visited.Snapshot(),
		Frontier:       state.frontier.Snapshot(),
		AvoidedHazards: state.avoided.Snapshot(),
	}
}

// admissible handles the cases that end a search before it starts: unknown
// endpoints and a hazard start. It returns false with the absence result.
func admissible[NodeType comparable](
	graph Topology[NodeType],
	state *searchState[NodeType],
	algorithm Algorithm,
	start NodeType,
	target NodeType,
) (Result[NodeType], bool) {
	if !graph.Has(start) || !graph.Has(target) {
		return state.result(algorithm, start, target, nil), false
	}
	if graph.IsHazard(start) {
		state.avoided.Add(start)
		return state.result(algorithm, start, target, nil), false
	}
	return Result[NodeType]{}, true
}
