package pathtrace

import (
	"fmt"
	"slices"
)

// Kind classifies a node. A node has exactly one kind, so it can never be
// both a goal and a hazard.
type Kind int

const (
	KindNormal Kind = iota
	KindGoal
	KindHazard
)

func (kind Kind) String() string {
	switch kind {
	case KindNormal:
		return "normal"
	case KindGoal:
		return "goal"
	case KindHazard:
		return "hazard"
	default:
		return fmt.Sprintf("kind(%d)", int(kind))
	}
}

// Valid reports whether kind is one of the declared kinds.
func (kind Kind) Valid() bool {
	return kind >= KindNormal && kind <= KindHazard
}

// Node is a location on the map.
type Node[NodeType comparable] struct {
	ID   NodeType
	Name string
	Kind Kind
}

// IsGoal reports whether the node is a goal.
func (node Node[NodeType]) IsGoal() bool { return node.Kind == KindGoal }

// IsHazard reports whether the node is a hazard.
func (node Node[NodeType]) IsHazard() bool { return node.Kind == KindHazard }

// Edge is an undirected connection between two node ids.
type Edge[NodeType comparable] struct {
	A NodeType
	B NodeType
}

// Graph owns a set of nodes and their undirected adjacency.
//
// Neighbor order is insertion order and is observable: depth-first search
// explores neighbors in that order. A Graph must not be mutated while a
// search is reading it; concurrent reads are safe.
type Graph[NodeType comparable] struct {
	nodes     map[NodeType]Node[NodeType]
	order     []NodeType
	adjacency map[NodeType][]NodeType
	edges     []Edge[NodeType]
}

// NewGraph returns an empty graph.
func NewGraph[NodeType comparable]() *Graph[NodeType] {
	return &Graph[NodeType]{
		nodes:     make(map[NodeType]Node[NodeType]),
		adjacency: make(map[NodeType][]NodeType),
	}
}

// AddNode registers a node.
// Returns ErrDuplicateNode if the id is already registered.
func (graph *Graph[NodeType]) AddNode(node Node[NodeType]) error {
	if !node.Kind.Valid() {
		return fmt.Errorf("%w: %v has %s", ErrInvalidKind, node.ID, node.Kind)
	}
	if _, exists := graph.nodes[node.ID]; exists {
		return fmt.Errorf("%w: %v", ErrDuplicateNode, node.ID)
	}
	graph.nodes[node.ID] = node
	graph.order = append(graph.order, node.ID)
	return nil
}

// AddEdge connects a and b in both directions and reports whether an edge
// was added. Unknown ids, self-loops and existing edges are ignored.
func (graph *Graph[NodeType]) AddEdge(a, b NodeType) bool {
	if a == b {
		return false
	}
	if _, ok := graph.nodes[a]; !ok {
		return false
	}
	if _, ok := graph.nodes[b]; !ok {
		return false
	}
	if slices.Contains(graph.adjacency[a], b) {
		return false
	}
	graph.adjacency[a] = append(graph.adjacency[a], b)
	if !slices.Contains(graph.adjacency[b], a) {
		graph.adjacency[b] = append(graph.adjacency[b], a)
	}
	graph.edges = append(graph.edges, Edge[NodeType]{A: a, B: b})
	return true
}

// NeighborsOf returns a copy of the neighbors of id in insertion order.
func (graph *Graph[NodeType]) NeighborsOf(id NodeType) []NodeType {
	neighbors, ok := graph.adjacency[id]
	if !ok {
		return nil
	}
	return slices.Clone(neighbors)
}

// Has reports whether id is a registered node.
func (graph *Graph[NodeType]) Has(id NodeType) bool {
	_, ok := graph.nodes[id]
	return ok
}

// Node returns the node registered under id.
func (graph *Graph[NodeType]) Node(id NodeType) (Node[NodeType], bool) {
	node, ok := graph.nodes[id]
	return node, ok
}

// IsHazard reports whether id is a hazard. Unknown ids are not hazards.
func (graph *Graph[NodeType]) IsHazard(id NodeType) bool {
	return graph.nodes[id].IsHazard()
}

// IsGoal reports whether id is a goal. Unknown ids are not goals.
func (graph *Graph[NodeType]) IsGoal(id NodeType) bool {
	return graph.nodes[id].IsGoal()
}

// Nodes lists nodes in registration order.
func (graph *Graph[NodeType]) Nodes() []Node[NodeType] {
	out := make([]Node[NodeType], 0, len(graph.order))
	for _, id := range graph.order {
		out = append(out, graph.nodes[id])
	}
	return out
}

// Goals lists goal nodes in registration order.
func (graph *Graph[NodeType]) Goals() []NodeType {
	var out []NodeType
	for _, id := range graph.order {
		if graph.nodes[id].IsGoal() {
			out = append(out, id)
		}
	}
	return out
}

// Edges lists edges in the order they were added.
func (graph *Graph[NodeType]) Edges() []Edge[NodeType] {
	return slices.Clone(graph.edges)
}

// Len returns the number of nodes.
func (graph *Graph[NodeType]) Len() int { return len(graph.nodes) }

// EdgeCount returns the number of undirected edges.
func (graph *Graph[NodeType]) EdgeCount() int { return len(graph.edges) }

// BuildGraph assembles a graph from node definitions, edges, hazard ids and
// a goal id. Edges naming unknown nodes are skipped silently. A node listed
// both as goal and hazard is rejected with ErrConflictingKind, and goal or
// hazard ids that name no node are rejected with ErrUnknownNode.
func BuildGraph[NodeType comparable](
	nodes []Node[NodeType],
	edges []Edge[NodeType],
	hazardIDs []NodeType,
	goalID NodeType,
) (*Graph[NodeType], error) {
	kinds := make(map[NodeType]Kind, len(nodes))
	for _, node := range nodes {
		kinds[node.ID] = node.Kind
	}

	if _, ok := kinds[goalID]; !ok {
		return nil, fmt.Errorf("goal %w: %v", ErrUnknownNode, goalID)
	}
	if kinds[goalID] == KindHazard {
		return nil, fmt.Errorf("%w: %v", ErrConflictingKind, goalID)
	}
	kinds[goalID] = KindGoal

	for _, hazardID := range hazardIDs {
		kind, ok := kinds[hazardID]
		if !ok {
			return nil, fmt.Errorf("hazard %w: %v", ErrUnknownNode, hazardID)
		}
		if kind == KindGoal {
			return nil, fmt.Errorf("%w: %v", ErrConflictingKind, hazardID)
		}
		kinds[hazardID] = KindHazard
	}

	graph := NewGraph[NodeType]()
	for _, node := range nodes {
		node.Kind = kinds[node.ID]
		if err := graph.AddNode(node); err != nil {
			return nil, err
		}
	}
	for _, edge := range edges {
		graph.AddEdge(edge.A, edge.B)
	}
	return graph, nil
}
