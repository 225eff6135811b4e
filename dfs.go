package pathtrace

import "github.com/pdrpinto/pathtrace/internal"

// DepthFirst finds some hazard-free path, not necessarily the shortest.
//
// Neighbors are pushed in reverse insertion order so they are popped, and
// therefore explored, in insertion order. Only visited nodes are skipped
// when pushing, so a node can sit on the stack more than once; every push
// records a step.
func DepthFirst[NodeType comparable](
	graph Topology[NodeType],
	startNode NodeType,
	targetNode NodeType,
) Result[NodeType] {
	state := newSearchState[NodeType]()
	if result, ok := admissible(graph, state, DFS, startNode, targetNode); !ok {
		return result
	}

	stack := &lifoStack[NodeType]{}
	startPath := []NodeType{startNode}
	stack.Push(frontierEntry[NodeType]{Node: startNode, Path: startPath})
	state.frontier.Add(startNode)
	state.record(EventStart, startNode, startPath)

	for stack.Len() > 0 {
		entry := stack.Pop()
		current := entry.Node
		state.frontier.Remove(current)

		if current == targetNode {
			state.record(EventGoal, current, entry.Path)
			return state.result(DFS, startNode, targetNode, entry.Path)
		}

		if state.visited.Has(current) {
			continue
		}
		state.visited.Add(current)

		neighbors := graph.NeighborsOf(current)
		for i := len(neighbors) - 1; i >= 0; i-- {
			neighbor := neighbors[i]
			if graph.IsHazard(neighbor) {
				state.avoided.Add(neighbor)
				continue
			}
			if state.visited.Has(neighbor) {
				continue
			}
			path := internal.Extend(entry.Path, neighbor)
			state.frontier.Add(neighbor)
			stack.Push(frontierEntry[NodeType]{Node: neighbor, Path: path})
			state.record(EventDiscover, neighbor, path)
		}
	}

	return state.result(DFS, startNode, targetNode, nil)
}
