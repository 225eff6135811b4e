package pathtrace

import "github.com/pdrpinto/pathtrace/internal"

// BreadthFirst finds a shortest hazard-free path by edge count.
//
// A step is recorded before the first expansion, each time a node joins the
// frontier, and when the target is dequeued. A node is enqueued at most once.
func BreadthFirst[NodeType comparable](
	graph Topology[NodeType],
	startNode NodeType,
	targetNode NodeType,
) Result[NodeType] {
	state := newSearchState[NodeType]()
	if result, ok := admissible(graph, state, BFS, startNode, targetNode); !ok {
		return result
	}

	queue := &fifoQueue[NodeType]{}
	startPath := []NodeType{startNode}
	queue.Push(frontierEntry[NodeType]{Node: startNode, Path: startPath})
	state.frontier.Add(startNode)
	state.record(EventStart, startNode, startPath)

	for queue.Len() > 0 {
		entry := queue.Pop()
		current := entry.Node
		state.frontier.Remove(current)

		if current == targetNode {
			state.record(EventGoal, current, entry.Path)
			return state.result(BFS, startNode, targetNode, entry.Path)
		}

		// stale entry
		if state.visited.Has(current) {
			continue
		}
		state.visited.Add(current)

		for _, neighbor := range graph.NeighborsOf(current) {
			if graph.IsHazard(neighbor) {
				state.avoided.Add(neighbor)
				continue
			}
			if state.visited.Has(neighbor) || state.frontier.Has(neighbor) {
				continue
			}
			path := internal.Extend(entry.Path, neighbor)
			state.frontier.Add(neighbor)
			queue.Push(frontierEntry[NodeType]{Node: neighbor, Path: path})
			state.record(EventDiscover, neighbor, path)
		}
	}

	return state.result(BFS, startNode, targetNode, nil)
}
