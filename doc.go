// Package pathtrace routes between two locations of an undirected map while
// avoiding hazard nodes, and records every step of the search for playback.
//
// It exposes three main entry points:
//
//   - BuildGraph / Graph: the map, with ordered adjacency and node kinds.
//   - Search (BreadthFirst, DepthFirst): run a traversal to completion and get
//     a Result holding the path and the full trace of immutable Steps.
//   - Replay: walk a finished trace one step at a time to drive UIs.
//
// SearchBatch runs many searches over the same read-only graph concurrently.
// The engine itself is synchronous, allocates its own state per call and
// never reads the clock.
package pathtrace
