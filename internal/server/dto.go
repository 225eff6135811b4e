package server

import (
	"time"

	"github.com/pdrpinto/pathtrace"
	"github.com/pdrpinto/pathtrace/internal/runstore"
)

// SearchRequest asks for one search. Start defaults to the map's start and
// target to its goal.
type SearchRequest struct {
	Algorithm string `json:"algorithm" binding:"required,oneof=bfs dfs BFS DFS"`
	Start     string `json:"start" binding:"max=128"`
	Target    string `json:"target" binding:"max=128"`
}

// BatchRequest asks for several searches over the same map.
type BatchRequest struct {
	Queries []SearchRequest `json:"queries" binding:"required,min=1,max=64,dive"`
}

// StepResponse is the JSON form of a trace step.
type StepResponse struct {
	Index          int      `json:"index"`
	Event          string   `json:"event"`
	Node           string   `json:"node"`
	Visited        []string `json:"visited"`
	Frontier       []string `json:"frontier"`
	Path           []string `json:"path"`
	AvoidedHazards []string `json:"avoided_hazards"`
}

// RunResponse describes a stored search.
type RunResponse struct {
	RunID          string         `json:"run_id"`
	MapVersion     uint64         `json:"map_version"`
	CreatedAt      time.Time      `json:"created_at"`
	Algorithm      string         `json:"algorithm"`
	Start          string         `json:"start"`
	Target         string         `json:"target"`
	Found          bool           `json:"found"`
	Hops           int            `json:"hops"`
	Path           []string       `json:"path"`
	Visited        []string       `json:"visited"`
	Frontier       []string       `json:"frontier"`
	AvoidedHazards []string       `json:"avoided_hazards"`
	Steps          int            `json:"steps"`
	Trace          []StepResponse `json:"trace,omitempty"`
}

// NodeResponse is one node of the map listing.
type NodeResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Neighbors []string `json:"neighbors"`
}

// MapResponse lists the loaded map.
type MapResponse struct {
	Name    string         `json:"name"`
	Version uint64         `json:"version"`
	Start   string         `json:"start,omitempty"`
	Goals   []string       `json:"goals"`
	Nodes   []NodeResponse `json:"nodes"`
	Edges   [][2]string    `json:"edges"`
}

func toStepResponse(step pathtrace.Step[string]) StepResponse {
	return StepResponse{
		Index:          step.Index,
		Event:          step.Event.String(),
		Node:           step.Node,
		Visited:        step.Visited,
		Frontier:       step.Frontier,
		Path:           step.Path,
		AvoidedHazards: step.AvoidedHazards,
	}
}

func toRunResponse(run *runstore.Run, withTrace bool) RunResponse {
	result := run.Result
	resp := RunResponse{
		RunID:          run.ID,
		MapVersion:     run.MapVersion,
		CreatedAt:      run.CreatedAt,
		Algorithm:      result.Algorithm.String(),
		Start:          result.Start,
		Target:         result.Target,
		Found:          result.Found,
		Hops:           result.Hops(),
		Path:           result.Path,
		Visited:        result.Visited,
		Frontier:       result.Frontier,
		AvoidedHazards: result.AvoidedHazards,
		Steps:          len(result.Trace),
	}
	if withTrace {
		resp.Trace = make([]StepResponse, 0, len(result.Trace))
		for _, step := range result.Trace {
			resp.Trace = append(resp.Trace, toStepResponse(step))
		}
	}
	return resp
}
