package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MapHandler serves the loaded map and health.
type MapHandler struct {
	maps    MapSource
	version string
}

// NewMapHandler creates a MapHandler.
func NewMapHandler(maps MapSource, version string) *MapHandler {
	return &MapHandler{maps: maps, version: version}
}

// Health handles GET /api/health.
func (h *MapHandler) Health(c *gin.Context) {
	snapshot := h.maps.Current()
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"version":     h.version,
		"map_version": snapshot.Version,
		"nodes":       snapshot.Graph.Len(),
	})
}

// Map handles GET /api/map.
func (h *MapHandler) Map(c *gin.Context) {
	snapshot := h.maps.Current()
	graph := snapshot.Graph

	resp := MapResponse{
		Name:    snapshot.Name,
		Version: snapshot.Version,
		Start:   snapshot.Start,
		Goals:   graph.Goals(),
		Nodes:   make([]NodeResponse, 0, graph.Len()),
		Edges:   make([][2]string, 0, graph.EdgeCount()),
	}
	for _, node := range graph.Nodes() {
		neighbors := graph.NeighborsOf(node.ID)
		if neighbors == nil {
			neighbors = []string{}
		}
		resp.Nodes = append(resp.Nodes, NodeResponse{
			ID:        node.ID,
			Name:      node.Name,
			Kind:      node.Kind.String(),
			Neighbors: neighbors,
		})
	}
	for _, edge := range graph.Edges() {
		resp.Edges = append(resp.Edges, [2]string{edge.A, edge.B})
	}

	c.JSON(http.StatusOK, resp)
}
