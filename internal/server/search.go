package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pdrpinto/pathtrace"
	"github.com/pdrpinto/pathtrace/internal/maphost"
	"github.com/pdrpinto/pathtrace/internal/metrics"
	"github.com/pdrpinto/pathtrace/internal/runstore"
)

var tracer = otel.Tracer("github.com/pdrpinto/pathtrace/internal/server")

// MapSource provides the map searches run against.
type MapSource interface {
	Current() *maphost.Snapshot
}

// SearchHandler serves search and run endpoints.
type SearchHandler struct {
	maps    MapSource
	runs    *runstore.Store
	workers int
	log     *logrus.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(maps MapSource, runs *runstore.Store, workers int, log *logrus.Logger) *SearchHandler {
	return &SearchHandler{maps: maps, runs: runs, workers: workers, log: log}
}

// resolveQuery fills in map defaults. Unknown node ids are passed through:
// the engine reports them as "no path".
func resolveQuery(snapshot *maphost.Snapshot, req SearchRequest) (pathtrace.Query[string], error) {
	algorithm, err := pathtrace.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return pathtrace.Query[string]{}, err
	}

	start, target, err := snapshot.Endpoints(req.Start, req.Target)
	if err != nil {
		return pathtrace.Query[string]{}, err
	}

	return pathtrace.Query[string]{Algorithm: algorithm, Start: start, Target: target}, nil
}

func observe(result pathtrace.Result[string]) {
	algorithm := result.Algorithm.String()
	metrics.SearchesTotal.WithLabelValues(algorithm, metrics.Outcome(result.Found)).Inc()
	metrics.TraceLength.WithLabelValues(algorithm).Observe(float64(len(result.Trace)))
}

func searchAttributes(query pathtrace.Query[string]) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String("pathtrace.algorithm", query.Algorithm.String()),
		attribute.String("pathtrace.start", query.Start),
		attribute.String("pathtrace.target", query.Target),
	)
}

// Search handles POST /api/search.
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	snapshot := h.maps.Current()
	query, err := resolveQuery(snapshot, req)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	_, span := tracer.Start(c.Request.Context(), "pathtrace.search", searchAttributes(query))
	result, err := pathtrace.Search(snapshot.Graph, query.Algorithm, query.Start, query.Target)
	if err != nil {
		span.RecordError(err)
		span.End()
		h.log.WithError(err).Error("running search")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return
	}
	span.SetAttributes(
		attribute.Bool("pathtrace.found", result.Found),
		attribute.Int("pathtrace.steps", len(result.Trace)),
	)
	span.End()

	observe(result)
	run := h.runs.Put(result, snapshot.Version)

	h.log.WithFields(logrus.Fields{
		"run_id":    run.ID,
		"algorithm": query.Algorithm.String(),
		"start":     query.Start,
		"target":    query.Target,
		"found":     result.Found,
		"steps":     len(result.Trace),
	}).Debug("search finished")

	c.JSON(http.StatusOK, toRunResponse(run, c.Query("trace") == "true"))
}

// Batch handles POST /api/search/batch.
func (h *SearchHandler) Batch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	snapshot := h.maps.Current()
	queries := make([]pathtrace.Query[string], 0, len(req.Queries))
	for i, q := range req.Queries {
		query, err := resolveQuery(snapshot, q)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "query "+strconv.Itoa(i)+": "+err.Error())
			return
		}
		queries = append(queries, query)
	}

	ctx, span := tracer.Start(c.Request.Context(), "pathtrace.search_batch",
		trace.WithAttributes(attribute.Int("pathtrace.queries", len(queries))))
	defer span.End()

	results, err := pathtrace.SearchBatch(ctx, snapshot.Graph, queries, pathtrace.WithWorkers(h.workers))
	if err != nil {
		span.RecordError(err)
		h.log.WithError(err).Error("running search batch")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return
	}

	runs := make([]RunResponse, 0, len(results))
	for _, result := range results {
		observe(result)
		runs = append(runs, toRunResponse(h.runs.Put(result, snapshot.Version), false))
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// Run handles GET /api/runs/:id.
func (h *SearchHandler) Run(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toRunResponse(run, true))
}

// Step handles GET /api/runs/:id/steps/:index.
func (h *SearchHandler) Step(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "index must be an integer")
		return
	}

	replay := pathtrace.NewReplay(run.Result)
	step, ok := replay.Seek(index)
	if !ok {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "step out of range")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id": run.ID,
		"total":  replay.Len(),
		"done":   replay.Done(),
		"step":   toStepResponse(step),
	})
}

func (h *SearchHandler) lookup(c *gin.Context) (*runstore.Run, bool) {
	run, err := h.runs.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, runstore.ErrRunNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "run not found")
			return nil, false
		}
		h.log.WithError(err).Error("getting run")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return nil, false
	}
	return run, true
}
