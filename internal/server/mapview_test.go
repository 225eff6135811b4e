package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/pathtrace/internal/logging"
	"github.com/pdrpinto/pathtrace/internal/maphost"
	"github.com/pdrpinto/pathtrace/internal/runstore"
)

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[map[string]any](t, w.Body.Bytes())
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "test", resp["version"])
	assert.InDelta(t, 7, resp["nodes"], 0)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMap(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/map", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[MapResponse](t, w.Body.Bytes())
	assert.Equal(t, "island", resp.Name)
	assert.Equal(t, "beach", resp.Start)
	assert.Equal(t, []string{"chest"}, resp.Goals)
	require.Len(t, resp.Nodes, 7)
	assert.Len(t, resp.Edges, 6)

	kinds := map[string]string{}
	for _, node := range resp.Nodes {
		kinds[node.ID] = node.Kind
	}
	assert.Equal(t, "hazard", kinds["volcano"])
	assert.Equal(t, "goal", kinds["chest"])
	assert.Equal(t, "normal", kinds["beach"])

	reef := resp.Nodes[6]
	assert.Equal(t, "reef", reef.ID)
	assert.NotNil(t, reef.Neighbors)
	assert.Empty(t, reef.Neighbors)
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	doRequest(r, http.MethodPost, "/api/search", `{"algorithm":"bfs"}`)
	w := doRequest(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pathtrace_searches_total")
}

func TestRateLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "island.yaml")
	require.NoError(t, os.WriteFile(path, []byte(islandMap), 0o600))
	host, err := maphost.New(path, logging.Discard())
	require.NoError(t, err)
	runs, err := runstore.New(4)
	require.NoError(t, err)

	r := NewRouter(context.Background(), &RouterDeps{
		Log:       logging.Discard(),
		Maps:      host,
		Runs:      runs,
		Workers:   1,
		RateLimit: 0.001,
		RateBurst: 1,
	})

	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/api/health", "").Code)
	w := doRequest(r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), ErrCodeRateLimited)
}
