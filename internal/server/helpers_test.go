package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/pathtrace/internal/logging"
	"github.com/pdrpinto/pathtrace/internal/maphost"
	"github.com/pdrpinto/pathtrace/internal/runstore"
)

const islandMap = `name: island
start: beach
goal: chest
hazards: [quicksand, volcano]
nodes:
  - {id: beach, name: Beach}
  - {id: palms, name: Palm Grove}
  - {id: quicksand, name: Quicksand}
  - {id: cave, name: Cave}
  - {id: volcano, name: Volcano}
  - {id: chest, name: Treasure Chest}
  - {id: reef, name: Reef}
edges:
  - [beach, quicksand]
  - [beach, palms]
  - [quicksand, chest]
  - [palms, cave]
  - [cave, volcano]
  - [cave, chest]
`

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter serves the island map with a generous rate limit.
func newTestRouter(t *testing.T) (*gin.Engine, *runstore.Store) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "island.yaml")
	require.NoError(t, os.WriteFile(path, []byte(islandMap), 0o600))

	host, err := maphost.New(path, logging.Discard())
	require.NoError(t, err)

	runs, err := runstore.New(32)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := NewRouter(ctx, &RouterDeps{
		Log:         logging.Discard(),
		Maps:        host,
		Runs:        runs,
		Workers:     2,
		CORSOrigins: []string{"http://localhost:8080"},
		RateLimit:   1000,
		RateBurst:   1000,
		Version:     "test",
	})
	return r, runs
}

// doRequest performs an HTTP request against the test router and returns the recorder.
func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, http.NoBody)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}
