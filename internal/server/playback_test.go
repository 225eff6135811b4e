package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlay_ClientDrivesCursor(t *testing.T) {
	r, _ := newTestRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	w := doRequest(r, http.MethodPost, "/api/search", `{"algorithm":"bfs"}`)
	require.Equal(t, http.StatusOK, w.Code)
	run := decode[RunResponse](t, w.Body.Bytes())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/runs/" + run.RunID + "/play"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.CloseNow() //nolint:errcheck // test teardown

	send := func(command string) playbackFrame {
		t.Helper()
		require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(command)))
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)
		var frame playbackFrame
		require.NoError(t, json.Unmarshal(data, &frame))
		return frame
	}

	frame := send("next")
	require.NotNil(t, frame.Step)
	assert.Equal(t, 0, frame.Position)
	assert.Equal(t, 5, frame.Total)
	assert.Equal(t, "start", frame.Step.Event)

	frame = send("seek 4")
	require.NotNil(t, frame.Step)
	assert.True(t, frame.Done)
	assert.Equal(t, "goal", frame.Step.Event)
	assert.Equal(t, []string{"beach", "palms", "cave", "chest"}, frame.Step.Path)

	frame = send("next")
	assert.Nil(t, frame.Step, "no step past the end")
	assert.Equal(t, 4, frame.Position)

	frame = send("prev")
	require.NotNil(t, frame.Step)
	assert.Equal(t, 3, frame.Step.Index)

	frame = send("reset")
	assert.Equal(t, -1, frame.Position)

	frame = send("jump")
	assert.Contains(t, frame.Error, "unknown command")

	frame = send("seek x")
	assert.NotEmpty(t, frame.Error)

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
}

func TestPlay_UnknownRun(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/runs/missing/play", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOriginPatterns(t *testing.T) {
	assert.Equal(t,
		[]string{"localhost:8080", "example.com", "*.internal"},
		originPatterns([]string{"http://localhost:8080", "https://example.com", "*.internal"}))
}
