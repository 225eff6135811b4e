package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"

	"github.com/pdrpinto/pathtrace"
	"github.com/pdrpinto/pathtrace/internal/metrics"
)

const (
	playbackReadLimit    = 512
	playbackWriteTimeout = 10 * time.Second
)

// playbackFrame is what the server sends after each command.
type playbackFrame struct {
	Position int           `json:"position"`
	Total    int           `json:"total"`
	Done     bool          `json:"done"`
	Step     *StepResponse `json:"step,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// originPatterns turns CORS origins into the host patterns websocket.Accept expects.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, origin := range origins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
			continue
		}
		patterns = append(patterns, origin)
	}
	return patterns
}

// Play handles GET /api/runs/:id/play. The client drives the cursor with
// text commands: next, prev, reset, current, seek N. Pacing stays with the client.
func (h *SearchHandler) Play(appCtx context.Context, corsOrigins []string) gin.HandlerFunc {
	patterns := originPatterns(corsOrigins)

	return func(c *gin.Context) {
		run, ok := h.lookup(c)
		if !ok {
			return
		}

		conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
			OriginPatterns: patterns,
		})
		if err != nil {
			h.log.WithError(err).Warn("websocket accept failed")
			return
		}
		defer conn.CloseNow() //nolint:errcheck // best-effort close on teardown

		conn.SetReadLimit(playbackReadLimit)
		metrics.ActivePlaybacks.Inc()
		defer metrics.ActivePlaybacks.Dec()

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()
		go func() {
			select {
			case <-appCtx.Done():
				cancel()
			case <-ctx.Done():
			}
		}()

		log := h.log.WithField("run_id", run.ID)
		log.Debug("playback started")

		replay := pathtrace.NewReplay(run.Result)
		for {
			_, msg, err := conn.Read(ctx)
			if err != nil {
				if status := websocket.CloseStatus(err); status != -1 {
					log.WithField("status", status).Debug("playback closed by client")
				}
				return
			}

			frame := applyCommand(replay, strings.TrimSpace(string(msg)))
			if err := writeFrame(ctx, conn, frame); err != nil {
				log.WithError(err).Debug("playback write failed")
				return
			}
		}
	}
}

func applyCommand(replay *pathtrace.Replay[string], command string) playbackFrame {
	var (
		step pathtrace.Step[string]
		ok   bool
	)

	fields := strings.Fields(command)
	if len(fields) == 0 {
		return errorFrame(replay, "empty command")
	}

	switch fields[0] {
	case "next":
		step, ok = replay.Next()
	case "prev":
		step, ok = replay.Prev()
	case "current":
		step, ok = replay.Current()
	case "reset":
		replay.Reset()
		return frameFor(replay, nil)
	case "seek":
		if len(fields) != 2 {
			return errorFrame(replay, "usage: seek N")
		}
		index, err := strconv.Atoi(fields[1])
		if err != nil {
			return errorFrame(replay, "seek index must be an integer")
		}
		step, ok = replay.Seek(index)
	default:
		return errorFrame(replay, fmt.Sprintf("unknown command %q", fields[0]))
	}

	if !ok {
		return frameFor(replay, nil)
	}
	resp := toStepResponse(step)
	return frameFor(replay, &resp)
}

func frameFor(replay *pathtrace.Replay[string], step *StepResponse) playbackFrame {
	return playbackFrame{
		Position: replay.Position(),
		Total:    replay.Len(),
		Done:     replay.Done(),
		Step:     step,
	}
}

func errorFrame(replay *pathtrace.Replay[string], message string) playbackFrame {
	frame := frameFor(replay, nil)
	frame.Error = message
	return frame
}

func writeFrame(ctx context.Context, conn *websocket.Conn, frame playbackFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	writeCtx, cancel := context.WithTimeout(ctx, playbackWriteTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}
