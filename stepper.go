package pathtrace

// Replay is a caller-driven cursor over a finished search's trace.
// It never blocks and never looks at the clock; pacing belongs to the caller.
//
// A Replay is not safe for concurrent use. The underlying Result is only
// read, so several Replays may share one Result.
type Replay[NodeType comparable] struct {
	trace    []Step[NodeType]
	position int
}

// NewReplay positions a cursor before the first step of result's trace.
func NewReplay[NodeType comparable](result Result[NodeType]) *Replay[NodeType] {
	return &Replay[NodeType]{trace: result.Trace, position: -1}
}

// Len returns the number of steps in the trace.
func (replay *Replay[NodeType]) Len() int { return len(replay.trace) }

// Position returns the index of the current step, or -1 before the first Next.
func (replay *Replay[NodeType]) Position() int { return replay.position }

// Done reports whether the cursor sits on the last step (or the trace is empty).
func (replay *Replay[NodeType]) Done() bool {
	return replay.position >= len(replay.trace)-1
}

// Current returns the step under the cursor.
func (replay *Replay[NodeType]) Current() (Step[NodeType], bool) {
	if replay.position < 0 || replay.position >= len(replay.trace) {
		return Step[NodeType]{}, false
	}
	return replay.trace[replay.position], true
}

// Next advances one step. It returns false once the trace is exhausted and
// leaves the cursor on the last step.
func (replay *Replay[NodeType]) Next() (Step[NodeType], bool) {
	if replay.Done() {
		return Step[NodeType]{}, false
	}
	replay.position++
	return replay.trace[replay.position], true
}

// Prev moves back one step. It returns false at the first step.
func (replay *Replay[NodeType]) Prev() (Step[NodeType], bool) {
	if replay.position <= 0 {
		return Step[NodeType]{}, false
	}
	replay.position--
	return replay.trace[replay.position], true
}

// Seek moves the cursor to index.
func (replay *Replay[NodeType]) Seek(index int) (Step[NodeType], bool) {
	if index < 0 || index >= len(replay.trace) {
		return Step[NodeType]{}, false
	}
	replay.position = index
	return replay.trace[index], true
}

// Reset moves the cursor back before the first step.
func (replay *Replay[NodeType]) Reset() { replay.position = -1 }
