package pathtrace

import "errors"

// Graph construction and search errors.
var (
	ErrDuplicateNode    = errors.New("node already exists")
	ErrUnknownNode      = errors.New("node not found")
	ErrConflictingKind  = errors.New("node cannot be both goal and hazard")
	ErrInvalidKind      = errors.New("invalid node kind")
	ErrUnknownAlgorithm = errors.New("unknown search algorithm")
)
