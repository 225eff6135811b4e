// Package runstore keeps recently finished searches so clients can replay
// their traces by id.
package runstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pdrpinto/pathtrace"
)

// ErrRunNotFound is returned for ids that were never stored or were evicted.
var ErrRunNotFound = errors.New("run not found")

// Run is a stored search. It is never modified after Put.
type Run struct {
	ID         string
	MapVersion uint64
	CreatedAt  time.Time
	Result     pathtrace.Result[string]
}

// Store is a bounded, concurrency-safe run cache. The least recently used
// run is evicted first.
type Store struct {
	cache *lru.Cache[string, *Run]
	now   func() time.Time
}

// New returns a store holding at most size runs.
func New(size int) (*Store, error) {
	cache, err := lru.New[string, *Run](size)
	if err != nil {
		return nil, fmt.Errorf("creating run cache: %w", err)
	}
	return &Store{cache: cache, now: time.Now}, nil
}

// Put stores result under a fresh id and returns the run.
func (s *Store) Put(result pathtrace.Result[string], mapVersion uint64) *Run {
	run := &Run{
		ID:         uuid.New().String(),
		MapVersion: mapVersion,
		CreatedAt:  s.now().UTC(),
		Result:     result,
	}
	s.cache.Add(run.ID, run)
	return run
}

// Get returns the run stored under id.
func (s *Store) Get(id string) (*Run, error) {
	run, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, nil
}

// Len returns the number of stored runs.
func (s *Store) Len() int { return s.cache.Len() }
