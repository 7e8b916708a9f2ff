// Package scheduler implements the smart day-planning engine: task
// prioritization, time-block allocation with confidence scoring, user
// suggestion application, history-based optimization, and schedule diffing.
//
// Everything here is pure, synchronous arithmetic over in-memory slices.
// Blocks are treated as value objects; every operation returns a new slice
// rather than mutating its input, so each stage can be tested in isolation
// and callers never alias state across requests. The engine never reads the
// wall clock: the plan date comes from the caller and hours of day are read
// from explicit block and session timestamps.
package scheduler

import "github.com/google/uuid"

// Engine generates day plans. The ID generator is injectable so tests can
// produce deterministic block IDs.
type Engine struct {
	newID func() uuid.UUID
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator overrides the block ID generator (default uuid.New).
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(e *Engine) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// NewEngine creates a scheduling engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{newID: uuid.New}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
