package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces run IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run IDs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined run IDs for testing.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined ID.
// Panics once all IDs have been consumed.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// Clock is a monotonic logical clock for record ordering.
// Safe for concurrent use.
type Clock struct {
	seq atomic.Int64
}

// NewClockAt creates a clock whose next value is start+1.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Run is one recording session. Records written through a run share its ID
// and take consecutive seq values continuing from the store's history.
type Run struct {
	ID         string
	StartedSeq int64

	clock *Clock
}

// NextSeq returns the seq for the next record in this run.
func (r *Run) NextSeq() int64 {
	return r.clock.Next()
}

// StartRun registers a new run whose records follow everything already stored.
func (s *Store) StartRun(ctx context.Context, gen IDGenerator) (*Run, error) {
	last, err := s.MaxSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	run := &Run{
		ID:         gen.Generate(),
		StartedSeq: last + 1,
		clock:      NewClockAt(last),
	}
	if err := s.WriteRun(ctx, run.ID, run.StartedSeq); err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	return run, nil
}
