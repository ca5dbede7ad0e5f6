package store

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRun_ContinuesSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := s.StartRun(ctx, NewFixedGenerator("run-1"))
	require.NoError(t, err)
	assert.Equal(t, "run-1", first.ID)
	assert.Equal(t, int64(1), first.StartedSeq)

	for i := 0; i < 3; i++ {
		seq := first.NextSeq()
		require.NoError(t, s.WriteRecord(ctx, createTestRecord(first.ID, seq)))
	}

	second, err := s.StartRun(ctx, NewFixedGenerator("run-2"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), second.StartedSeq)
	assert.Equal(t, int64(4), second.NextSeq())

	var started int64
	require.NoError(t, s.db.QueryRow("SELECT started_seq FROM runs WHERE id = ?", "run-2").Scan(&started))
	assert.Equal(t, int64(4), started)
}

func TestUUIDv7Generator(t *testing.T) {
	id := UUIDv7Generator{}.Generate()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, id, UUIDv7Generator{}.Generate())
}

func TestFixedGenerator_Exhausted(t *testing.T) {
	gen := NewFixedGenerator("a")
	assert.Equal(t, "a", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestClock_Concurrent(t *testing.T) {
	c := NewClockAt(10)
	const goroutines = 20
	const calls = 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[int64]bool)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < calls; j++ {
				seq := c.Next()
				mu.Lock()
				seen[seq] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, goroutines*calls)
	assert.Equal(t, int64(10+goroutines*calls+1), c.Next(), "no value was skipped or repeated")
}
