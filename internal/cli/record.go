package cli

import (
	"context"

	"github.com/roach88/chembal/internal/balance"
	"github.com/roach88/chembal/internal/store"
)

// recorder writes balanced results to the history store under one run.
// A nil recorder records nothing.
type recorder struct {
	store *store.Store
	run   *store.Run
}

// openRecorder opens the history database at path and starts a run.
// An empty path disables recording and returns a nil recorder.
func openRecorder(ctx context.Context, path string, gen store.IDGenerator) (*recorder, error) {
	if path == "" {
		return nil, nil
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	run, err := st.StartRun(ctx, gen)
	if err != nil {
		st.Close()
		return nil, err
	}
	return &recorder{store: st, run: run}, nil
}

// record stores res and returns its record ID.
func (r *recorder) record(ctx context.Context, res *balance.Result) (string, error) {
	if r == nil {
		return "", nil
	}
	rec, err := res.Record(r.run.ID, r.run.NextSeq())
	if err != nil {
		return "", err
	}
	if err := r.store.WriteRecord(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (r *recorder) runID() string {
	if r == nil {
		return ""
	}
	return r.run.ID
}

func (r *recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.store.Close()
}
