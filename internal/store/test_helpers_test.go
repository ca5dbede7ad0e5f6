package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/chembal/internal/ir"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord builds a water-synthesis record with its ID filled in.
func createTestRecord(runID string, seq int64) ir.Record {
	rec := ir.Record{
		RunID:        runID,
		Seq:          seq,
		Input:        "H2 + O2 = H2O",
		Balanced:     "2 H2 + O2 → 2 H2O",
		Reactants:    []string{"H2", "O2"},
		Products:     []string{"H2O"},
		Elements:     []string{"H", "O"},
		Coefficients: []int64{2, 1, 2},
		IRVersion:    ir.IRVersion,
	}
	rec.ID = ir.MustRecordID(rec)
	return rec
}

func mustWriteRun(t *testing.T, s *Store, id string, startedSeq int64) {
	t.Helper()
	if err := s.WriteRun(context.Background(), id, startedSeq); err != nil {
		t.Fatalf("WriteRun(%q) failed: %v", id, err)
	}
}
