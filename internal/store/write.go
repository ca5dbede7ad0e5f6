package store

import (
	"context"
	"fmt"

	"github.com/roach88/chembal/internal/ir"
)

// WriteRun inserts a run row.
// Uses ON CONFLICT(id) DO NOTHING for idempotency.
func (s *Store) WriteRun(ctx context.Context, id string, startedSeq int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_seq)
		VALUES (?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, startedSeq)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteRecord inserts a balance record into the store.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
//
// The record body is serialized to canonical JSON per RFC 8785. The run
// referenced by RunID must exist (foreign key constraint).
func (s *Store) WriteRecord(ctx context.Context, rec ir.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("write record: empty id")
	}

	body, err := ir.MarshalCanonical(rec.Body())
	if err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	contentHash, err := ir.ContentHash(rec)
	if err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records
		(id, run_id, seq, input, balanced, body, content_hash, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.RunID,
		rec.Seq,
		rec.Input,
		rec.Balanced,
		string(body),
		contentHash,
		rec.IRVersion,
	)
	if err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	return nil
}
