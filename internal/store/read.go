package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/chembal/internal/ir"
)

const recordColumns = `id, run_id, seq, input, balanced, body, ir_version`

// recordBody mirrors the array fields of ir.Record.Body for decoding.
type recordBody struct {
	Reactants    []string `json:"reactants"`
	Products     []string `json:"products"`
	Elements     []string `json:"elements"`
	Coefficients []int64  `json:"coefficients"`
}

// ReadRecord retrieves a single record by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRecord(ctx context.Context, id string) (ir.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM records
		WHERE id = ?
	`, id)
	return scanRecord(row)
}

// ListRecords returns the most recent records, oldest first.
// A non-positive limit returns every record.
func (s *Store) ListRecords(ctx context.Context, limit int) ([]ir.Record, error) {
	if limit <= 0 {
		return s.queryRecords(ctx, `
			SELECT `+recordColumns+`
			FROM records
			ORDER BY seq ASC, id COLLATE BINARY ASC
		`)
	}
	return s.queryRecords(ctx, `
		SELECT `+recordColumns+` FROM (
			SELECT `+recordColumns+`
			FROM records
			ORDER BY seq DESC, id COLLATE BINARY DESC
			LIMIT ?
		)
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, limit)
}

// ListRun returns every record of one run in seq order.
// Returns an empty slice (not nil) for an unknown run.
func (s *Store) ListRun(ctx context.Context, runID string) ([]ir.Record, error) {
	return s.queryRecords(ctx, `
		SELECT `+recordColumns+`
		FROM records
		WHERE run_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, runID)
}

// FindByContent returns every record whose body matches rec's, across runs.
func (s *Store) FindByContent(ctx context.Context, rec ir.Record) ([]ir.Record, error) {
	hash, err := ir.ContentHash(rec)
	if err != nil {
		return nil, fmt.Errorf("find by content: %w", err)
	}
	return s.queryRecords(ctx, `
		SELECT `+recordColumns+`
		FROM records
		WHERE content_hash = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, hash)
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]ir.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []ir.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (ir.Record, error) {
	var rec ir.Record
	var body string
	err := sc.Scan(&rec.ID, &rec.RunID, &rec.Seq, &rec.Input, &rec.Balanced, &body, &rec.IRVersion)
	if err == sql.ErrNoRows {
		return ir.Record{}, err
	}
	if err != nil {
		return ir.Record{}, fmt.Errorf("scan record: %w", err)
	}

	var decoded recordBody
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return ir.Record{}, fmt.Errorf("unmarshal body of %s: %w", rec.ID, err)
	}
	rec.Reactants = decoded.Reactants
	rec.Products = decoded.Products
	rec.Elements = decoded.Elements
	rec.Coefficients = decoded.Coefficients
	return rec, nil
}
