package balance

import "github.com/roach88/chembal/internal/ir"

// Record converts r into its persisted form for runID at position seq,
// with the content-addressed ID filled in.
func (r *Result) Record(runID string, seq int64) (ir.Record, error) {
	rec := ir.Record{
		RunID:        runID,
		Seq:          seq,
		Input:        r.Input,
		Balanced:     r.Balanced,
		Reactants:    r.Reactants,
		Products:     r.Products,
		Elements:     r.Elements,
		Coefficients: r.Coefficients,
		IRVersion:    ir.IRVersion,
	}
	id, err := ir.RecordID(rec)
	if err != nil {
		return ir.Record{}, err
	}
	rec.ID = id
	return rec, nil
}
