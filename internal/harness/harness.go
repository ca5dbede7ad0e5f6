package harness

import (
	"context"
	"fmt"
	"slices"

	"github.com/roach88/chembal/internal/balance"
	"github.com/roach88/chembal/internal/chem"
	"github.com/roach88/chembal/internal/store"
)

// Harness executes scenario reactions and records what balanced.
type Harness struct {
	store *store.Store
	run   *store.Run
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation, under a
// fixed run ID, so record IDs and seq values are reproducible.
//
// Execution flow:
// 1. Create fresh in-memory database and start the run
// 2. Balance each reaction, verifying conservation on success
// 3. Compare against the expect clause and record balanced results
// 4. Read the run back and check every balanced reaction was stored
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	runID := scenario.RunID
	if runID == "" {
		runID = DefaultRunID
	}

	ctx := context.Background()
	run, err := st.StartRun(ctx, store.NewFixedGenerator(runID))
	if err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	h := &Harness{store: st, run: run}
	result := NewResult(run.ID)

	recorded := 0
	for i, step := range scenario.Reactions {
		outcome, err := h.executeReaction(ctx, i, step)
		if err != nil {
			return nil, fmt.Errorf("reaction %d: %w", i, err)
		}
		if outcome.RecordID != "" {
			recorded++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	stored, err := st.ListRun(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read run: %w", err)
	}
	if len(stored) != recorded {
		result.AddError(fmt.Sprintf("store has %d records for run %s, expected %d", len(stored), run.ID, recorded))
	}

	for _, o := range result.Outcomes {
		if !o.Pass {
			result.AddError(fmt.Sprintf("reactions[%d] %q: %s", o.Index, o.Equation, o.Message))
		}
	}

	return result, nil
}

// executeReaction balances one step and evaluates its expect clause.
// Returned errors are infrastructure failures; mismatches are reported
// through Outcome.Pass and Outcome.Message.
func (h *Harness) executeReaction(ctx context.Context, index int, step ReactionStep) (Outcome, error) {
	outcome := Outcome{Index: index, Equation: step.Equation}
	expect := step.Expect
	if expect == nil {
		expect = &ExpectClause{}
	}

	res, err := balance.Balance(step.Equation)
	if err != nil {
		outcome.ErrorClass, outcome.ErrorCode = chem.Classify(err)
		outcome.Message = err.Error()
		outcome.Pass = matchError(expect, outcome.ErrorClass, outcome.ErrorCode)
		if !outcome.Pass && expect.Error != "" {
			outcome.Message = fmt.Sprintf("expected %s, got %s", describeError(expect.Error, expect.Code), err)
		}
		return outcome, nil
	}

	outcome.Balanced = res.Balanced
	outcome.Coefficients = res.Coefficients

	rec, err := res.Record(h.run.ID, h.run.NextSeq())
	if err != nil {
		return Outcome{}, err
	}
	if err := h.store.WriteRecord(ctx, rec); err != nil {
		return Outcome{}, err
	}
	outcome.RecordID = rec.ID
	outcome.Seq = rec.Seq

	if err := res.Verify(); err != nil {
		outcome.Message = fmt.Sprintf("conservation check failed: %v", err)
		return outcome, nil
	}

	switch {
	case expect.Error != "":
		outcome.Message = fmt.Sprintf("expected %s, got %s", describeError(expect.Error, expect.Code), res.Balanced)
	case expect.Coefficients != nil && !slices.Equal(expect.Coefficients, res.Coefficients):
		outcome.Message = fmt.Sprintf("coefficients %v, expected %v", res.Coefficients, expect.Coefficients)
	case expect.Balanced != "" && expect.Balanced != res.Balanced:
		outcome.Message = fmt.Sprintf("balanced %q, expected %q", res.Balanced, expect.Balanced)
	default:
		outcome.Pass = true
	}
	return outcome, nil
}

func matchError(expect *ExpectClause, class, code string) bool {
	if expect.Error == "" || expect.Error != class {
		return false
	}
	return expect.Code == "" || expect.Code == code
}

func describeError(class, code string) string {
	if code == "" {
		return class + " error"
	}
	return fmt.Sprintf("%s error %s", class, code)
}
