package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/chembal/internal/ir"
)

// Snapshot converts a result into the canonical form stored in golden files.
// Messages are left out so error wording can change without churning goldens.
func Snapshot(scenarioName string, result *Result) ir.IRObject {
	outcomes := make(ir.IRArray, len(result.Outcomes))
	for i, o := range result.Outcomes {
		obj := ir.IRObject{
			"index":    ir.IRInt(o.Index),
			"equation": ir.IRString(o.Equation),
			"pass":     ir.IRBool(o.Pass),
		}
		if o.RecordID != "" {
			obj["balanced"] = ir.IRString(o.Balanced)
			obj["coefficients"] = ir.Ints(o.Coefficients)
			obj["record_id"] = ir.IRString(o.RecordID)
			obj["seq"] = ir.IRInt(o.Seq)
		}
		if o.ErrorClass != "" {
			obj["error"] = ir.IRString(o.ErrorClass)
			obj["code"] = ir.IRString(o.ErrorCode)
		}
		outcomes[i] = obj
	}

	return ir.IRObject{
		"scenario_name": ir.IRString(scenarioName),
		"run_id":        ir.IRString(result.RunID),
		"outcomes":      outcomes,
	}
}

// RunWithGolden executes a scenario and compares its outcomes against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if outcomes don't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an already-computed result against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := ir.MarshalCanonical(Snapshot(scenarioName, result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
