package ir

// Record is the persisted form of one balanced equation.
type Record struct {
	ID           string   `json:"id"`     // Content-addressed, see RecordID
	RunID        string   `json:"run_id"` // Groups records written by one CLI invocation
	Seq          int64    `json:"seq"`    // Position within the run
	Input        string   `json:"input"`
	Balanced     string   `json:"balanced"`
	Reactants    []string `json:"reactants"`
	Products     []string `json:"products"`
	Elements     []string `json:"elements"`
	Coefficients []int64  `json:"coefficients"`
	IRVersion    string   `json:"ir_version"`
}

// Body returns the balance content of r without identity fields.
func (r Record) Body() IRObject {
	return IRObject{
		"input":        IRString(r.Input),
		"balanced":     IRString(r.Balanced),
		"reactants":    Strings(r.Reactants),
		"products":     Strings(r.Products),
		"elements":     Strings(r.Elements),
		"coefficients": Ints(r.Coefficients),
		"ir_version":   IRString(r.IRVersion),
	}
}

// ReactionSpec is one named equation from a reaction set, with optional
// expected coefficients in species order.
type ReactionSpec struct {
	Name     string  `json:"name"`
	Equation string  `json:"equation"`
	Expect   []int64 `json:"expect,omitempty"`
}
