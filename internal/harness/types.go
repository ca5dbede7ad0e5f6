package harness

// Outcome is what happened to one reaction of a scenario.
type Outcome struct {
	Index    int    `json:"index"`
	Equation string `json:"equation"`
	Pass     bool   `json:"pass"`

	// Set when the reaction balanced.
	Balanced     string  `json:"balanced,omitempty"`
	Coefficients []int64 `json:"coefficients,omitempty"`
	RecordID     string  `json:"record_id,omitempty"`
	Seq          int64   `json:"seq,omitempty"`

	// Set when balancing failed.
	ErrorClass string `json:"error,omitempty"`
	ErrorCode  string `json:"code,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every reaction matched its expect clause.
	Pass bool `json:"pass"`

	// RunID is the run the balanced reactions were recorded under.
	RunID string `json:"run_id"`

	// Outcomes has one entry per reaction, in scenario order.
	Outcomes []Outcome `json:"outcomes"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(runID string) *Result {
	return &Result{
		Pass:     true,
		RunID:    runID,
		Outcomes: []Outcome{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Failed returns the outcomes that did not pass.
func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.Pass {
			failed = append(failed, o)
		}
	}
	return failed
}
