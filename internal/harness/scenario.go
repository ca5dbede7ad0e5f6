package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/chembal/internal/chem"
)

// DefaultRunID is used when a scenario does not pin its own run ID.
const DefaultRunID = "test-run-default"

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Reactions are balanced in order.
	Reactions []ReactionStep `yaml:"reactions"`

	// RunID is an optional fixed run ID for deterministic record IDs.
	// If empty, DefaultRunID is used.
	RunID string `yaml:"run_id,omitempty"`
}

// ReactionStep is one equation to balance.
type ReactionStep struct {
	Equation string `yaml:"equation"`

	// Expect specifies the expected outcome.
	// If nil, the reaction only has to balance.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies an expected outcome.
type ExpectClause struct {
	// Coefficients are the expected integers in species order.
	Coefficients []int64 `yaml:"coefficients,omitempty"`

	// Balanced is the expected rendered equation.
	Balanced string `yaml:"balanced,omitempty"`

	// Error is the expected error class: format, singular or degenerate.
	Error string `yaml:"error,omitempty"`

	// Code narrows Error to a format code or singular kind (e.g. SEPARATOR, INCONSISTENT).
	Code string `yaml:"code,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML from memory.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "reaction:" vs "reactions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Reactions) == 0 {
		return fmt.Errorf("reactions list is required and must be non-empty")
	}

	for i, step := range s.Reactions {
		if step.Equation == "" {
			return fmt.Errorf("reactions[%d]: equation is required", i)
		}
		if step.Expect != nil {
			if err := validateExpect(i, step.Expect); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateExpect rejects clauses that mix an error with a balanced result.
func validateExpect(index int, e *ExpectClause) error {
	switch e.Error {
	case "":
		if e.Code != "" {
			return fmt.Errorf("reactions[%d].expect: code requires error", index)
		}
	case chem.ClassFormat, chem.ClassSingular, chem.ClassDegenerate:
		if e.Coefficients != nil || e.Balanced != "" {
			return fmt.Errorf("reactions[%d].expect: error cannot be combined with coefficients or balanced", index)
		}
	default:
		return fmt.Errorf("reactions[%d].expect: unknown error class %q", index, e.Error)
	}

	for j, c := range e.Coefficients {
		if c <= 0 {
			return fmt.Errorf("reactions[%d].expect.coefficients[%d]: must be positive", index, j)
		}
	}

	return nil
}
