package compiler

import (
	"fmt"

	"github.com/roach88/chembal/internal/chem"
	"github.com/roach88/chembal/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrEquationEmpty     = "E101" // equation is required
	ErrDuplicateName     = "E102" // two reactions share a name
	ErrEquationInvalid   = "E103" // equation does not parse
	ErrExpectLength      = "E104" // expect length differs from species count
	ErrExpectNonPositive = "E105" // expected coefficient is zero or negative
	ErrExpectType        = "E106" // expect is not a list of integers
)

// ValidationError represents a reaction set validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks compiled reactions against the equation grammar.
// Returns all errors found (does not fail-fast).
func Validate(specs []ir.ReactionSpec) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)

	for _, spec := range specs {
		if seen[spec.Name] {
			errs = append(errs, ValidationError{
				Field:   spec.Name,
				Message: fmt.Sprintf("duplicate reaction name: %q", spec.Name),
				Code:    ErrDuplicateName,
			})
		}
		seen[spec.Name] = true

		if spec.Equation == "" {
			errs = append(errs, ValidationError{
				Field:   spec.Name + ".equation",
				Message: "equation is required",
				Code:    ErrEquationEmpty,
			})
			continue
		}

		eq, err := chem.ParseEquation(spec.Equation)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   spec.Name + ".equation",
				Message: err.Error(),
				Code:    ErrEquationInvalid,
			})
			continue
		}

		if spec.Expect == nil {
			continue
		}
		if n := len(eq.Species()); len(spec.Expect) != n {
			errs = append(errs, ValidationError{
				Field:   spec.Name + ".expect",
				Message: fmt.Sprintf("has %d coefficients for %d species", len(spec.Expect), n),
				Code:    ErrExpectLength,
			})
		}
		for i, c := range spec.Expect {
			if c <= 0 {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.expect[%d]", spec.Name, i),
					Message: fmt.Sprintf("coefficient must be positive, got %d", c),
					Code:    ErrExpectNonPositive,
				})
			}
		}
	}

	return errs
}
