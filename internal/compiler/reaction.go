package compiler

import (
	"fmt"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/chembal/internal/ir"
)

// CompileReactionSet parses every reaction in a CUE reaction set.
// The returned specs are sorted by name.
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`reaction: water: { equation: "H2 + O2 = H2O" }`)
//	specs, err := CompileReactionSet(v)
func CompileReactionSet(v cue.Value) ([]ir.ReactionSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	setVal := v.LookupPath(cue.ParsePath("reaction"))
	if !setVal.Exists() {
		return nil, &CompileError{
			Field:   "reaction",
			Message: "at least one reaction is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := setVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var specs []ir.ReactionSpec
	for iter.Next() {
		spec, err := CompileReaction(iter.Value())
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return nil, &CompileError{
			Field:   "reaction",
			Message: "at least one reaction is required",
			Pos:     setVal.Pos(),
		}
	}

	slices.SortFunc(specs, func(a, b ir.ReactionSpec) int {
		return strings.Compare(a.Name, b.Name)
	})
	return specs, nil
}

// CompileReaction parses a single reaction struct. The name is taken from
// the last path selector, so v should be looked up as reaction.<name>.
func CompileReaction(v cue.Value) (ir.ReactionSpec, error) {
	if err := v.Err(); err != nil {
		return ir.ReactionSpec{}, formatCUEError(err)
	}

	var spec ir.ReactionSpec
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		spec.Name = labels[len(labels)-1].String()
	}

	eqVal := v.LookupPath(cue.ParsePath("equation"))
	if !eqVal.Exists() {
		return ir.ReactionSpec{}, &CompileError{
			Field:   spec.Name + ".equation",
			Message: "equation is required",
			Pos:     v.Pos(),
		}
	}
	equation, err := eqVal.String()
	if err != nil {
		return ir.ReactionSpec{}, &CompileError{
			Field:   spec.Name + ".equation",
			Message: "equation must be a string",
			Pos:     eqVal.Pos(),
		}
	}
	if strings.TrimSpace(equation) == "" {
		return ir.ReactionSpec{}, &CompileError{
			Field:   spec.Name + ".equation",
			Message: "equation must be non-empty",
			Pos:     eqVal.Pos(),
		}
	}
	spec.Equation = equation

	expectVal := v.LookupPath(cue.ParsePath("expect"))
	if expectVal.Exists() {
		spec.Expect, err = parseExpect(spec.Name, expectVal)
		if err != nil {
			return ir.ReactionSpec{}, err
		}
	}

	return spec, nil
}

// parseExpect reads a list of integer coefficients. Floats are rejected.
func parseExpect(name string, v cue.Value) ([]int64, error) {
	iter, err := v.List()
	if err != nil {
		return nil, &CompileError{
			Field:   name + ".expect",
			Message: "expect must be a list of integers",
			Pos:     v.Pos(),
		}
	}

	expect := []int64{}
	for i := 0; iter.Next(); i++ {
		item := iter.Value()
		if item.IncompleteKind() != cue.IntKind {
			return nil, &CompileError{
				Field:   fmt.Sprintf("%s.expect[%d]", name, i),
				Message: fmt.Sprintf("expected int, got %s", item.IncompleteKind()),
				Pos:     item.Pos(),
			}
		}
		n, err := item.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		expect = append(expect, n)
	}
	return expect, nil
}

// CompileError is a shape error in a reaction set, with its CUE position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
