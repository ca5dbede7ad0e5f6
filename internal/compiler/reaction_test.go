package compiler

import (
	"errors"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileReactionSetBasic(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		reaction: rust: { equation: "Fe + O2 = Fe2O3", expect: [4, 3, 2] }
		reaction: combustion: { equation: "CH4 + O2 = CO2 + H2O" }
	`)
	require.NoError(t, v.Err())

	specs, err := CompileReactionSet(v)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	// Sorted by name, not declaration order
	assert.Equal(t, "combustion", specs[0].Name)
	assert.Equal(t, "CH4 + O2 = CO2 + H2O", specs[0].Equation)
	assert.Nil(t, specs[0].Expect)

	assert.Equal(t, "rust", specs[1].Name)
	assert.Equal(t, []int64{4, 3, 2}, specs[1].Expect)
}

func TestCompileReactionSetMissingReaction(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`other: 1`)

	_, err := CompileReactionSet(v)
	require.Error(t, err)

	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, "reaction", compileErr.Field)
}

func TestCompileReactionSetEmpty(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`reaction: {}`)

	_, err := CompileReactionSet(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one reaction")
}

func TestCompileReactionMissingEquation(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`reaction: bad: { expect: [1, 1] }`, cue.Filename("set.cue"))

	_, err := CompileReactionSet(v)
	require.Error(t, err)

	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, "bad.equation", compileErr.Field)
	assert.Equal(t, "equation is required", compileErr.Message)
	assert.True(t, compileErr.Pos.IsValid())
	assert.Contains(t, err.Error(), "set.cue:1:")
}

func TestCompileReactionEmptyEquation(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`reaction: blank: { equation: "   " }`)

	_, err := CompileReactionSet(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "equation must be non-empty")
}

func TestCompileReactionEquationNotString(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`reaction: num: { equation: 42 }`)

	_, err := CompileReactionSet(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "equation must be a string")
}

func TestCompileReactionRejectsFloatExpect(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`reaction: water: { equation: "H2 + O2 = H2O", expect: [2, 1.5, 2] }`)

	_, err := CompileReactionSet(v)
	require.Error(t, err)

	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, "water.expect[1]", compileErr.Field)
	assert.Contains(t, compileErr.Message, "expected int")
}

func TestCompileReactionExpectNotList(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`reaction: water: { equation: "H2 + O2 = H2O", expect: "2 1 2" }`)

	_, err := CompileReactionSet(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expect must be a list of integers")
}

func TestCompileReactionSetCUEError(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`reaction: water: { equation: "H2" & "O2" }`)

	_, err := CompileReactionSet(v)
	require.Error(t, err)
}

func TestCompileReactionDirect(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`reaction: photosynthesis: { equation: "CO2 + H2O -> C6H12O6 + O2" }`)
	require.NoError(t, v.Err())

	spec, err := CompileReaction(v.LookupPath(cue.ParsePath("reaction.photosynthesis")))
	require.NoError(t, err)
	assert.Equal(t, "photosynthesis", spec.Name)
	assert.Equal(t, "CO2 + H2O -> C6H12O6 + O2", spec.Equation)
}
