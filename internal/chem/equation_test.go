package chem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEquationSeparators(t *testing.T) {
	inputs := []string{
		"H2 + O2 = H2O",
		"H2 + O2 -> H2O",
		"H2 + O2 → H2O",
		"  H2   +O2->H2O  ",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			eq, err := ParseEquation(in)
			require.NoError(t, err)
			assert.Equal(t, []string{"H2", "O2"}, eq.ReactantFormulas())
			assert.Equal(t, []string{"H2O"}, eq.ProductFormulas())
		})
	}
}

func TestParseEquationSpecies(t *testing.T) {
	eq, err := ParseEquation("CH4 + O2 = CO2 + H2O")
	require.NoError(t, err)

	all := eq.Species()
	require.Len(t, all, 4)
	assert.Equal(t, Reactant, all[0].Side)
	assert.Equal(t, 1, all[1].Index)
	assert.Equal(t, Product, all[2].Side)
	assert.Equal(t, 0, all[2].Index)
	assert.Equal(t, map[string]int{"C": 1, "H": 4}, all[0].Counts.Map())
	assert.Equal(t, "CH4 + O2 = CO2 + H2O", eq.String())
}

func TestParseEquationElementUniverseOrder(t *testing.T) {
	eq, err := ParseEquation("KMnO4 + HCl = KCl + MnCl2 + Cl2 + H2O")
	require.NoError(t, err)
	assert.Equal(t, []string{"K", "Mn", "O", "H", "Cl"}, eq.Elements())
}

func TestParseEquationDuplicateFormulasStayDistinct(t *testing.T) {
	eq, err := ParseEquation("H2 + H2 = H2")
	require.NoError(t, err)
	require.Len(t, eq.Reactants, 2)
	assert.Equal(t, 0, eq.Reactants[0].Index)
	assert.Equal(t, 1, eq.Reactants[1].Index)
}

func TestParseEquationSkipsEmptyTokens(t *testing.T) {
	eq, err := ParseEquation("H2 + + O2 = H2O +")
	require.NoError(t, err)
	assert.Len(t, eq.Reactants, 2)
	assert.Len(t, eq.Products, 1)
}

func TestParseEquationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  FormatErrorCode
		side  string
		token string
	}{
		{"missing separator", "H2 + O2 H2O", ErrCodeSeparator, "", ""},
		{"two separators", "H2 = O2 = H2O", ErrCodeSeparator, "", ""},
		{"mixed separators", "H2 -> O2 = H2O", ErrCodeSeparator, "", ""},
		{"empty reactants", "= H2O", ErrCodeEmptySide, "reactants", ""},
		{"empty products", "H2 + O2 ->", ErrCodeEmptySide, "products", ""},
		{"only plus", "+ = H2O", ErrCodeEmptySide, "reactants", ""},
		{"bad token", "H2 + O2 = H2o", ErrCodeInvalidToken, "products", "H2o"},
		{"bad char", "H2 + O$ = H2O", ErrCodeInvalidCharacter, "reactants", "O$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEquation(tt.input)
			require.Error(t, err)

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.code, fe.Code)
			assert.Equal(t, tt.side, fe.Side)
			assert.Equal(t, tt.token, fe.Token)
		})
	}
}

func TestNormalizeEquation(t *testing.T) {
	assert.Equal(t, "H2 + O2 = H2O", NormalizeEquation(" H₂ +  O₂ → H₂O "))
}

func TestErrorPredicates(t *testing.T) {
	fe := &FormatError{Code: ErrCodeSeparator, Message: "x", Offset: -1}
	se := &SingularSystemError{Kind: SingularInconsistent, Message: "x", Row: 2, Element: "O"}
	de := &DegenerateSolutionError{Message: "x"}

	assert.True(t, IsFormatError(fe))
	assert.False(t, IsFormatError(se))
	assert.True(t, IsSingularError(se))
	assert.True(t, IsDegenerateError(de))
	assert.False(t, IsDegenerateError(errors.New("plain")))

	assert.Equal(t, "INCONSISTENT: x (row=2, element=O)", se.Error())
	assert.Equal(t, "SEPARATOR: x", fe.Error())
}
