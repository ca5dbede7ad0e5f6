package chem

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantClass string
		wantCode  string
	}{
		{
			name:      "format",
			err:       &FormatError{Code: ErrCodeSeparator, Offset: -1},
			wantClass: ClassFormat,
			wantCode:  "SEPARATOR",
		},
		{
			name:      "wrapped singular",
			err:       fmt.Errorf("solve: %w", &SingularSystemError{Kind: SingularInconsistent, Row: -1}),
			wantClass: ClassSingular,
			wantCode:  "INCONSISTENT",
		},
		{
			name:      "degenerate",
			err:       &DegenerateSolutionError{Message: "no positive component"},
			wantClass: ClassDegenerate,
			wantCode:  "DEGENERATE",
		},
		{
			name: "other",
			err:  errors.New("boom"),
		},
		{
			name: "nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, code := Classify(tt.err)
			assert.Equal(t, tt.wantClass, class)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestErrorStrings(t *testing.T) {
	fe := &FormatError{Code: ErrCodeInvalidToken, Message: "bad token", Token: "Hx", Offset: 1}
	assert.Equal(t, `INVALID_TOKEN: bad token (token="Hx", offset=1)`, fe.Error())

	side := &FormatError{Code: ErrCodeEmptySide, Message: "no products given", Offset: -1, Side: "products"}
	assert.Equal(t, "EMPTY_SIDE: no products given (side=products)", side.Error())

	se := &SingularSystemError{Kind: SingularInconsistent, Message: "contradiction", Row: 2, Element: "O"}
	assert.Equal(t, "INCONSISTENT: contradiction (row=2, element=O)", se.Error())

	assert.True(t, IsFormatError(fe))
	assert.False(t, IsSingularError(fe))
	assert.True(t, IsSingularError(se))
	assert.True(t, IsDegenerateError(&DegenerateSolutionError{}))
}
