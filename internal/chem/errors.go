package chem

import (
	"errors"
	"fmt"
	"strings"
)

// FormatErrorCode categorizes malformed input.
type FormatErrorCode string

const (
	// ErrCodeSeparator indicates zero or more than one reaction separator.
	ErrCodeSeparator FormatErrorCode = "SEPARATOR"

	// ErrCodeEmptySide indicates a side with no formula tokens.
	ErrCodeEmptySide FormatErrorCode = "EMPTY_SIDE"

	// ErrCodeEmptyFormula indicates a formula with no characters.
	ErrCodeEmptyFormula FormatErrorCode = "EMPTY_FORMULA"

	// ErrCodeInvalidCharacter indicates a character outside letters, digits and parentheses.
	ErrCodeInvalidCharacter FormatErrorCode = "INVALID_CHARACTER"

	// ErrCodeInvalidToken indicates a fragment that is not an element symbol or count.
	ErrCodeInvalidToken FormatErrorCode = "INVALID_TOKEN"

	// ErrCodeUnbalancedParens indicates unmatched or empty parenthesized groups.
	ErrCodeUnbalancedParens FormatErrorCode = "UNBALANCED_PARENS"

	// ErrCodeExpansionLimit indicates group multipliers that expand beyond the allowed size.
	ErrCodeExpansionLimit FormatErrorCode = "EXPANSION_LIMIT"

	// ErrCodeInvalidCount indicates a zero or out-of-range multiplier.
	ErrCodeInvalidCount FormatErrorCode = "INVALID_COUNT"
)

// FormatError reports a malformed equation or formula.
//
// Token is the species token being parsed when the error occurred (empty for
// equation-level errors). Fragment is the offending part of the input and
// Offset its byte position within Token, or -1 when no position applies.
type FormatError struct {
	Code     FormatErrorCode
	Message  string
	Token    string
	Fragment string
	Offset   int

	// Side is "reactants" or "products" for side-level errors.
	Side string
}

func (e *FormatError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	if e.Token != "" {
		fmt.Fprintf(&b, " (token=%q", e.Token)
		if e.Offset >= 0 {
			fmt.Fprintf(&b, ", offset=%d", e.Offset)
		}
		b.WriteString(")")
	} else if e.Side != "" {
		fmt.Fprintf(&b, " (side=%s)", e.Side)
	}
	return b.String()
}

// SingularErrorKind categorizes unsolvable linear systems.
type SingularErrorKind string

const (
	// SingularUnderdetermined means more than one independent degree of freedom remains.
	SingularUnderdetermined SingularErrorKind = "UNDERDETERMINED"

	// SingularInconsistent means the conservation equations contradict the anchor.
	SingularInconsistent SingularErrorKind = "INCONSISTENT"

	// SingularNonPositive means a species solved to zero or a negative amount.
	SingularNonPositive SingularErrorKind = "NON_POSITIVE"
)

// SingularSystemError reports that no usable non-trivial solution exists.
//
// Row is the index of the equation row involved (-1 if none), Element the
// element that row conserves ("" for the anchor row). Unknown and Species name
// the coefficient involved, if any.
type SingularSystemError struct {
	Kind    SingularErrorKind
	Message string
	Row     int
	Element string
	Unknown string
	Species string
}

func (e *SingularSystemError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	switch {
	case e.Species != "":
		return fmt.Sprintf("%s (unknown=%s, species=%s)", msg, e.Unknown, e.Species)
	case e.Element != "":
		return fmt.Sprintf("%s (row=%d, element=%s)", msg, e.Row, e.Element)
	case e.Row >= 0:
		return fmt.Sprintf("%s (row=%d)", msg, e.Row)
	}
	return msg
}

// DegenerateSolutionError reports that rational reduction found no positive component.
type DegenerateSolutionError struct {
	Message string
	Values  []float64
}

func (e *DegenerateSolutionError) Error() string {
	return fmt.Sprintf("DEGENERATE: %s (values=%v)", e.Message, e.Values)
}

// IsFormatError returns true if err is or wraps a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsSingularError returns true if err is or wraps a SingularSystemError.
func IsSingularError(err error) bool {
	var se *SingularSystemError
	return errors.As(err, &se)
}

// IsDegenerateError returns true if err is or wraps a DegenerateSolutionError.
func IsDegenerateError(err error) bool {
	var de *DegenerateSolutionError
	return errors.As(err, &de)
}

// Error classes, one per error type. Scenario files and CLI output use these names.
const (
	ClassFormat     = "format"
	ClassSingular   = "singular"
	ClassDegenerate = "degenerate"
)

// Classify returns the class of err and its finer code: the FormatErrorCode
// for format errors, the SingularErrorKind for singular systems, and
// "DEGENERATE" for degenerate solutions. Both are empty for any other error.
func Classify(err error) (class, code string) {
	var fe *FormatError
	if errors.As(err, &fe) {
		return ClassFormat, string(fe.Code)
	}
	var se *SingularSystemError
	if errors.As(err, &se) {
		return ClassSingular, string(se.Kind)
	}
	var de *DegenerateSolutionError
	if errors.As(err, &de) {
		return ClassDegenerate, "DEGENERATE"
	}
	return "", ""
}
