package chem

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// maxExpansionPasses bounds innermost-group expansion, i.e. nesting depth.
	maxExpansionPasses = 64

	// maxExpandedLength bounds the flattened formula size.
	maxExpandedLength = 1 << 16
)

var (
	tokenPattern   = regexp.MustCompile(`[A-Z][a-z]*\d*|\(|\)\d*`)
	groupPattern   = regexp.MustCompile(`\(([^()]+)\)(\d*)`)
	elementPattern = regexp.MustCompile(`([A-Z][a-z]*)(\d*)`)
)

// ElementCount maps element symbols to atom counts within one formula.
// Elements iterate in first-seen order; every stored count is at least 1.
type ElementCount struct {
	elements []string
	counts   map[string]int
}

func (c *ElementCount) add(element string, n int) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, ok := c.counts[element]; !ok {
		c.elements = append(c.elements, element)
	}
	c.counts[element] += n
}

// Count returns the number of atoms of element, or 0 if absent.
func (c ElementCount) Count(element string) int {
	return c.counts[element]
}

// Elements returns the element symbols in first-seen order.
func (c ElementCount) Elements() []string {
	return slices.Clone(c.elements)
}

// Len returns the number of distinct elements.
func (c ElementCount) Len() int {
	return len(c.elements)
}

// Map returns a copy of the counts.
func (c ElementCount) Map() map[string]int {
	if c.counts == nil {
		return map[string]int{}
	}
	return maps.Clone(c.counts)
}

func (c ElementCount) String() string {
	parts := make([]string, len(c.elements))
	for i, el := range c.elements {
		parts[i] = fmt.Sprintf("%s:%d", el, c.counts[el])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ParseFormula counts the atoms of each element in a chemical formula.
//
// Parenthesized groups with an optional trailing multiplier are expanded
// innermost-first until none remain; the flat result is then scanned for
// element symbols with optional counts. Unicode subscript digits are accepted
// and folded to ASCII.
func ParseFormula(formula string) (ElementCount, error) {
	f := norm.NFKC.String(strings.TrimSpace(formula))
	if f == "" {
		return ElementCount{}, &FormatError{
			Code:    ErrCodeEmptyFormula,
			Message: "formula is empty",
			Token:   formula,
			Offset:  -1,
		}
	}

	if err := scanFormula(f); err != nil {
		return ElementCount{}, err
	}

	flat, err := expandGroups(f)
	if err != nil {
		return ElementCount{}, err
	}

	var counts ElementCount
	for _, m := range elementPattern.FindAllStringSubmatch(flat, -1) {
		n := 1
		if m[2] != "" {
			// scanFormula already rejected unparsable and zero counts
			n, _ = strconv.Atoi(m[2])
		}
		counts.add(m[1], n)
	}
	return counts, nil
}

// scanFormula validates the character set, token structure, counts and
// parenthesis balance of an unexpanded formula.
func scanFormula(f string) error {
	for i, r := range f {
		if !isFormulaRune(r) {
			return &FormatError{
				Code:     ErrCodeInvalidCharacter,
				Message:  fmt.Sprintf("unexpected character %q", r),
				Token:    f,
				Fragment: string(r),
				Offset:   i,
			}
		}
	}

	depth, pos, lastOpen := 0, 0, -1
	for _, loc := range tokenPattern.FindAllStringIndex(f, -1) {
		if loc[0] != pos {
			return invalidToken(f, pos, loc[0])
		}
		tok := f[loc[0]:loc[1]]
		switch tok[0] {
		case '(':
			if loc[1] < len(f) && f[loc[1]] == ')' {
				return &FormatError{
					Code:     ErrCodeUnbalancedParens,
					Message:  "empty group",
					Token:    f,
					Fragment: "()",
					Offset:   loc[0],
				}
			}
			depth++
			lastOpen = loc[0]
		case ')':
			depth--
			if depth < 0 {
				return &FormatError{
					Code:     ErrCodeUnbalancedParens,
					Message:  "unmatched ')'",
					Token:    f,
					Fragment: ")",
					Offset:   loc[0],
				}
			}
		}
		if err := checkCount(f, tok, loc[0]); err != nil {
			return err
		}
		pos = loc[1]
	}
	if pos != len(f) {
		return invalidToken(f, pos, len(f))
	}
	if depth != 0 {
		return &FormatError{
			Code:     ErrCodeUnbalancedParens,
			Message:  "unclosed '('",
			Token:    f,
			Fragment: "(",
			Offset:   lastOpen,
		}
	}
	return nil
}

func isFormulaRune(r rune) bool {
	return ('A' <= r && r <= 'Z') || ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') || r == '(' || r == ')'
}

func invalidToken(f string, start, end int) *FormatError {
	return &FormatError{
		Code:     ErrCodeInvalidToken,
		Message:  fmt.Sprintf("%q is not an element symbol", f[start:end]),
		Token:    f,
		Fragment: f[start:end],
		Offset:   start,
	}
}

func checkCount(f, tok string, offset int) error {
	digits := strings.TrimLeftFunc(tok, func(r rune) bool { return r < '0' || r > '9' })
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n == 0 {
		return &FormatError{
			Code:     ErrCodeInvalidCount,
			Message:  fmt.Sprintf("invalid count %q", digits),
			Token:    f,
			Fragment: tok,
			Offset:   offset,
		}
	}
	return nil
}

// expandGroups replaces each innermost "(content)n" with content repeated n
// times until no parentheses remain.
func expandGroups(f string) (string, error) {
	original := f
	for pass := 0; strings.ContainsRune(f, '('); pass++ {
		if pass >= maxExpansionPasses {
			return "", &FormatError{
				Code:    ErrCodeExpansionLimit,
				Message: fmt.Sprintf("groups nested deeper than %d", maxExpansionPasses),
				Token:   original,
				Offset:  -1,
			}
		}

		tooLarge := false
		next := groupPattern.ReplaceAllStringFunc(f, func(group string) string {
			m := groupPattern.FindStringSubmatch(group)
			n := 1
			if m[2] != "" {
				n, _ = strconv.Atoi(m[2])
			}
			if n > maxExpandedLength || len(m[1])*n > maxExpandedLength {
				tooLarge = true
				return group
			}
			return strings.Repeat(m[1], n)
		})
		if tooLarge || len(next) > maxExpandedLength {
			return "", &FormatError{
				Code:    ErrCodeExpansionLimit,
				Message: fmt.Sprintf("expanded formula exceeds %d characters", maxExpandedLength),
				Token:   original,
				Offset:  -1,
			}
		}
		if next == f {
			return "", &FormatError{
				Code:    ErrCodeUnbalancedParens,
				Message: "group cannot be expanded",
				Token:   original,
				Offset:  -1,
			}
		}
		f = next
	}
	return f, nil
}
