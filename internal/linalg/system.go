package linalg

import (
	"fmt"
	"strings"

	"github.com/roach88/chembal/internal/chem"
)

// unknownSymbols are the single-letter names handed out in order.
// "i" is skipped so it is never mistaken for an index.
const unknownSymbols = "abcdefghjklmnopqrstuvwxyz"

// Unknown is the coefficient variable of one species.
// Column is its position in the system: reactants first, then products.
type Unknown struct {
	Name    string
	Species string
	Side    chem.Side
	Column  int
}

// AssignUnknowns names one unknown per species by position, so identical
// formulas still get distinct unknowns.
func AssignUnknowns(eq *chem.Equation) []Unknown {
	species := eq.Species()
	unknowns := make([]Unknown, len(species))
	for i, sp := range species {
		unknowns[i] = Unknown{
			Name:    unknownName(i),
			Species: sp.Formula,
			Side:    sp.Side,
			Column:  i,
		}
	}
	return unknowns
}

func unknownName(i int) string {
	if i < len(unknownSymbols) {
		return unknownSymbols[i : i+1]
	}
	return fmt.Sprintf("x%d", i)
}

// Term is one coefficient*unknown product in a row.
type Term struct {
	Column      int
	Coefficient int
}

// Row is one linear equation: sum(Terms) = RHS.
// Element is the conserved element, or "" for the anchor row.
type Row struct {
	Element string
	Terms   []Term
	RHS     int
}

// IsAnchor reports whether r is the synthetic anchor row.
func (r Row) IsAnchor() bool {
	return r.Element == ""
}

// System is the per-element conservation system plus the anchor row.
type System struct {
	Unknowns []Unknown
	Rows     []Row
}

// Build emits one row per element in the equation's element universe and
// appends the anchor row unknown[0] = 1. Elements contributing no terms are
// skipped rather than emitted as 0 = 0.
func Build(eq *chem.Equation, unknowns []Unknown) *System {
	species := eq.Species()
	sys := &System{Unknowns: unknowns}

	for _, el := range eq.Elements() {
		var terms []Term
		for col, sp := range species {
			n := sp.Counts.Count(el)
			if n == 0 {
				continue
			}
			if sp.Side == chem.Product {
				n = -n
			}
			terms = append(terms, Term{Column: col, Coefficient: n})
		}
		if len(terms) == 0 {
			continue
		}
		sys.Rows = append(sys.Rows, Row{Element: el, Terms: terms})
	}

	sys.Rows = append(sys.Rows, Row{Terms: []Term{{Column: 0, Coefficient: 1}}, RHS: 1})
	return sys
}

// Columns returns the number of unknowns.
func (s *System) Columns() int {
	return len(s.Unknowns)
}

// ElementRows returns the conservation rows without the anchor.
func (s *System) ElementRows() []Row {
	rows := make([]Row, 0, len(s.Rows))
	for _, r := range s.Rows {
		if !r.IsAnchor() {
			rows = append(rows, r)
		}
	}
	return rows
}

// Augmented returns the dense [A | b] matrix, one slice per row.
func (s *System) Augmented() [][]float64 {
	m := s.Columns()
	aug := make([][]float64, len(s.Rows))
	for i, r := range s.Rows {
		aug[i] = make([]float64, m+1)
		for _, t := range r.Terms {
			aug[i][t.Column] += float64(t.Coefficient)
		}
		aug[i][m] = float64(r.RHS)
	}
	return aug
}

// Format renders r as "2*a - 2*c = 0". The anchor renders as "a = 1".
func (s *System) Format(r Row) string {
	if r.IsAnchor() {
		return fmt.Sprintf("%s = %d", s.Unknowns[r.Terms[0].Column].Name, r.RHS)
	}

	var b strings.Builder
	for i, t := range r.Terms {
		name := s.Unknowns[t.Column].Name
		c := t.Coefficient
		switch {
		case i == 0 && c < 0:
			fmt.Fprintf(&b, "-%d*%s", -c, name)
		case i == 0:
			fmt.Fprintf(&b, "%d*%s", c, name)
		case c < 0:
			fmt.Fprintf(&b, " - %d*%s", -c, name)
		default:
			fmt.Fprintf(&b, " + %d*%s", c, name)
		}
	}
	fmt.Fprintf(&b, " = %d", r.RHS)
	return b.String()
}

// Equations renders every element row in order.
func (s *System) Equations() []string {
	rows := s.ElementRows()
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = s.Format(r)
	}
	return out
}
