package chem

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// Separator is the canonical reaction separator after normalization.
	Separator = "="

	// SpeciesSeparator splits one side into formulas.
	SpeciesSeparator = "+"
)

// arrowReplacer folds the accepted alternate separators into Separator.
var arrowReplacer = strings.NewReplacer("->", Separator, "→", Separator)

// Side identifies which side of an equation a species is on.
type Side int

const (
	Reactant Side = iota
	Product
)

func (s Side) String() string {
	if s == Product {
		return "products"
	}
	return "reactants"
}

// Species is one formula as written in an equation.
// Index is the position within its side, so repeated formulas stay distinct.
type Species struct {
	Formula string
	Side    Side
	Index   int
	Counts  ElementCount
}

// Equation holds the ordered reactants and products of a reaction.
type Equation struct {
	Reactants []Species
	Products  []Species
}

// Species returns reactants followed by products.
func (e *Equation) Species() []Species {
	all := make([]Species, 0, len(e.Reactants)+len(e.Products))
	all = append(all, e.Reactants...)
	return append(all, e.Products...)
}

// Elements returns every distinct element in first-seen order across
// reactants, then products.
func (e *Equation) Elements() []string {
	seen := make(map[string]bool)
	var elements []string
	for _, sp := range e.Species() {
		for _, el := range sp.Counts.elements {
			if !seen[el] {
				seen[el] = true
				elements = append(elements, el)
			}
		}
	}
	return elements
}

// ReactantFormulas returns the reactant formulas in order.
func (e *Equation) ReactantFormulas() []string {
	return formulas(e.Reactants)
}

// ProductFormulas returns the product formulas in order.
func (e *Equation) ProductFormulas() []string {
	return formulas(e.Products)
}

func formulas(species []Species) []string {
	out := make([]string, len(species))
	for i, sp := range species {
		out[i] = sp.Formula
	}
	return out
}

func (e *Equation) String() string {
	return strings.Join(e.ReactantFormulas(), " + ") + " = " + strings.Join(e.ProductFormulas(), " + ")
}

// NormalizeEquation folds Unicode compatibility forms, replaces "->" and "→"
// with "=", and collapses whitespace.
func NormalizeEquation(raw string) string {
	s := norm.NFKC.String(raw)
	s = arrowReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// ParseEquation splits a raw equation into reactant and product species and
// parses each formula.
func ParseEquation(raw string) (*Equation, error) {
	s := NormalizeEquation(raw)

	if n := strings.Count(s, Separator); n != 1 {
		msg := "missing separator; use '=', '->' or '→' between reactants and products"
		if n > 1 {
			msg = fmt.Sprintf("found %d separators, expected exactly one", n)
		}
		return nil, &FormatError{
			Code:     ErrCodeSeparator,
			Message:  msg,
			Fragment: s,
			Offset:   -1,
		}
	}

	lhs, rhs, _ := strings.Cut(s, Separator)

	reactants, err := parseSide(lhs, Reactant)
	if err != nil {
		return nil, err
	}
	products, err := parseSide(rhs, Product)
	if err != nil {
		return nil, err
	}

	return &Equation{Reactants: reactants, Products: products}, nil
}

func parseSide(text string, side Side) ([]Species, error) {
	var species []Species
	for _, tok := range strings.Split(text, SpeciesSeparator) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		counts, err := ParseFormula(tok)
		if err != nil {
			if fe, ok := err.(*FormatError); ok {
				fe.Token = tok
				fe.Side = side.String()
			}
			return nil, err
		}
		species = append(species, Species{
			Formula: tok,
			Side:    side,
			Index:   len(species),
			Counts:  counts,
		})
	}
	if len(species) == 0 {
		return nil, &FormatError{
			Code:     ErrCodeEmptySide,
			Message:  fmt.Sprintf("no %s given", side),
			Fragment: text,
			Offset:   -1,
			Side:     side.String(),
		}
	}
	return species, nil
}
