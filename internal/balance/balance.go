package balance

import (
	"fmt"
	"strings"

	"github.com/roach88/chembal/internal/chem"
	"github.com/roach88/chembal/internal/linalg"
)

// Arrow separates reactants from products in rendered equations.
const Arrow = "→"

// Generator balances one parsed equation.
type Generator struct {
	input    string
	equation *chem.Equation
}

// New parses raw into a Generator. Parse failures are *chem.FormatError.
func New(raw string) (*Generator, error) {
	eq, err := chem.ParseEquation(raw)
	if err != nil {
		return nil, err
	}
	return &Generator{input: raw, equation: eq}, nil
}

// Balance parses and solves raw in one step.
func Balance(raw string) (*Result, error) {
	g, err := New(raw)
	if err != nil {
		return nil, err
	}
	return g.Solve()
}

// Equation returns the parsed equation.
func (g *Generator) Equation() *chem.Equation {
	return g.equation
}

// Solve computes the smallest positive integer coefficients.
//
// Errors are *chem.SingularSystemError when no single positive solution
// exists, and *chem.DegenerateSolutionError when the solution cannot be
// reduced to positive integers.
func (g *Generator) Solve() (*Result, error) {
	eq := g.equation
	unknowns := linalg.AssignUnknowns(eq)
	sys := linalg.Build(eq, unknowns)

	solution, err := linalg.Solve(sys)
	if err != nil {
		return nil, err
	}
	coefficients, err := linalg.Reduce(solution)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Input:        g.input,
		Reactants:    eq.ReactantFormulas(),
		Products:     eq.ProductFormulas(),
		Elements:     eq.Elements(),
		Unknowns:     unknowns,
		Anchor:       sys.Format(sys.Rows[len(sys.Rows)-1]),
		Solution:     solution,
		Coefficients: coefficients,
		equation:     eq,
	}
	for _, row := range sys.ElementRows() {
		res.Equations = append(res.Equations, ElementEquation{
			Element: row.Element,
			Text:    sys.Format(row),
		})
	}
	res.Balanced = res.render()
	return res, nil
}

// ElementEquation is the conservation equation of one element,
// e.g. {"H", "2*a - 2*c = 0"}.
type ElementEquation struct {
	Element string `json:"element"`
	Text    string `json:"equation"`
}

// Result is the outcome of one balancing request.
// Coefficients are indexed like Species(): reactants first, then products.
type Result struct {
	Input        string            `json:"input"`
	Reactants    []string          `json:"reactants"`
	Products     []string          `json:"products"`
	Elements     []string          `json:"elements"`
	Unknowns     []linalg.Unknown  `json:"-"`
	Equations    []ElementEquation `json:"equations"`
	Anchor       string            `json:"anchor"`
	Solution     []float64         `json:"-"`
	Coefficients []int64           `json:"coefficients"`
	Balanced     string            `json:"balanced"`

	equation *chem.Equation
}

// Species returns reactant formulas followed by product formulas.
func (r *Result) Species() []string {
	all := make([]string, 0, len(r.Reactants)+len(r.Products))
	all = append(all, r.Reactants...)
	return append(all, r.Products...)
}

// CoefficientOf returns the coefficient of the i-th species.
func (r *Result) CoefficientOf(i int) int64 {
	return r.Coefficients[i]
}

// Variables maps unknown names to species formulas in column order,
// e.g. ["a → H2", "b → O2", "c → H2O"].
func (r *Result) Variables() []string {
	out := make([]string, len(r.Unknowns))
	for i, u := range r.Unknowns {
		out[i] = fmt.Sprintf("%s %s %s", u.Name, Arrow, u.Species)
	}
	return out
}

func (r *Result) render() string {
	n := len(r.Reactants)
	return renderSide(r.Reactants, r.Coefficients[:n]) + " " + Arrow + " " + renderSide(r.Products, r.Coefficients[n:])
}

func renderSide(formulas []string, coefficients []int64) string {
	terms := make([]string, len(formulas))
	for i, f := range formulas {
		if coefficients[i] == 1 {
			terms[i] = f
		} else {
			terms[i] = fmt.Sprintf("%d %s", coefficients[i], f)
		}
	}
	return strings.Join(terms, " + ")
}

// Verify re-checks that every element is conserved, that every coefficient
// is positive, and that the coefficients share no common factor.
func (r *Result) Verify() error {
	species := r.equation.Species()
	if len(species) != len(r.Coefficients) {
		return fmt.Errorf("have %d coefficients for %d species", len(r.Coefficients), len(species))
	}

	var common int64
	for i, c := range r.Coefficients {
		if c <= 0 {
			return fmt.Errorf("coefficient of %s is %d", species[i].Formula, c)
		}
		common = gcd(common, c)
	}
	if common != 1 {
		return fmt.Errorf("coefficients share factor %d", common)
	}

	for _, el := range r.Elements {
		var left, right int64
		for i, sp := range species {
			atoms := r.Coefficients[i] * int64(sp.Counts.Count(el))
			if sp.Side == chem.Reactant {
				left += atoms
			} else {
				right += atoms
			}
		}
		if left != right {
			return fmt.Errorf("element %s not conserved: %d reactant atoms, %d product atoms", el, left, right)
		}
	}
	return nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
