package balance

import (
	"fmt"
	"strings"
)

// Step is one stage of a worked solution, for didactic display.
type Step struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// Steps explains how r was obtained, from species to final equation.
func (r *Result) Steps() []Step {
	setup := append([]string{}, r.Variables()...)
	setup = append(setup, "")
	for _, eq := range r.Equations {
		setup = append(setup, fmt.Sprintf("%s: %s", eq.Element, eq.Text))
	}
	setup = append(setup, fmt.Sprintf("anchor: %s", r.Anchor))

	species := r.Species()
	coefficients := make([]string, len(species))
	for i, sp := range species {
		coefficients[i] = fmt.Sprintf("%s: %d", sp, r.Coefficients[i])
	}

	return []Step{
		{
			Title: "Separate Reactants and Products",
			Lines: []string{
				"Reactants: " + strings.Join(r.Reactants, ", "),
				"Products: " + strings.Join(r.Products, ", "),
			},
		},
		{
			Title: "Identify All Elements",
			Lines: []string{
				"Elements present: " + strings.Join(r.Elements, ", "),
				fmt.Sprintf("Number of elements: %d", len(r.Elements)),
			},
		},
		{Title: "Set Up Algebraic Equations", Lines: setup},
		{Title: "Obtain Integer Coefficients", Lines: coefficients},
		{Title: "Final Balanced Equation", Lines: []string{r.Balanced}},
	}
}
