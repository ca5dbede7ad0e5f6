package linalg

import (
	"fmt"
	"math"

	"github.com/roach88/chembal/internal/chem"
)

const (
	// PivotTolerance is the smallest pivot magnitude treated as non-zero.
	PivotTolerance = 1e-10

	// residualTolerance bounds leftover right-hand sides in eliminated rows
	// and solved values treated as zero.
	residualTolerance = 1e-9
)

// Solve runs Gauss-Jordan elimination with partial pivoting on sys and
// returns one value per unknown.
//
// For each column the not-yet-pivoted row with the largest magnitude entry
// becomes the pivot (earliest row wins ties). Columns whose best pivot is
// below PivotTolerance are left unpivoted. The result is rejected with a
// *chem.SingularSystemError when
//   - a row reduces to 0 = c with c != 0 (inconsistent),
//   - any column stays unpivoted (more than one degree of freedom),
//   - any unknown solves to zero or a negative value.
func Solve(sys *System) ([]float64, error) {
	aug := sys.Augmented()
	n, m := len(aug), sys.Columns()

	// origin[i] is the index in sys.Rows of the row now at position i.
	origin := make([]int, n)
	for i := range origin {
		origin[i] = i
	}

	pivotCols := make([]int, 0, m)
	r := 0
	for col := 0; col < m && r < n; col++ {
		best := r
		for row := r + 1; row < n; row++ {
			if math.Abs(aug[row][col]) > math.Abs(aug[best][col]) {
				best = row
			}
		}
		if math.Abs(aug[best][col]) < PivotTolerance {
			continue
		}

		aug[r], aug[best] = aug[best], aug[r]
		origin[r], origin[best] = origin[best], origin[r]

		pivot := aug[r][col]
		for j := col; j <= m; j++ {
			aug[r][j] /= pivot
		}
		for row := 0; row < n; row++ {
			if row == r {
				continue
			}
			factor := aug[row][col]
			if factor == 0 {
				continue
			}
			for j := col; j <= m; j++ {
				aug[row][j] -= factor * aug[r][j]
			}
		}

		pivotCols = append(pivotCols, col)
		r++
	}

	for row := r; row < n; row++ {
		if math.Abs(aug[row][m]) > residualTolerance {
			src := sys.Rows[origin[row]]
			msg := "conservation equations contradict each other"
			if src.IsAnchor() {
				msg = "only the trivial all-zero solution exists"
			}
			return nil, &chem.SingularSystemError{
				Kind:    chem.SingularInconsistent,
				Message: msg,
				Row:     origin[row],
				Element: src.Element,
			}
		}
	}

	if len(pivotCols) < m {
		free := firstFreeColumn(pivotCols, m)
		u := sys.Unknowns[free]
		return nil, &chem.SingularSystemError{
			Kind:    chem.SingularUnderdetermined,
			Message: fmt.Sprintf("%d independent solutions; the equation combines unrelated reactions", m-len(pivotCols)+1),
			Row:     -1,
			Unknown: u.Name,
			Species: u.Species,
		}
	}

	x := make([]float64, m)
	for i, col := range pivotCols {
		x[col] = aug[i][m]
	}

	for col, v := range x {
		if v > residualTolerance {
			continue
		}
		u := sys.Unknowns[col]
		msg := "species cannot take part in the reaction"
		if v < 0 {
			msg = "species belongs on the other side of the equation"
		}
		return nil, &chem.SingularSystemError{
			Kind:    chem.SingularNonPositive,
			Message: msg,
			Row:     -1,
			Unknown: u.Name,
			Species: u.Species,
		}
	}

	return x, nil
}

func firstFreeColumn(pivotCols []int, m int) int {
	pivoted := make([]bool, m)
	for _, c := range pivotCols {
		pivoted[c] = true
	}
	for c, ok := range pivoted {
		if !ok {
			return c
		}
	}
	return m - 1
}
