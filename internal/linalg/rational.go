package linalg

import (
	"fmt"
	"math"
	"math/big"

	"github.com/roach88/chembal/internal/chem"
)

const (
	// MaxApproximationIterations bounds continued-fraction expansion.
	MaxApproximationIterations = 1000

	// ApproximationTolerance is the largest accepted |num/den - x|.
	ApproximationTolerance = 1e-6

	// maxExactFloat is the largest magnitude where every integer is a float64.
	maxExactFloat = 1 << 53
)

// Fraction is a reduced rational number with a positive denominator.
type Fraction struct {
	Num int64
	Den int64
}

func (f Fraction) String() string {
	if f.Den == 1 {
		return fmt.Sprintf("%d", f.Num)
	}
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// Approximate returns the first continued-fraction convergent of x within
// ApproximationTolerance. Values within tolerance of zero return 0/1.
func Approximate(x float64) Fraction {
	if math.Abs(x) < ApproximationTolerance {
		return Fraction{Num: 0, Den: 1}
	}

	sign := int64(1)
	if x < 0 {
		sign, x = -1, -x
	}
	if x >= maxExactFloat {
		return Fraction{Num: sign * int64(math.Round(x)), Den: 1}
	}

	// Convergent recurrences seeded with h(-2)/k(-2) = 0/1, h(-1)/k(-1) = 1/0.
	h0, h1 := int64(0), int64(1)
	k0, k1 := int64(1), int64(0)
	r := x
	for i := 0; i < MaxApproximationIterations; i++ {
		a := math.Floor(r)
		nh := a*float64(h1) + float64(h0)
		nk := a*float64(k1) + float64(k0)
		if nh >= maxExactFloat || nk >= maxExactFloat {
			break
		}
		ai := int64(a)
		h0, h1 = h1, ai*h1+h0
		k0, k1 = k1, ai*k1+k0

		if math.Abs(float64(h1)/float64(k1)-x) <= ApproximationTolerance {
			break
		}
		frac := r - a
		if frac == 0 {
			break
		}
		r = 1 / frac
	}

	g := gcd64(h1, k1)
	return Fraction{Num: sign * h1 / g, Den: k1 / g}
}

func gcd64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// Reduce converts a real-valued solution into the smallest positive integers
// with the same ratios.
//
// Each value is approximated as a fraction, all numerators are scaled by the
// LCM of the denominators, and the result is divided by the GCD of its
// entries. Vectors with a non-positive or non-finite entry, including
// all-negative ones, return a *chem.DegenerateSolutionError.
func Reduce(values []float64) ([]int64, error) {
	if len(values) == 0 {
		return nil, &chem.DegenerateSolutionError{Message: "empty solution"}
	}

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &chem.DegenerateSolutionError{Message: "solution is not finite", Values: values}
		}
		if v <= ApproximationTolerance {
			return nil, &chem.DegenerateSolutionError{
				Message: fmt.Sprintf("component %d is not positive", i),
				Values:  values,
			}
		}
	}

	fractions := make([]Fraction, len(values))
	lcm := big.NewInt(1)
	for i, v := range values {
		fractions[i] = Approximate(v)
		den := big.NewInt(fractions[i].Den)
		g := new(big.Int).GCD(nil, nil, lcm, den)
		lcm.Mul(lcm, new(big.Int).Quo(den, g))
	}

	ints := make([]*big.Int, len(fractions))
	common := new(big.Int)
	for i, f := range fractions {
		scale := new(big.Int).Quo(lcm, big.NewInt(f.Den))
		ints[i] = scale.Mul(scale, big.NewInt(f.Num))
		common.GCD(nil, nil, common, ints[i])
	}

	out := make([]int64, len(ints))
	for i, v := range ints {
		v.Quo(v, common)
		if !v.IsInt64() {
			return nil, &chem.DegenerateSolutionError{
				Message: fmt.Sprintf("coefficient %d overflows int64", i),
				Values:  values,
			}
		}
		out[i] = v.Int64()
	}
	return out, nil
}
