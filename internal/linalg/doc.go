// Package linalg turns a parsed equation into a homogeneous linear system,
// solves it, and reduces the solution to minimal positive integers.
//
// Pipeline:
//
//	AssignUnknowns -> Build -> Solve -> Reduce
//
// Build emits one conservation row per element (reactant terms positive,
// product terms negated) and a final anchor row fixing the first unknown to 1.
// Solve runs Gauss-Jordan elimination with partial pivoting and rejects
// systems that are inconsistent, have more than one degree of freedom, or
// solve a species to a non-positive amount. Reduce reconstructs exact
// fractions by continued-fraction expansion and scales them to the smallest
// integer vector with the same ratios.
//
// Systems are tiny (rows ~ distinct elements), so everything is dense and
// direct. Row and column order is fully determined by the equation, and ties
// during pivoting go to the earliest row, so results are reproducible.
package linalg
