// Package chem parses chemical formulas and equations.
//
// A formula such as "K4Fe(CN)6" is flattened by expanding parenthesized
// groups innermost-first and then scanned for element tokens, producing an
// ElementCount. An equation such as "CH4 + O2 -> CO2 + H2O" is split into
// ordered reactant and product species, each carrying its ElementCount.
//
// The package also owns the closed error taxonomy shared by the balancing
// pipeline: FormatError, SingularSystemError and DegenerateSolutionError.
// Callers branch on kind with errors.As or the Is* helpers.
//
// Everything here is a pure function of its input. Nothing logs and nothing
// is cached between calls.
package chem
