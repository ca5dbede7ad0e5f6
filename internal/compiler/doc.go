// Package compiler turns CUE reaction sets into ir.ReactionSpec values.
//
// A reaction set is a CUE file with a top-level reaction struct:
//
//	reaction: combustion: { equation: "CH4 + O2 = CO2 + H2O" }
//	reaction: rust: { equation: "Fe + O2 = Fe2O3", expect: [4, 3, 2] }
//
// Compilation checks shape (types, required fields) and reports CUE source
// positions. Validate then checks content against the chemistry parser.
package compiler
