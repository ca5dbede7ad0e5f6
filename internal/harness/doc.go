// Package harness runs conformance scenarios against the balancer.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: combustion
//	description: "Hydrocarbon combustion balances with integer coefficients"
//	reactions:
//	  - equation: "CH4 + O2 = CO2 + H2O"
//	    expect:
//	      coefficients: [1, 2, 1, 2]
//	      balanced: "CH4 + 2 O2 → CO2 + 2 H2O"
//	  - equation: "H2 = O2"
//	    expect:
//	      error: singular
//	      code: INCONSISTENT
//
// An expect clause either names an error class (format, singular or
// degenerate, optionally narrowed by code) or describes the balanced result.
// A reaction without expect passes when it balances.
//
// Every balanced reaction is also checked for conservation of each element
// and recorded in a fresh in-memory store, so record IDs in golden files are
// reproducible.
//
// # Golden Files
//
// RunWithGolden snapshots the outcomes as canonical JSON under
// testdata/golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
