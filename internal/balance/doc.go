// Package balance balances chemical equations.
//
// A Generator owns one parsed equation and runs the full pipeline on Solve:
//
//	chem.ParseEquation -> linalg.AssignUnknowns -> linalg.Build
//	    -> linalg.Solve -> linalg.Reduce -> Result
//
// Solve is deterministic and builds a fresh Result on every call; nothing is
// shared between Generators, so concurrent callers each use their own.
//
// Example:
//
//	res, err := balance.Balance("Fe + O2 -> Fe2O3")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Balanced) // 4 Fe + 3 O2 → 2 Fe2O3
package balance
