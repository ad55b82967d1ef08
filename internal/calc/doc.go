// Package calc provides the value and error types shared by the formula packages.
//
// Every formula in this module is a pure function returning a [Result]:
//
//   - [Result]: insertion-ordered mapping from output name to [Value]
//   - [Value]: a scalar, a sample series, a boolean flag or a text label
//   - [Known]: an input the caller either supplied or left to be solved
//
// Failures are returned, never logged. They unwrap to one of four sentinels
// so callers can classify them with errors.Is:
//
//   - [ErrInvalidCombination]: unsupported set of known inputs
//   - [ErrInvalidVariant]: unsupported variant name, see [VariantError]
//   - [ErrDomain]: mathematically undefined result
//   - [ErrNotFound]: static table miss
//
// # Example
//
//	res, err := stress.PressureVessel(stress.Sphere, 2e6, 0.5, 0.01)
//	if errors.Is(err, calc.ErrDomain) { ... }
//	hoop, _ := res.Scalar("hoop_stress")
//
// # Thread Safety
//
// A Result is not safe for concurrent mutation. Formula functions share no
// state and may be called from any number of goroutines.
package calc
