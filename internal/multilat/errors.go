package multilat

import "errors"

// ErrInsufficientMeasurements is returned when fewer than three (sensor,
// distance) pairs intersect — multilateration is underdetermined below
// that (spec §4.3, §8).
var ErrInsufficientMeasurements = errors.New("multilat: fewer than 3 usable measurements")

// ErrSolverDivergence is returned when the Levenberg–Marquardt damping
// parameter grows past its cutoff without the residual shrinking.
var ErrSolverDivergence = errors.New("multilat: solver failed to converge")
