// Package multilat solves the non-linear least-squares multilateration
// problem: given a set of fixed sensor positions and their reported
// distances to a moving target, estimate the target's position.
package multilat

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"multilat/internal/geometry"
)

const (
	maxIterations       = 100
	maxDampingAttempts  = 30
	convergenceTol      = 1e-10
	initialLambda       = 1e-3
	lambdaUp            = 10.0
	lambdaDown          = 10.0
	lambdaMin           = 1e-12
	lambdaMax           = 1e12
	minResidualDistance = 1e-9
)

type measurement struct {
	pos  geometry.Vector3
	dist float64
}

// Solver holds the sensor-position snapshot taken at activation (spec
// §4.3) and warm-starts successive estimates from the previous solution.
type Solver struct {
	sensorPositions map[int32]geometry.Vector3
	initialGuess    geometry.Vector3
}

// New returns a solver with a zero initial guess, per spec §4.3.
func New() *Solver {
	return &Solver{}
}

// SetSensorPositions snapshots the registry's node positions. Called once
// at activation (spec §4.2's set_sensor_positions).
func (s *Solver) SetSensorPositions(nodes map[int32]geometry.Vector3) {
	snap := make(map[int32]geometry.Vector3, len(nodes))
	for id, pos := range nodes {
		snap[id] = pos
	}
	s.sensorPositions = snap
}

// EstimatePosition solves for the target position minimizing
// sum((‖p - sᵢ‖ - dᵢ)²) over the intersection of sensorPositions and
// distances, using Levenberg–Marquardt with warm-started initial guess.
func (s *Solver) EstimatePosition(distances map[int32]float64) (geometry.Vector3, error) {
	measurements := s.intersect(distances)
	if len(measurements) < 3 {
		return geometry.Vector3{}, ErrInsufficientMeasurements
	}

	p := s.initialGuess
	lambda := initialLambda
	cost := sumSquaredResiduals(p, measurements)

	for iter := 0; iter < maxIterations; iter++ {
		if cost < convergenceTol {
			break
		}

		j, r := jacobianAndResiduals(p, measurements)
		var jt mat.Dense
		jt.CloneFrom(j.T())
		var jtj mat.Dense
		jtj.Mul(&jt, j)
		var jtr mat.VecDense
		jtr.MulVec(&jt, r)

		improved := false
		for attempt := 0; attempt < maxDampingAttempts; attempt++ {
			var a mat.Dense
			a.CloneFrom(&jtj)
			for k := 0; k < 3; k++ {
				a.Set(k, k, a.At(k, k)*(1+lambda))
			}

			var negJtr mat.VecDense
			negJtr.ScaleVec(-1, &jtr)

			var delta mat.VecDense
			if err := delta.SolveVec(&a, &negJtr); err != nil {
				lambda *= lambdaUp
				if lambda > lambdaMax {
					return geometry.Vector3{}, ErrSolverDivergence
				}
				continue
			}

			candidate := geometry.Vector3{
				X: p.X + delta.AtVec(0),
				Y: p.Y + delta.AtVec(1),
				Z: p.Z + delta.AtVec(2),
			}
			candidateCost := sumSquaredResiduals(candidate, measurements)
			if candidateCost < cost {
				p = candidate
				cost = candidateCost
				lambda = math.Max(lambda/lambdaDown, lambdaMin)
				improved = true
				break
			}

			lambda *= lambdaUp
			if lambda > lambdaMax {
				return geometry.Vector3{}, ErrSolverDivergence
			}
		}

		if !improved {
			break
		}
	}

	s.initialGuess = p
	return p, nil
}

func (s *Solver) intersect(distances map[int32]float64) []measurement {
	out := make([]measurement, 0, len(distances))
	for id, pos := range s.sensorPositions {
		if d, ok := distances[id]; ok {
			out = append(out, measurement{pos: pos, dist: d})
		}
	}
	return out
}

func jacobianAndResiduals(p geometry.Vector3, measurements []measurement) (*mat.Dense, *mat.VecDense) {
	n := len(measurements)
	j := mat.NewDense(n, 3, nil)
	r := mat.NewVecDense(n, nil)
	for i, m := range measurements {
		delta := p.Sub(m.pos)
		norm := delta.Norm()
		if norm < minResidualDistance {
			norm = minResidualDistance
		}
		r.SetVec(i, norm-m.dist)
		j.Set(i, 0, delta.X/norm)
		j.Set(i, 1, delta.Y/norm)
		j.Set(i, 2, delta.Z/norm)
	}
	return j, r
}

func sumSquaredResiduals(p geometry.Vector3, measurements []measurement) float64 {
	total := 0.0
	for _, m := range measurements {
		residual := p.Distance(m.pos) - m.dist
		total += residual * residual
	}
	return total
}
