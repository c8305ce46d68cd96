// Package kalman implements the Client's constant-acceleration Kalman
// filter (spec §4.7): a 6-dim state [x,y,z,vx,vy,vz] updated from 3-dim
// position measurements using a discrete white-noise-acceleration process
// model.
package kalman

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"multilat/internal/geometry"
)

// NoiseConfig parameterizes the process noise model per axis.
type NoiseConfig struct {
	NoiseAX float64
	NoiseAY float64
	NoiseAZ float64
}

// Tracker holds the filter's running state and covariance.
type Tracker struct {
	noise NoiseConfig

	initialized bool
	lastUpdate  time.Time

	x *mat.VecDense // [x,y,z,vx,vy,vz]
	p *mat.Dense    // 6x6 covariance
}

// New returns an uninitialized tracker; it initializes on its first Update
// call (spec §4.7 step 2).
func New(noise NoiseConfig) *Tracker {
	return &Tracker{noise: noise}
}

// Initialized reports whether the first measurement has been processed.
func (t *Tracker) Initialized() bool {
	return t.initialized
}

// Position returns the tracker's current position estimate.
func (t *Tracker) Position() geometry.Vector3 {
	if !t.initialized {
		return geometry.Vector3{}
	}
	return geometry.Vector3{X: t.x.AtVec(0), Y: t.x.AtVec(1), Z: t.x.AtVec(2)}
}

// Update feeds a new position measurement at time now, running predict then
// update (spec §4.7 steps 2-3). The first call only initializes the state.
func (t *Tracker) Update(measurement geometry.Vector3, now time.Time) geometry.Vector3 {
	if !t.initialized {
		t.x = mat.NewVecDense(6, []float64{measurement.X, measurement.Y, measurement.Z, 0, 0, 0})
		t.p = identity(6)
		t.lastUpdate = now
		t.initialized = true
		return t.Position()
	}

	dt := now.Sub(t.lastUpdate).Seconds()
	t.lastUpdate = now
	if dt < 0 {
		dt = 0
	}

	f := transitionMatrix(dt)
	q := processNoise(dt, t.noise)
	t.predict(f, q)
	t.update(measurement)
	return t.Position()
}

func (t *Tracker) predict(f, q *mat.Dense) {
	var xNext mat.VecDense
	xNext.MulVec(f, t.x)
	t.x = &xNext

	var fp mat.Dense
	fp.Mul(f, t.p)
	var fpft mat.Dense
	fpft.Mul(&fp, f.T())
	fpft.Add(&fpft, q)
	t.p = &fpft
}

func (t *Tracker) update(measurement geometry.Vector3) {
	h := measurementMatrix()
	z := mat.NewVecDense(3, []float64{measurement.X, measurement.Y, measurement.Z})

	var hx mat.VecDense
	hx.MulVec(h, t.x)
	var y mat.VecDense
	y.SubVec(z, &hx)

	var hp mat.Dense
	hp.Mul(h, t.p)
	var s mat.Dense
	s.Mul(&hp, h.T())
	r := measurementNoise()
	s.Add(&s, r)

	var sInv mat.Dense
	if err := sInv.Inverse(&s); err != nil {
		// A singular innovation covariance leaves the state untouched for
		// this tick rather than corrupting it with a bad gain.
		return
	}

	var pht mat.Dense
	pht.Mul(t.p, h.T())
	var k mat.Dense
	k.Mul(&pht, &sInv)

	var ky mat.VecDense
	ky.MulVec(&k, &y)
	var xNext mat.VecDense
	xNext.AddVec(t.x, &ky)
	t.x = &xNext

	var kh mat.Dense
	kh.Mul(&k, h)
	ikh := identity(6)
	ikh.Sub(ikh, &kh)
	var pNext mat.Dense
	pNext.Mul(ikh, t.p)
	t.p = &pNext
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// transitionMatrix builds F: identity with dt on the position/velocity
// cross terms (spec §4.7 step 3).
func transitionMatrix(dt float64) *mat.Dense {
	f := identity(6)
	f.Set(0, 3, dt)
	f.Set(1, 4, dt)
	f.Set(2, 5, dt)
	return f
}

// processNoise builds Q via the discrete white-noise-acceleration model,
// one 2x2 position/velocity block per axis.
func processNoise(dt float64, noise NoiseConfig) *mat.Dense {
	q := mat.NewDense(6, 6, nil)
	dt2 := dt * dt
	dt3 := dt2 * dt
	dt4 := dt3 * dt

	axes := []struct {
		posIdx, velIdx int
		variance       float64
	}{
		{0, 3, noise.NoiseAX},
		{1, 4, noise.NoiseAY},
		{2, 5, noise.NoiseAZ},
	}
	for _, axis := range axes {
		q.Set(axis.posIdx, axis.posIdx, dt4/4*axis.variance)
		q.Set(axis.posIdx, axis.velIdx, dt3/2*axis.variance)
		q.Set(axis.velIdx, axis.posIdx, dt3/2*axis.variance)
		q.Set(axis.velIdx, axis.velIdx, dt2*axis.variance)
	}
	return q
}

func measurementMatrix() *mat.Dense {
	h := mat.NewDense(3, 6, nil)
	h.Set(0, 0, 1)
	h.Set(1, 1, 1)
	h.Set(2, 2, 1)
	return h
}

func measurementNoise() *mat.Dense {
	const measurementVariance = 1.0
	r := mat.NewDense(3, 3, nil)
	r.Set(0, 0, measurementVariance)
	r.Set(1, 1, measurementVariance)
	r.Set(2, 2, measurementVariance)
	return r
}
