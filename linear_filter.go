package trackcore

import (
	"gonum.org/v1/gonum/mat"

	"github.com/kwvidtrack/trackcore/internal/kalman"
)

// LinearFilter is a constant-velocity Kalman filter over state
// [x, y, vx, vy].
type LinearFilter struct {
	kf *kalman.Filter
	q  *mat.Dense
}

func newLinearFilter(cfg FilterConfig, initial Point2) *LinearFilter {
	kf := kalman.New(4, 2)

	x := mat.NewDense(4, 1, []float64{initial.X, initial.Y, 0, 0})
	kf.SetState(x)

	h := mat.NewDense(2, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
	})
	kf.SetH(h)

	q := mat.NewDense(4, 4, cfg.ProcessNoise[:])
	kf.SetQ(q)

	return &LinearFilter{kf: kf, q: q}
}

func linearTransition(dt float64) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, dt, 0,
		0, 1, 0, dt,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

func (f *LinearFilter) Predict(dt float64) (Point2, [4]float64) {
	if dt == 0 {
		return f.CurrentLocation(), f.CurrentLocationCovariance()
	}

	// Predict on a scratch copy so the posterior is left untouched, per
	// the MotionFilter contract.
	scratch := kalman.New(4, 2)
	scratch.SetState(f.kf.GetState())
	scratch.SetCovariance(f.kf.GetCovariance())
	scratch.SetF(linearTransition(dt))

	scaledQ := mat.NewDense(4, 4, nil)
	scaledQ.Scale(dt, f.q)
	scratch.SetQ(scaledQ)

	scratch.Predict()

	x := scratch.GetState()
	p := scratch.GetCovariance()
	return Point2{X: x.At(0, 0), Y: x.At(1, 0)}, covBlock(p)
}

// Coast advances the posterior dt seconds with no measurement, mutating
// the filter in place.
func (f *LinearFilter) Coast(dt float64) {
	if dt <= 0 {
		return
	}
	f.kf.SetF(linearTransition(dt))
	scaledQ := mat.NewDense(4, 4, nil)
	scaledQ.Scale(dt, f.q)
	f.kf.SetQ(scaledQ)
	f.kf.Predict()
	f.kf.Symmetrize()
}

func (f *LinearFilter) Update(z Point2, R [4]float64, dt float64) {
	if dt > 0 {
		f.kf.SetF(linearTransition(dt))
		scaledQ := mat.NewDense(4, 4, nil)
		scaledQ.Scale(dt, f.q)
		f.kf.SetQ(scaledQ)
		f.kf.Predict()
	}

	zm := mat.NewDense(2, 1, []float64{z.X, z.Y})
	rm := mat.NewDense(2, 2, R[:])
	f.kf.Update(zm, rm)
	f.kf.Symmetrize()
}

// InitializeVelocity fits a constant-velocity line through the birth
// window's (point, time) pairs by ordinary least squares and seeds vx, vy
// from the fitted slope, replacing the birth-time zero default.
func (f *LinearFilter) InitializeVelocity(points []Point2, times []float64) {
	vx, vy, ok := leastSquaresVelocity(points, times)
	if !ok {
		return
	}
	x := f.kf.GetState()
	x.Set(2, 0, vx)
	x.Set(3, 0, vy)
	f.kf.SetState(x)
}

func (f *LinearFilter) CurrentLocation() Point2 {
	x := f.kf.GetX()
	return Point2{X: x.At(0, 0), Y: x.At(1, 0)}
}

func (f *LinearFilter) CurrentVelocity() Point2 {
	x := f.kf.GetX()
	return Point2{X: x.At(2, 0), Y: x.At(3, 0)}
}

func (f *LinearFilter) CurrentLocationCovariance() [4]float64 {
	return covBlock(f.kf.GetP())
}

func (f *LinearFilter) Trace() float64 { return f.kf.Trace() }

func (f *LinearFilter) Variant() StateAttributes { return AttrFilterLinear }

func (f *LinearFilter) Model() MotionModel { return MotionLinear }

// covBlock extracts the top-left 2x2 position block of a covariance
// matrix, row-major.
func covBlock(p *mat.Dense) [4]float64 {
	return [4]float64{p.At(0, 0), p.At(0, 1), p.At(1, 0), p.At(1, 1)}
}
