package trackcore

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/kwvidtrack/trackcore/internal/kalman"
)

// SpeedHeadingFilter is an extended Kalman filter over state
// [x, y, s, theta]: position, signed speed along the heading axis, and
// heading in radians. The state transition is nonlinear
// (x' = x + s*cos(theta)*dt, y' = y + s*sin(theta)*dt) so each predict
// relinearizes about the current posterior via its Jacobian.
type SpeedHeadingFilter struct {
	kf *kalman.Filter
	q  *mat.Dense
}

// defaultHeading is used when the birth window is too degenerate (fewer
// than two points, or a zero-length direction) to estimate an initial
// heading.
const defaultHeading = math.Pi / 2

func newSpeedHeadingFilter(cfg FilterConfig, initial Point2) *SpeedHeadingFilter {
	kf := kalman.New(4, 2)

	x := mat.NewDense(4, 1, []float64{initial.X, initial.Y, 0, defaultHeading})
	kf.SetState(x)

	h := mat.NewDense(2, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
	})
	kf.SetH(h)

	q := mat.NewDense(4, 4, cfg.ProcessNoise[:])
	kf.SetQ(q)

	return &SpeedHeadingFilter{kf: kf, q: q}
}

// propagate returns the nonlinear next-state mean and its Jacobian wrt the
// current state, both evaluated at the filter's current posterior for
// horizon dt.
func (f *SpeedHeadingFilter) propagate(dt float64) (newX, jacobian *mat.Dense) {
	x := f.kf.GetX()
	px, py, s, theta := x.At(0, 0), x.At(1, 0), x.At(2, 0), x.At(3, 0)

	cos, sin := math.Cos(theta), math.Sin(theta)

	newX = mat.NewDense(4, 1, []float64{
		px + s*cos*dt,
		py + s*sin*dt,
		s,
		theta,
	})

	jacobian = mat.NewDense(4, 4, []float64{
		1, 0, cos * dt, -s * sin * dt,
		0, 1, sin * dt, s * cos * dt,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})

	return newX, jacobian
}

func (f *SpeedHeadingFilter) Predict(dt float64) (Point2, [4]float64) {
	if dt == 0 {
		return f.CurrentLocation(), f.CurrentLocationCovariance()
	}

	newX, jacobian := f.propagate(dt)

	scratch := kalman.New(4, 2)
	scratch.SetState(f.kf.GetState())
	scratch.SetCovariance(f.kf.GetCovariance())

	scaledQ := mat.NewDense(4, 4, nil)
	scaledQ.Scale(dt, f.q)
	scratch.PredictNonlinear(newX, jacobian, scaledQ)

	p := scratch.GetCovariance()
	return Point2{X: newX.At(0, 0), Y: newX.At(1, 0)}, covBlock(p)
}

// Coast advances the posterior dt seconds with no measurement, mutating
// the filter in place.
func (f *SpeedHeadingFilter) Coast(dt float64) {
	if dt <= 0 {
		return
	}
	newX, jacobian := f.propagate(dt)
	scaledQ := mat.NewDense(4, 4, nil)
	scaledQ.Scale(dt, f.q)
	f.kf.PredictNonlinear(newX, jacobian, scaledQ)
	f.kf.Symmetrize()
}

func (f *SpeedHeadingFilter) Update(z Point2, R [4]float64, dt float64) {
	if dt > 0 {
		newX, jacobian := f.propagate(dt)
		scaledQ := mat.NewDense(4, 4, nil)
		scaledQ.Scale(dt, f.q)
		f.kf.PredictNonlinear(newX, jacobian, scaledQ)
	}

	zm := mat.NewDense(2, 1, []float64{z.X, z.Y})
	rm := mat.NewDense(2, 2, R[:])
	f.kf.Update(zm, rm)
	f.kf.Symmetrize()

	// theta is only meaningful modulo 2*pi; keep it in (-pi, pi] so it
	// doesn't wind up unboundedly over a long track.
	x := f.kf.GetX()
	x.Set(3, 0, wrapAngle(x.At(3, 0)))
	f.kf.SetState(x)
}

func wrapAngle(theta float64) float64 {
	for theta > math.Pi {
		theta -= 2 * math.Pi
	}
	for theta <= -math.Pi {
		theta += 2 * math.Pi
	}
	return theta
}

// InitializeVelocity derives an initial heading and speed from the birth
// window: prefer the instantaneous velocity direction from a least-squares
// fit when its magnitude is positive; otherwise use the direction from the
// oldest to the newest point; if that too degenerates, keep defaultHeading.
func (f *SpeedHeadingFilter) InitializeVelocity(points []Point2, times []float64) {
	vx, vy, ok := leastSquaresVelocity(points, times)
	speed := math.Hypot(vx, vy)

	var heading float64
	switch {
	case ok && speed > 0:
		heading = math.Atan2(vy, vx)
	case len(points) >= 2:
		dx := points[len(points)-1].X - points[0].X
		dy := points[len(points)-1].Y - points[0].Y
		if dx == 0 && dy == 0 {
			heading = defaultHeading
		} else {
			heading = math.Atan2(dy, dx)
			speed = math.Hypot(dx, dy)
		}
	default:
		heading = defaultHeading
		speed = 0
	}

	x := f.kf.GetX()
	x.Set(2, 0, speed)
	x.Set(3, 0, heading)
	f.kf.SetState(x)
}

func (f *SpeedHeadingFilter) CurrentLocation() Point2 {
	x := f.kf.GetX()
	return Point2{X: x.At(0, 0), Y: x.At(1, 0)}
}

func (f *SpeedHeadingFilter) CurrentVelocity() Point2 {
	x := f.kf.GetX()
	s, theta := x.At(2, 0), x.At(3, 0)
	return Point2{X: s * math.Cos(theta), Y: s * math.Sin(theta)}
}

func (f *SpeedHeadingFilter) CurrentLocationCovariance() [4]float64 {
	return covBlock(f.kf.GetP())
}

func (f *SpeedHeadingFilter) Trace() float64 { return f.kf.Trace() }

func (f *SpeedHeadingFilter) Variant() StateAttributes { return AttrFilterSpeedHeading }

func (f *SpeedHeadingFilter) Model() MotionModel { return MotionSpeedHeading }
