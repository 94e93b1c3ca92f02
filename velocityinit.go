package trackcore

import "gonum.org/v1/gonum/stat"

// leastSquaresVelocity fits independent ordinary-least-squares lines
// x(t) = a + vx*t and y(t) = b + vy*t through the birth window's
// observations, using gonum's stat.LinearRegression for each axis, and
// returns the fitted slopes (vx, vy). This is the supplemented
// velocity-initialization feature: without it a freshly promoted track's
// filter would start from zero velocity and would need several frames to
// converge, which a strict N-of-M confirmation window does not allow.
//
// ok is false when fewer than two distinct timestamps are available, in
// which case the filter is left at its birth-time default.
func leastSquaresVelocity(points []Point2, times []float64) (vx, vy float64, ok bool) {
	n := len(points)
	if n < 2 || n != len(times) || !distinctTimes(times) {
		return 0, 0, false
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}

	_, vx = stat.LinearRegression(times, xs, nil, false)
	_, vy = stat.LinearRegression(times, ys, nil, false)
	return vx, vy, true
}

// distinctTimes reports whether times contains at least two different
// values; a single repeated timestamp makes the regression's slope
// undefined.
func distinctTimes(times []float64) bool {
	for _, t := range times[1:] {
		if t != times[0] {
			return true
		}
	}
	return false
}
