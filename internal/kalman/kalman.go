// Package kalman implements the linear Kalman filter primitive shared by
// the motion-filter variants: predict/update over gonum dense matrices.
// Covariance is re-symmetrized explicitly via Symmetrize after each
// predict/update rather than relying on a Joseph-form update to keep it so.
package kalman

import (
	"gonum.org/v1/gonum/mat"
)

// Filter is a general discrete-time Kalman filter: state vector x, state
// covariance P, state transition F, measurement matrix H, process noise Q.
// Measurement noise R is not stored on Filter; it is supplied per call to
// Update. Callers own the meaning of the state dimensions; the motion-filter
// variants on top of Filter interpret x according to their own state layout
// ([x,y,vx,vy] or [x,y,s,theta]).
type Filter struct {
	dimX int
	dimZ int
	x    *mat.Dense
	P    *mat.Dense
	F    *mat.Dense
	H    *mat.Dense
	Q    *mat.Dense

	xPrior *mat.Dense
	pPrior *mat.Dense

	identity *mat.Dense // dimX x dimX, reused by Update rather than rebuilt per call
}

// New creates a Filter with dimX state components and dimZ measurement
// components. F, P and Q start as identity; H starts as a dimZ-sized
// identity. Callers configure F/H/Q and the initial x/P before the first
// Predict. Measurement noise is not part of the filter's own state: every
// Update call is given the R for that specific observation, since the two
// motion-filter variants built on top of Filter never reuse a stored
// default across calls.
func New(dimX, dimZ int) *Filter {
	kf := &Filter{
		dimX:     dimX,
		dimZ:     dimZ,
		x:        mat.NewDense(dimX, 1, nil),
		P:        mat.NewDense(dimX, dimX, nil),
		F:        mat.NewDense(dimX, dimX, nil),
		H:        mat.NewDense(dimZ, dimX, nil),
		Q:        mat.NewDense(dimX, dimX, nil),
		xPrior:   mat.NewDense(dimX, 1, nil),
		pPrior:   mat.NewDense(dimX, dimX, nil),
		identity: mat.NewDense(dimX, dimX, nil),
	}

	for i := 0; i < dimX; i++ {
		kf.F.Set(i, i, 1.0)
		kf.P.Set(i, i, 1.0)
		kf.Q.Set(i, i, 1.0)
		kf.identity.Set(i, i, 1.0)
	}
	for i := 0; i < dimZ; i++ {
		kf.H.Set(i, i, 1.0)
	}

	return kf
}

// Predict advances the state and covariance one step: x = F@x, P = F@P@F' + Q.
func (kf *Filter) Predict() {
	kf.xPrior.Mul(kf.F, kf.x)
	kf.x.Copy(kf.xPrior)

	var temp mat.Dense
	temp.Mul(kf.F, kf.P)
	kf.pPrior.Mul(&temp, kf.F.T())
	kf.P.Add(kf.pPrior, kf.Q)
}

// PredictNonlinear advances the covariance using the supplied Jacobian F as
// the linearization point (P = F@P@F' + Q) while setting the mean directly
// to newX, for extended-Kalman-filter motion models whose state transition
// is nonlinear. F and Q, if non-nil, replace the filter's stored F/Q for
// this step; pass nil to reuse the filter's own.
func (kf *Filter) PredictNonlinear(newX, F, Q *mat.Dense) {
	if F != nil {
		kf.F.Copy(F)
	}
	if Q != nil {
		kf.Q.Copy(Q)
	}

	var temp mat.Dense
	temp.Mul(kf.F, kf.P)
	kf.pPrior.Mul(&temp, kf.F.T())
	kf.P.Add(kf.pPrior, kf.Q)

	kf.x.Copy(newX)
}

// Update incorporates measurement z with noise R against the filter's own
// H. Unlike predict-time F/Q, H is fixed for the life of a Filter (it
// encodes which state components are observable at all, not a per-call
// choice), so Update takes no H override: neither motion-filter variant
// built on this primitive ever measures a subset of its own H. R, on the
// other hand, is supplied fresh by the caller on every call rather than
// cached on the Filter, since a caller may scale or otherwise vary it per
// observation.
//
// If the resulting innovation covariance is singular the update is skipped
// and the prior state is left unchanged. Callers needing an exactly
// symmetric posterior should call Symmetrize afterward.
func (kf *Filter) Update(z, R *mat.Dense) {
	innovation := kf.innovation(z)

	gain, ok := kf.gain(R)
	if !ok {
		return
	}

	var correction mat.Dense
	correction.Mul(gain, innovation)
	kf.x.Add(kf.x, &correction)

	var gainH mat.Dense
	gainH.Mul(gain, kf.H)
	var shrink mat.Dense
	shrink.Sub(kf.identity, &gainH)
	var posterior mat.Dense
	posterior.Mul(&shrink, kf.P)
	kf.P.Copy(&posterior)
}

// innovation returns z - H@x, the residual between the measurement and the
// filter's current expectation of it.
func (kf *Filter) innovation(z *mat.Dense) *mat.Dense {
	var expected mat.Dense
	expected.Mul(kf.H, kf.x)
	var residual mat.Dense
	residual.Sub(z, &expected)
	return &residual
}

// gain returns the Kalman gain P@H'@S^-1 for measurement noise R, where
// S = H@P@H' + R is the innovation covariance. ok is false when S is
// singular.
func (kf *Filter) gain(R *mat.Dense) (*mat.Dense, bool) {
	var ph mat.Dense
	ph.Mul(kf.P, kf.H.T())

	var s mat.Dense
	s.Mul(kf.H, &ph)
	s.Add(&s, R)

	var sInv mat.Dense
	if err := sInv.Inverse(&s); err != nil {
		return nil, false
	}

	var k mat.Dense
	k.Mul(&ph, &sInv)
	return &k, true
}

func (kf *Filter) GetState() *mat.Dense      { return kf.x }
func (kf *Filter) SetState(x *mat.Dense)     { kf.x.Copy(x) }
func (kf *Filter) GetCovariance() *mat.Dense { return kf.P }
func (kf *Filter) SetCovariance(P *mat.Dense) {
	kf.P.Copy(P)
}
func (kf *Filter) GetDimX() int       { return kf.dimX }
func (kf *Filter) GetDimZ() int       { return kf.dimZ }
func (kf *Filter) GetF() *mat.Dense   { return kf.F }
func (kf *Filter) GetH() *mat.Dense   { return kf.H }
func (kf *Filter) GetQ() *mat.Dense   { return kf.Q }
func (kf *Filter) GetP() *mat.Dense   { return kf.P }
func (kf *Filter) GetX() *mat.Dense   { return kf.x }
func (kf *Filter) SetF(F *mat.Dense)  { kf.F.Copy(F) }
func (kf *Filter) SetH(H *mat.Dense)  { kf.H.Copy(H) }
func (kf *Filter) SetQ(Q *mat.Dense)  { kf.Q.Copy(Q) }

// Symmetrize forces P to be exactly symmetric, guarding against the drift
// that repeated float64 multiplication introduces over long track lifetimes.
func (kf *Filter) Symmetrize() {
	r, c := kf.P.Dims()
	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			avg := (kf.P.At(i, j) + kf.P.At(j, i)) / 2
			kf.P.Set(i, j, avg)
			kf.P.Set(j, i, avg)
		}
	}
}

// Trace returns the trace of the state covariance, used by lifecycle
// management to detect filter divergence.
func (kf *Filter) Trace() float64 {
	r, _ := kf.P.Dims()
	sum := 0.0
	for i := 0; i < r; i++ {
		sum += kf.P.At(i, i)
	}
	return sum
}
