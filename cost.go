package trackcore

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// CostWeights are the multi-feature term weights; they must sum to 1 when
// multi-feature scoring is enabled.
type CostWeights struct {
	Kinematic float64
	Color     float64
	Area      float64
}

// CostModelConfig configures CostModel.Compute.
type CostModelConfig struct {
	MeasurementNoise  [4]float64
	GateSigmaSquared  float64
	MultiFeature      bool
	Weights           CostWeights
	MinColorSimilarity float64
	MinAreaSimilarity  float64
	AreaWindow         int
	AreaDecay          float64
}

// CostModel computes the scalar cost of associating a track with a
// detection, gated by a Mahalanobis radius and, when enabled, combining
// kinematic, appearance, and area similarity under a weighted
// log-likelihood.
type CostModel struct {
	cfg CostModelConfig
}

func NewCostModel(cfg CostModelConfig) *CostModel {
	return &CostModel{cfg: cfg}
}

// Compute returns the cost of assigning track to detection at the
// detection's timestamp, given the timestamp of the track's last state
// (matched or coasted), which is where its filter posterior stands. A cost
// of +Inf means the pair is gated out and must never be selected by the
// Assigner.
func (cm *CostModel) Compute(track *Track, lastTime Timestamp, d Detection, at Timestamp) float64 {
	dt := lastTime.Delta(at)
	mean, cov := track.filter.Predict(dt)

	sigma := mat.NewDense(2, 2, []float64{
		cov[0] + cm.cfg.MeasurementNoise[0], cov[1] + cm.cfg.MeasurementNoise[1],
		cov[2] + cm.cfg.MeasurementNoise[2], cov[3] + cm.cfg.MeasurementNoise[3],
	})

	det := sigma.At(0, 0)*sigma.At(1, 1) - sigma.At(0, 1)*sigma.At(1, 0)
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return math.Inf(1)
	}

	var sigmaInv mat.Dense
	if err := sigmaInv.Inverse(sigma); err != nil {
		return math.Inf(1)
	}

	innovation := mat.NewDense(2, 1, []float64{d.ImageLocation.X - mean.X, d.ImageLocation.Y - mean.Y})

	var tmp mat.Dense
	tmp.Mul(&sigmaInv, innovation)
	var m2Mat mat.Dense
	m2Mat.Mul(innovation.T(), &tmp)
	m2 := m2Mat.At(0, 0)

	if m2 >= cm.cfg.GateSigmaSquared {
		return math.Inf(1)
	}

	if !cm.cfg.MultiFeature {
		return 0.5 * m2
	}

	pKin := math.Exp(-0.5 * m2)

	pCol, rejected := cm.colorSimilarity(track, d)
	if rejected {
		return math.Inf(1)
	}
	pArea, rejected := cm.areaSimilarity(track, d)
	if rejected {
		return math.Inf(1)
	}

	w := cm.cfg.Weights
	similarity := w.Kinematic*pKin + w.Color*pCol + w.Area*pArea
	if similarity <= 0 {
		return math.Inf(1)
	}
	return -math.Log(similarity)
}

// colorSimilarity returns the appearance term. rejected is true when both
// histograms are present but similarity falls below the configured
// minimum, which gates the whole pair out per spec.
func (cm *CostModel) colorSimilarity(track *Track, d Detection) (p float64, rejected bool) {
	if d.Histogram == nil || track.appearanceCache.Mass == 0 {
		return 0, false
	}
	sim := track.appearanceCache.Similarity(*d.Histogram)
	if sim < cm.cfg.MinColorSimilarity {
		return -0.1, true
	}
	return sim, false
}

// areaSimilarity returns the area term from the track's decayed area EMA
// against the detection's area.
func (cm *CostModel) areaSimilarity(track *Track, d Detection) (p float64, rejected bool) {
	if !d.HasArea || d.Area <= 0 || !track.hasAreaEMA || track.areaEMA <= 0 {
		return 0, false
	}
	ratio := d.Area / track.areaEMA
	if ratio < 1 {
		ratio = 1 / ratio
	}
	sim := math.Exp(-(ratio - 1))
	if sim < cm.cfg.MinAreaSimilarity {
		return -0.1, true
	}
	return sim, false
}

// areaEMA recomputes a track's decayed area mean from its observation
// history, weighting the k-th most recent observation by (1-rho)^k and
// normalizing. window bounds how many recent observations are considered.
func areaEMA(history []float64, window int, rho float64) (float64, bool) {
	if len(history) == 0 {
		return 0, false
	}
	n := len(history)
	if n > window {
		history = history[n-window:]
		n = window
	}

	var weightedSum, weightSum float64
	// k=0 is the most recent observation (last element).
	for k := 0; k < n; k++ {
		v := history[n-1-k]
		w := math.Pow(1-rho, float64(k))
		weightedSum += w * v
		weightSum += w
	}
	if weightSum == 0 {
		return 0, false
	}
	return weightedSum / weightSum, true
}
