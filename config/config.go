// Package config loads a TrackerConfig from an ini file, the same format
// the teacher stack uses for sequence metadata (seqinfo.ini).
package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/ini.v1"

	"github.com/kwvidtrack/trackcore"
)

// Load reads an ini file at path into a validated TrackerConfig. Unset keys
// fall back to DefaultTrackerConfig's values.
func Load(path string) (trackcore.TrackerConfig, error) {
	cfg := trackcore.DefaultTrackerConfig()

	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("trackcore/config: failed to load %s: %w", path, err)
	}

	motion := file.Section("motion")
	switch model := motion.Key("model").MustString("linear"); model {
	case "linear":
		cfg.MotionModel = trackcore.MotionLinear
	case "speed_heading":
		cfg.MotionModel = trackcore.MotionSpeedHeading
	default:
		return cfg, fmt.Errorf("trackcore/config: unknown motion.model %q", model)
	}

	assoc := file.Section("association")
	cfg.GateSigmaSquared = assoc.Key("gate_sigma_sqr").MustFloat64(cfg.GateSigmaSquared)
	cfg.MultiFeature = assoc.Key("multi_feature").MustBool(cfg.MultiFeature)
	cfg.Weights.Kinematic = assoc.Key("weight_kinematic").MustFloat64(cfg.Weights.Kinematic)
	cfg.Weights.Color = assoc.Key("weight_color").MustFloat64(cfg.Weights.Color)
	cfg.Weights.Area = assoc.Key("weight_area").MustFloat64(cfg.Weights.Area)
	cfg.MinColorSimilarity = assoc.Key("min_color_similarity").MustFloat64(cfg.MinColorSimilarity)
	cfg.MinAreaSimilarity = assoc.Key("min_area_similarity").MustFloat64(cfg.MinAreaSimilarity)
	cfg.HistogramBins = assoc.Key("histogram_bins").MustInt(cfg.HistogramBins)

	area := file.Section("area")
	cfg.AreaWindow = area.Key("window").MustInt(cfg.AreaWindow)
	cfg.AreaDecay = area.Key("decay").MustFloat64(cfg.AreaDecay)

	birth := file.Section("birth")
	cfg.Birth.N = birth.Key("n").MustInt(cfg.Birth.N)
	cfg.Birth.M = birth.Key("m").MustInt(cfg.Birth.M)

	life := file.Section("lifecycle")
	cfg.CoastLimit = life.Key("coast_limit").MustInt(cfg.CoastLimit)
	cfg.DivergenceTraceCap = life.Key("divergence_trace_cap").MustFloat64(cfg.DivergenceTraceCap)

	assigner := file.Section("assigner")
	timeoutMS := assigner.Key("timeout_ms").MustInt(int(cfg.AssignerTimeout / time.Millisecond))
	cfg.AssignerTimeout = time.Duration(timeoutMS) * time.Millisecond

	if aoi := file.Section("aoi"); aoi.HasKey("polygon") {
		poly, err := parsePolygon(aoi.Key("polygon").String())
		if err != nil {
			return cfg, fmt.Errorf("trackcore/config: aoi.polygon: %w", err)
		}
		cfg.AOI = poly
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parsePolygon parses "x1,y1;x2,y2;x3,y3" vertex lists.
func parsePolygon(raw string) (trackcore.Polygon, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var poly trackcore.Polygon
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		coords := strings.Split(pair, ",")
		if len(coords) != 2 {
			return nil, fmt.Errorf("malformed vertex %q", pair)
		}
		var x, y float64
		if _, err := fmt.Sscanf(strings.TrimSpace(coords[0]), "%g", &x); err != nil {
			return nil, fmt.Errorf("malformed x in %q: %w", pair, err)
		}
		if _, err := fmt.Sscanf(strings.TrimSpace(coords[1]), "%g", &y); err != nil {
			return nil, fmt.Errorf("malformed y in %q: %w", pair, err)
		}
		poly = append(poly, trackcore.Point2{X: x, Y: y})
	}
	return poly, nil
}
