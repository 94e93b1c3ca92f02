// trackctl replays a JSON fixture of per-frame detections through a Tracker
// and writes terminated tracks to a CSV sink, the command-line shape of the
// teacher stack's own simple/benchmark examples.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/kwvidtrack/trackcore"
	"github.com/kwvidtrack/trackcore/config"
	"github.com/kwvidtrack/trackcore/sink"
)

// terminalWidth returns the current terminal's column count, trying stdout
// then stderr before falling back to a sane default for piped output.
func terminalWidth(fallback int) int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return width
	}
	if width, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil {
		return width
	}
	return fallback
}

// fixtureFrame is one frame of a JSON detections fixture.
type fixtureFrame struct {
	Frame      uint64             `json:"frame"`
	Seconds    float64            `json:"seconds"`
	Detections []fixtureDetection `json:"detections"`
}

type fixtureDetection struct {
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Area   *float64 `json:"area,omitempty"`
}

func main() {
	var (
		fixturePath = flag.String("fixture", "", "path to a JSON detections fixture")
		configPath  = flag.String("config", "", "path to a tracker config ini file (optional)")
		outPath     = flag.String("out", "tracks.csv", "path to write terminated tracks")
	)
	flag.Parse()

	if *fixturePath == "" {
		log.Fatal("trackctl: -fixture is required")
	}

	cfg := trackcore.DefaultTrackerConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("trackctl: %v", err)
		}
		cfg = loaded
	}

	frames, err := loadFixture(*fixturePath)
	if err != nil {
		log.Fatalf("trackctl: %v", err)
	}

	writer, err := sink.NewCSVWriter(*outPath)
	if err != nil {
		log.Fatalf("trackctl: %v", err)
	}
	defer writer.Close()

	tracker := trackcore.NewTracker(cfg)

	bar := progressbar.NewOptions(len(frames),
		progressbar.OptionSetDescription("tracking"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(terminalWidth(80)/4),
	)

	var fallbacks int
	for _, frame := range frames {
		ts := trackcore.Timestamp{Frame: frame.Frame, Seconds: frame.Seconds}
		detections := make([]trackcore.Detection, len(frame.Detections))
		for i, d := range frame.Detections {
			det := trackcore.Detection{
				ImageLocation: trackcore.Point2{X: d.X + d.Width/2, Y: d.Y + d.Height/2},
				BoundingBox:   trackcore.Rect{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height},
			}
			if d.Area != nil {
				det.HasArea = true
				det.Area = *d.Area
			} else {
				det.HasArea = true
				det.Area = d.Width * d.Height
			}
			detections[i] = det
		}

		result, err := tracker.Step(ts, detections, nil)
		if err != nil {
			log.Fatalf("trackctl: step at frame %d: %v", frame.Frame, err)
		}
		if result.UsedFallback {
			fallbacks++
		}
		for _, t := range result.Terminated {
			if err := writer.WriteTrack(t); err != nil {
				log.Fatalf("trackctl: %v", err)
			}
		}
		_ = bar.Add(1)
	}

	if err := writer.Flush(); err != nil {
		log.Fatalf("trackctl: %v", err)
	}
	fmt.Printf("\nprocessed %d frames, %d used the greedy fallback\n", len(frames), fallbacks)
}

func loadFixture(path string) ([]fixtureFrame, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	var frames []fixtureFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return frames, nil
}
