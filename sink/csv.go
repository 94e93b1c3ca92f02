// Package sink writes terminated tracks to durable storage. CSVWriter
// follows the row-per-observation layout the teacher stack uses for its own
// MOTChallenge-format predictions file.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/kwvidtrack/trackcore"
)

// CSVWriter appends one row per track-state to a CSV file as tracks
// terminate. Columns: frame,track_id,status,termination_cause,x,y,vx,vy.
type CSVWriter struct {
	file *os.File
	w    *csv.Writer
}

// NewCSVWriter creates (or truncates) the file at path and writes its
// header row.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("trackcore/sink: failed to create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	header := []string{"frame", "track_id", "status", "termination_cause", "x", "y", "vx", "vy"}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("trackcore/sink: failed to write header: %w", err)
	}
	return &CSVWriter{file: f, w: w}, nil
}

// WriteTrack emits every TrackState in track's history as one row. Callers
// pass a track after TrackRegistry.Finalize removes it from the live set.
func (s *CSVWriter) WriteTrack(track *trackcore.Track) error {
	for _, state := range track.History {
		row := []string{
			strconv.FormatUint(state.Timestamp.Frame, 10),
			strconv.FormatUint(uint64(track.ID), 10),
			track.Status.String(),
			track.TerminationCause.String(),
			strconv.FormatFloat(state.Location.X, 'f', 6, 64),
			strconv.FormatFloat(state.Location.Y, 'f', 6, 64),
			strconv.FormatFloat(state.Velocity.X, 'f', 6, 64),
			strconv.FormatFloat(state.Velocity.Y, 'f', 6, 64),
		}
		if err := s.w.Write(row); err != nil {
			return fmt.Errorf("trackcore/sink: failed to write row: %w", err)
		}
	}
	return nil
}

// Flush flushes buffered rows to the underlying file without closing it.
func (s *CSVWriter) Flush() error {
	s.w.Flush()
	return s.w.Error()
}

// Close flushes and closes the underlying file. Safe to call once.
func (s *CSVWriter) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
