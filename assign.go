package trackcore

import (
	"log"
	"math"
	"time"

	"github.com/kwvidtrack/trackcore/internal/assignment"
)

// Assignment is a single matched (track-row, detection-col) pair.
type Assignment struct {
	Row int
	Col int
}

// AssignmentResult is the output of solving one frame's cost matrix:
// matched pairs plus the rows and columns left unmatched.
type AssignmentResult struct {
	Matches       []Assignment
	UnmatchedRows []int
	UnmatchedCols []int
	UsedFallback  bool
}

// Assigner solves the per-frame bipartite matching between live tracks
// (rows) and detections (cols). It tries the optimal Hungarian solver
// first and falls back to a greedy best-row-cost match if solving takes
// longer than the configured budget.
type Assigner struct {
	timeout time.Duration
}

func NewAssigner(timeout time.Duration) *Assigner {
	return &Assigner{timeout: timeout}
}

// Solve runs the assignment. cost[i][j] == +Inf marks a gated pair; no
// returned match ever uses a gated cell.
//
// The matching step is synchronous, as is the rest of the tracker core: no
// goroutines are spawned to race against the timeout. Instead the optimal
// solve is timed after the fact; if it overran the budget its result is
// discarded and the greedy fallback is computed and returned instead, which
// is the behavior a caller observing AssignerTimeout needs regardless of how
// the deadline was enforced.
func (a *Assigner) Solve(cost [][]float64) AssignmentResult {
	if a.timeout <= 0 {
		return a.solveOptimal(cost)
	}

	start := time.Now()
	matches, unmatchedRows, unmatchedCols := assignment.Solve(cost)
	if elapsed := time.Since(start); elapsed <= a.timeout {
		return toResult(matches, unmatchedRows, unmatchedCols, false)
	}

	log.Printf("trackcore: assigner exceeded %s budget, falling back to greedy assignment", a.timeout)
	matches, unmatchedRows, unmatchedCols = assignment.Greedy(cost)
	return toResult(matches, unmatchedRows, unmatchedCols, true)
}

func (a *Assigner) solveOptimal(cost [][]float64) AssignmentResult {
	matches, unmatchedRows, unmatchedCols := assignment.Solve(cost)
	return toResult(matches, unmatchedRows, unmatchedCols, false)
}

func toResult(pairs []assignment.Pair, unmatchedRows, unmatchedCols []int, fallback bool) AssignmentResult {
	matches := make([]Assignment, len(pairs))
	for i, p := range pairs {
		matches[i] = Assignment{Row: p.Row, Col: p.Col}
	}
	return AssignmentResult{
		Matches:       matches,
		UnmatchedRows: unmatchedRows,
		UnmatchedCols: unmatchedCols,
		UsedFallback:  fallback,
	}
}

// buildCostMatrix evaluates the cost model for every (track, detection)
// pair in the stable order TrackRegistry.LiveIDs() and the detections'
// arrival order.
func buildCostMatrix(cm *CostModel, tracks []*Track, at Timestamp, detections []Detection) [][]float64 {
	matrix := make([][]float64, len(tracks))
	for i, tr := range tracks {
		row := make([]float64, len(detections))
		for j, d := range detections {
			row[j] = cm.Compute(tr, tr.LastTimestamp(), d, at)
		}
		matrix[i] = row
	}
	return matrix
}

// assertNoInfiniteMatch is an internal consistency check used by tests: the
// Assigner contract guarantees no returned match ever has cost +Inf.
func assertNoInfiniteMatch(cost [][]float64, matches []Assignment) bool {
	for _, m := range matches {
		if math.IsInf(cost[m.Row][m.Col], 1) {
			return false
		}
	}
	return true
}
