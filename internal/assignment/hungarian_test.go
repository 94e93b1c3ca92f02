package assignment

import (
	"math"
	"testing"
)

func TestSolve_BasicSquare(t *testing.T) {
	cost := [][]float64{
		{1, 2, 3},
		{2, 4, 6},
		{3, 6, 9},
	}

	matches, unmatchedRows, unmatchedCols := Solve(cost)

	if len(matches) != 3 {
		t.Errorf("Expected 3 matches, got %d", len(matches))
	}
	if len(unmatchedRows) != 0 || len(unmatchedCols) != 0 {
		t.Errorf("Expected no unmatched, got %d rows and %d cols", len(unmatchedRows), len(unmatchedCols))
	}

	matchedRows := make(map[int]bool)
	matchedCols := make(map[int]bool)
	for _, m := range matches {
		if matchedRows[m.Row] {
			t.Errorf("Row %d matched multiple times", m.Row)
		}
		if matchedCols[m.Col] {
			t.Errorf("Col %d matched multiple times", m.Col)
		}
		matchedRows[m.Row] = true
		matchedCols[m.Col] = true
	}
}

func TestSolve_OptimalMatching(t *testing.T) {
	cost := [][]float64{
		{1, 10, 10},
		{10, 1, 10},
		{10, 10, 1},
	}

	matches, _, _ := Solve(cost)

	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matches))
	}

	total := 0.0
	for _, m := range matches {
		total += cost[m.Row][m.Col]
	}
	if total != 3.0 {
		t.Errorf("Expected optimal total cost 3.0, got %v", total)
	}
}

func TestSolve_InfGatedCellNeverSelected(t *testing.T) {
	inf := math.Inf(1)
	cost := [][]float64{
		{1, inf},
		{inf, 1},
	}

	matches, unmatchedRows, unmatchedCols := Solve(cost)

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	for _, m := range matches {
		if math.IsInf(cost[m.Row][m.Col], 1) {
			t.Errorf("Match (%d,%d) uses a gated +Inf cell", m.Row, m.Col)
		}
	}
	if len(unmatchedRows) != 0 || len(unmatchedCols) != 0 {
		t.Errorf("Expected no unmatched, got %d rows, %d cols", len(unmatchedRows), len(unmatchedCols))
	}
}

func TestSolve_AllGatedLeavesEverythingUnmatched(t *testing.T) {
	inf := math.Inf(1)
	cost := [][]float64{
		{inf, inf},
		{inf, inf},
	}

	matches, unmatchedRows, unmatchedCols := Solve(cost)

	if len(matches) != 0 {
		t.Errorf("Expected 0 matches when every cell is gated, got %d", len(matches))
	}
	if len(unmatchedRows) != 2 || len(unmatchedCols) != 2 {
		t.Errorf("Expected all rows/cols unmatched, got %d rows, %d cols", len(unmatchedRows), len(unmatchedCols))
	}
}

func TestSolve_PartialGating(t *testing.T) {
	inf := math.Inf(1)
	// Row 0 can only go to col 0; row 1 can go to either. Optimal must send
	// row 0 -> col 0 (forced), row 1 -> col 1, leaving none gated.
	cost := [][]float64{
		{1, inf},
		{5, 2},
	}

	matches, unmatchedRows, unmatchedCols := Solve(cost)

	want := map[[2]int]bool{{0, 0}: true, {1, 1}: true}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d: %v", len(matches), matches)
	}
	for _, m := range matches {
		if !want[[2]int{m.Row, m.Col}] {
			t.Errorf("Unexpected match (%d,%d)", m.Row, m.Col)
		}
	}
	if len(unmatchedRows) != 0 || len(unmatchedCols) != 0 {
		t.Errorf("Expected no unmatched, got %d rows, %d cols", len(unmatchedRows), len(unmatchedCols))
	}
}

func TestSolve_RectangularMoreRows(t *testing.T) {
	cost := [][]float64{
		{1, 5},
		{3, 2},
		{4, 6},
		{2, 3},
	}

	matches, unmatchedRows, _ := Solve(cost)

	if len(matches) > 2 {
		t.Errorf("Expected at most 2 matches, got %d", len(matches))
	}
	if len(unmatchedRows) < 2 {
		t.Errorf("Expected at least 2 unmatched rows, got %d", len(unmatchedRows))
	}
}

func TestSolve_EmptyMatrix(t *testing.T) {
	matches, unmatchedRows, unmatchedCols := Solve(nil)
	if matches != nil || unmatchedRows != nil || unmatchedCols != nil {
		t.Errorf("Expected all nil for empty matrix")
	}
}

func TestSolve_EmptyColumns(t *testing.T) {
	cost := [][]float64{{}, {}, {}}

	matches, unmatchedRows, unmatchedCols := Solve(cost)

	if matches != nil {
		t.Errorf("Expected nil matches, got %v", matches)
	}
	if len(unmatchedRows) != 3 {
		t.Errorf("Expected 3 unmatched rows, got %d", len(unmatchedRows))
	}
	if unmatchedCols != nil {
		t.Errorf("Expected nil unmatchedCols, got %v", unmatchedCols)
	}
}

func TestGreedy_PicksGlobalMinimaInOrder(t *testing.T) {
	cost := [][]float64{
		{1, 100, 100},
		{100, 2, 100},
		{100, 100, 3},
	}

	matches, unmatchedRows, unmatchedCols := Greedy(cost)

	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matches))
	}
	total := 0.0
	for _, m := range matches {
		total += cost[m.Row][m.Col]
	}
	if total != 6.0 {
		t.Errorf("Expected total cost 6.0 (diagonal), got %v", total)
	}
	if len(unmatchedRows) != 0 || len(unmatchedCols) != 0 {
		t.Errorf("Expected no unmatched")
	}
}

func TestGreedy_RespectsGating(t *testing.T) {
	inf := math.Inf(1)
	cost := [][]float64{
		{inf, 1},
		{2, inf},
	}

	matches, unmatchedRows, unmatchedCols := Greedy(cost)

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	for _, m := range matches {
		if math.IsInf(cost[m.Row][m.Col], 1) {
			t.Errorf("Greedy selected a gated cell (%d,%d)", m.Row, m.Col)
		}
	}
	_ = unmatchedRows
	_ = unmatchedCols
}

func TestGreedy_AllGated(t *testing.T) {
	inf := math.Inf(1)
	cost := [][]float64{
		{inf, inf},
		{inf, inf},
	}

	matches, unmatchedRows, unmatchedCols := Greedy(cost)

	if len(matches) != 0 {
		t.Errorf("Expected 0 matches, got %d", len(matches))
	}
	if len(unmatchedRows) != 2 || len(unmatchedCols) != 2 {
		t.Errorf("Expected all unmatched")
	}
}

func TestGreedy_EmptyMatrix(t *testing.T) {
	matches, unmatchedRows, unmatchedCols := Greedy(nil)
	if matches != nil || unmatchedRows != nil || unmatchedCols != nil {
		t.Errorf("Expected all nil for empty matrix")
	}
}
