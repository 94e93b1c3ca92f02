// Package assignment solves the per-frame bipartite matching between live
// tracks and detections: an optimal (Hungarian) solver with support for
// hard-gated (+Inf) cells, and a greedy fallback for use when the optimal
// solver is judged to be taking too long.
package assignment

import (
	"math"

	hungarian "github.com/arthurkushman/go-hungarian"
)

// Pair is a single row/col match in a solved assignment.
type Pair struct {
	Row int
	Col int
}

// sentinelCost stands in for a gated (+Inf) cell inside the profit-maximizing
// solver. It must be larger than the sum of every finite cost the matrix can
// contain so the solver never prefers a gated cell over any finite one.
const sentinelCost = 1e12

// Solve finds the minimum-cost assignment between rows and cols of cost,
// where cost[i][j] == math.Inf(1) marks a gated (forbidden) pair. Gated
// pairs never appear in the returned matches even if the solver would
// otherwise be forced to use one to cover every row or column; any row or
// column left without a finite-cost partner is reported unmatched.
//
// The underlying solver (github.com/arthurkushman/go-hungarian) maximizes
// profit over a square matrix, so cost is first padded to square and
// converted to profit by subtracting from a bound large enough that the
// relative order of finite costs is preserved and gated cells never win.
func Solve(cost [][]float64) (matches []Pair, unmatchedRows, unmatchedCols []int) {
	numRows := len(cost)
	if numRows == 0 {
		return nil, nil, nil
	}
	numCols := len(cost[0])
	if numCols == 0 {
		unmatchedRows = make([]int, numRows)
		for i := range unmatchedRows {
			unmatchedRows[i] = i
		}
		return nil, unmatchedRows, nil
	}

	size := numRows
	if numCols > size {
		size = numCols
	}

	profit := make([][]float64, size)
	for i := range profit {
		profit[i] = make([]float64, size)
		for j := range profit[i] {
			if i >= numRows || j >= numCols {
				profit[i][j] = 0.0
				continue
			}
			c := cost[i][j]
			if math.IsInf(c, 1) {
				profit[i][j] = -sentinelCost
				continue
			}
			profit[i][j] = sentinelCost - c
		}
	}

	result := hungarian.SolveMax(profit)

	matchedRows := make(map[int]bool, numRows)
	matchedCols := make(map[int]bool, numCols)

	for rowIdx, cols := range result {
		for colIdx := range cols {
			if rowIdx >= numRows || colIdx >= numCols {
				continue
			}
			c := cost[rowIdx][colIdx]
			if math.IsInf(c, 1) {
				continue
			}
			matches = append(matches, Pair{Row: rowIdx, Col: colIdx})
			matchedRows[rowIdx] = true
			matchedCols[colIdx] = true
		}
	}

	for i := 0; i < numRows; i++ {
		if !matchedRows[i] {
			unmatchedRows = append(unmatchedRows, i)
		}
	}
	for j := 0; j < numCols; j++ {
		if !matchedCols[j] {
			unmatchedCols = append(unmatchedCols, j)
		}
	}

	return matches, unmatchedRows, unmatchedCols
}

// Greedy performs a repeated argmin-with-invalidation assignment: it
// repeatedly picks the globally cheapest remaining finite-cost cell, commits
// it, and removes that row and column from further consideration. It does
// not guarantee the optimum but runs in O(n*m) per pick and degrades gracefully when
// the optimal solver is too slow for the frame budget.
func Greedy(cost [][]float64) (matches []Pair, unmatchedRows, unmatchedCols []int) {
	numRows := len(cost)
	if numRows == 0 {
		return nil, nil, nil
	}
	numCols := len(cost[0])

	rowUsed := make([]bool, numRows)
	colUsed := make([]bool, numCols)
	remaining := numRows
	if numCols < remaining {
		remaining = numCols
	}

	for step := 0; step < remaining; step++ {
		bestRow, bestCol := -1, -1
		bestCost := math.Inf(1)
		for i := 0; i < numRows; i++ {
			if rowUsed[i] {
				continue
			}
			for j := 0; j < numCols; j++ {
				if colUsed[j] {
					continue
				}
				c := cost[i][j]
				if math.IsInf(c, 1) {
					continue
				}
				if c < bestCost {
					bestCost = c
					bestRow, bestCol = i, j
				}
			}
		}
		if bestRow == -1 {
			break
		}
		matches = append(matches, Pair{Row: bestRow, Col: bestCol})
		rowUsed[bestRow] = true
		colUsed[bestCol] = true
	}

	for i := 0; i < numRows; i++ {
		if !rowUsed[i] {
			unmatchedRows = append(unmatchedRows, i)
		}
	}
	for j := 0; j < numCols; j++ {
		if !colUsed[j] {
			unmatchedCols = append(unmatchedCols, j)
		}
	}

	return matches, unmatchedRows, unmatchedCols
}
