// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// impl_grid.go - implementation of Grid(rows, cols) constructor.
//
// Contract:
//   - rows ≥ 1 and cols ≥ 1 (else ErrTooFewVertices).
//   - Vertices are returned in row-major order: ids[r*cols+c].
//   - For each cell in row-major order: right neighbor first, then bottom.
//
// Complexity: O(R*C) vertices + O(2RC-R-C) edges.

package builder

import "fmt"

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor that builds a rows×cols 4-neighborhood grid.
func Grid(rows, cols int) Constructor {
	return func(t Target, cfg builderConfig) ([]int, error) {
		if rows < minGridDim || cols < minGridDim {
			return nil, fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
		}

		ids := addVertices(t, rows*cols)
		at := func(r, c int) int { return ids[r*cols+c] }
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					if err := connect(t, cfg, methodGrid, at(r, c), at(r, c+1)); err != nil {
						return ids, err
					}
				}
				if r+1 < rows {
					if err := connect(t, cfg, methodGrid, at(r, c), at(r+1, c)); err != nil {
						return ids, err
					}
				}
			}
		}

		return ids, nil
	}
}
