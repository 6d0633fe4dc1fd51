package quiz

import (
	"slices"
	"strings"

	"github.com/plus3/refocus/tetris"
)

// Matrix is a square occupancy grid; true marks a filled square.
type Matrix [][]bool

func parseShape(rows ...string) Matrix {
	m := make(Matrix, len(rows))
	for r, row := range rows {
		m[r] = make([]bool, len(row))
		for c, ch := range row {
			m[r][c] = ch == '#'
		}
	}
	return m
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = slices.Clone(row)
	}
	return out
}

// RotateTimes turns m clockwise k quarter turns. Negative k turns
// counter-clockwise.
func RotateTimes(m Matrix, k int) Matrix {
	k %= 4
	if k < 0 {
		k += 4
	}

	out := m.Clone()
	for range k {
		out = tetris.RotateCW(out)
	}
	return out
}

// Mirror flips m left to right.
func Mirror(m Matrix) Matrix {
	out := m.Clone()
	for _, row := range out {
		slices.Reverse(row)
	}
	return out
}

// Trim cuts m down to the bounding box of its filled squares. An empty
// matrix trims to a single empty square.
func Trim(m Matrix) Matrix {
	minRow, maxRow := len(m), -1
	minCol, maxCol := -1, -1

	for r, row := range m {
		for c, filled := range row {
			if !filled {
				continue
			}
			minRow = min(minRow, r)
			maxRow = max(maxRow, r)
			if minCol == -1 || c < minCol {
				minCol = c
			}
			maxCol = max(maxCol, c)
		}
	}

	if maxRow == -1 {
		return Matrix{{false}}
	}

	out := make(Matrix, 0, maxRow-minRow+1)
	for _, row := range m[minRow : maxRow+1] {
		out = append(out, slices.Clone(row[minCol:maxCol+1]))
	}
	return out
}

// Key renders the trimmed shape as "row|row|..." with 1 for filled squares,
// so two matrices share a key exactly when they show the same shape.
func Key(m Matrix) string {
	var sb strings.Builder
	for i, row := range Trim(m) {
		if i > 0 {
			sb.WriteByte('|')
		}
		for _, filled := range row {
			if filled {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}

// String draws the matrix with '#' and '.', one line per row.
func (m Matrix) String() string {
	lines := make([]string, len(m))
	for i, row := range m {
		var sb strings.Builder
		for _, filled := range row {
			if filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}
