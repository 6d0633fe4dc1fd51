package tetris

import (
	"fmt"
	"strings"
)

// Cell is the content of one board square.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellI
	CellO
	CellT
	CellS
	CellZ
	CellJ
	CellL
)

// Kind returns the piece kind that produced the cell. ok is false for CellEmpty.
func (c Cell) Kind() (k Kind, ok bool) {
	if c == CellEmpty || c > CellL {
		return 0, false
	}
	return Kind(c - 1), true
}

func (c Cell) String() string {
	if k, ok := c.Kind(); ok {
		return k.String()
	}
	return "."
}

// Board is an immutable rows×cols grid. Operations that change cells return a
// new Board and leave the receiver untouched, so boards may be shared freely
// between snapshots.
type Board struct {
	rows  int
	cols  int
	cells []Cell
}

// NewBoard returns an empty board.
func NewBoard(rows, cols int) Board {
	return Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

// BoardFromRows parses the format produced by Board.String: one string per
// row, '.' for empty and a kind letter for occupied cells.
func BoardFromRows(rows ...string) (Board, error) {
	if len(rows) == 0 {
		return Board{}, fmt.Errorf("board needs at least one row")
	}

	b := NewBoard(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != b.cols {
			return Board{}, fmt.Errorf("row %d has %d columns, want %d", r, len(row), b.cols)
		}
		for c, ch := range row {
			cell, err := parseCell(ch)
			if err != nil {
				return Board{}, fmt.Errorf("row %d col %d: %w", r, c, err)
			}
			b.cells[r*b.cols+c] = cell
		}
	}
	return b, nil
}

func parseCell(ch rune) (Cell, error) {
	if ch == '.' {
		return CellEmpty, nil
	}
	for _, k := range Kinds {
		if k.String() == string(ch) {
			return k.Cell(), nil
		}
	}
	return CellEmpty, fmt.Errorf("unknown cell %q", ch)
}

func (b Board) Rows() int { return b.rows }
func (b Board) Cols() int { return b.cols }

// At returns the cell at (row, col). Out of range coordinates read as empty.
func (b Board) At(row, col int) Cell {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return CellEmpty
	}
	return b.cells[row*b.cols+col]
}

// Row returns a copy of one row.
func (b Board) Row(row int) []Cell {
	out := make([]Cell, b.cols)
	copy(out, b.cells[row*b.cols:(row+1)*b.cols])
	return out
}

// Clone returns a board with its own cell storage.
func (b Board) Clone() Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Board{rows: b.rows, cols: b.cols, cells: cells}
}

// Filled counts the non-empty cells.
func (b Board) Filled() int {
	n := 0
	for _, cell := range b.cells {
		if cell != CellEmpty {
			n++
		}
	}
	return n
}

// Collides reports whether m placed with its top-left corner at (x, y)
// leaves the board horizontally, reaches row >= rows, or overlaps a filled
// cell. Cells above the board (row < 0) skip the overlap test but are still
// bounded horizontally.
func (b Board) Collides(m Matrix, x, y int) bool {
	for r := range MatrixSize {
		for c := range MatrixSize {
			if !m[r][c] {
				continue
			}

			bx := x + c
			by := y + r

			if bx < 0 || bx >= b.cols || by >= b.rows {
				return true
			}

			if by >= 0 && b.cells[by*b.cols+bx] != CellEmpty {
				return true
			}
		}
	}

	return false
}

// Lock writes cell into every occupied, in-bounds square of m at (x, y).
func (b Board) Lock(m Matrix, x, y int, cell Cell) Board {
	next := b.Clone()
	for r := range MatrixSize {
		for c := range MatrixSize {
			if !m[r][c] {
				continue
			}

			bx := x + c
			by := y + r

			if by >= 0 && by < b.rows && bx >= 0 && bx < b.cols {
				next.cells[by*b.cols+bx] = cell
			}
		}
	}
	return next
}

// ClearFullRows removes every row without an empty cell and prepends the same
// number of empty rows. The order of surviving rows is preserved.
func (b Board) ClearFullRows() (Board, int) {
	kept := make([]Cell, 0, len(b.cells))
	cleared := 0

	for r := range b.rows {
		row := b.cells[r*b.cols : (r+1)*b.cols]
		if hasGap(row) {
			kept = append(kept, row...)
		} else {
			cleared++
		}
	}

	if cleared == 0 {
		return b, 0
	}

	cells := make([]Cell, cleared*b.cols, len(b.cells))
	cells = append(cells, kept...)
	return Board{rows: b.rows, cols: b.cols, cells: cells}, cleared
}

func hasGap(row []Cell) bool {
	for _, cell := range row {
		if cell == CellEmpty {
			return true
		}
	}
	return false
}

func (b Board) String() string {
	var sb strings.Builder
	for r := range b.rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range b.cols {
			sb.WriteString(b.cells[r*b.cols+c].String())
		}
	}
	return sb.String()
}
