// Package tetris implements a deterministic falling-block puzzle engine.
//
// Every transition operates on an immutable *State snapshot. A rejected move
// returns the very same pointer; an accepted one returns a freshly allocated
// State that shares no mutable storage with its predecessor. Callers keep one
// authoritative "current" pointer and replace it after every call.
package tetris

// MatrixSize is the side length of every piece matrix.
const MatrixSize = 4

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// Kinds lists every piece kind in bag order.
var Kinds = [7]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	}
	return "?"
}

// Valid reports whether k is one of the seven kinds.
func (k Kind) Valid() bool {
	return k <= KindL
}

// Cell returns the board tag written when a piece of this kind locks.
func (k Kind) Cell() Cell {
	return Cell(k) + 1
}

// Matrix returns the spawn orientation of the kind. Matrices are arrays, so
// the result never aliases the table.
func (k Kind) Matrix() Matrix {
	return spawnMatrices[k]
}

// Matrix is a square occupancy grid indexed [row][col].
type Matrix [MatrixSize][MatrixSize]bool

var spawnMatrices = [7]Matrix{
	KindI: parseMatrix("0000", "1111", "0000", "0000"),
	KindO: parseMatrix("0110", "0110", "0000", "0000"),
	KindT: parseMatrix("0100", "1110", "0000", "0000"),
	KindS: parseMatrix("0110", "1100", "0000", "0000"),
	KindZ: parseMatrix("1100", "0110", "0000", "0000"),
	KindJ: parseMatrix("1000", "1110", "0000", "0000"),
	KindL: parseMatrix("0010", "1110", "0000", "0000"),
}

func parseMatrix(rows ...string) Matrix {
	var m Matrix
	for r, row := range rows {
		for c, ch := range row {
			m[r][c] = ch == '1'
		}
	}
	return m
}

// RotateCW returns the matrix turned 90° clockwise.
func (m Matrix) RotateCW() Matrix {
	var out Matrix
	for r := range MatrixSize {
		for c := range MatrixSize {
			out[r][c] = m[MatrixSize-1-c][r]
		}
	}
	return out
}

// RotateCCW returns the matrix turned 90° counter-clockwise.
func (m Matrix) RotateCCW() Matrix {
	var out Matrix
	for r := range MatrixSize {
		for c := range MatrixSize {
			out[r][c] = m[c][MatrixSize-1-r]
		}
	}
	return out
}

// Cells returns the number of occupied cells.
func (m Matrix) Cells() int {
	n := 0
	for r := range MatrixSize {
		for c := range MatrixSize {
			if m[r][c] {
				n++
			}
		}
	}
	return n
}

// Slice converts the matrix into a freshly allocated [][]bool.
func (m Matrix) Slice() [][]bool {
	out := make([][]bool, MatrixSize)
	for r := range out {
		out[r] = make([]bool, MatrixSize)
		copy(out[r], m[r][:])
	}
	return out
}

// RotateCW turns an N×N matrix 90° clockwise: out[r][c] = in[N-1-c][r].
func RotateCW[T any](m [][]T) [][]T {
	size := len(m)
	out := makeSquare[T](size)
	for r := range size {
		for c := range size {
			out[r][c] = m[size-1-c][r]
		}
	}
	return out
}

// RotateCCW turns an N×N matrix 90° counter-clockwise: out[r][c] = in[c][N-1-r].
func RotateCCW[T any](m [][]T) [][]T {
	size := len(m)
	out := makeSquare[T](size)
	for r := range size {
		for c := range size {
			out[r][c] = m[c][size-1-r]
		}
	}
	return out
}

func makeSquare[T any](size int) [][]T {
	out := make([][]T, size)
	for i := range out {
		out[i] = make([]T, size)
	}
	return out
}
