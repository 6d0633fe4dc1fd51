package tetris

import (
	"iter"
	"time"
)

const (
	DefaultRows            = 20
	DefaultCols            = 10
	DefaultGravityInterval = time.Second
)

// kickOffsets are the horizontal corrections tried, in order, when a rotation
// collides in place.
var kickOffsets = [...]int{0, -1, 1, -2, 2}

// Config holds the immutable parameters of one engine.
type Config struct {
	Rows int
	Cols int
	// GravityInterval is advisory: the engine never reads a clock, drivers
	// use it to pace StepGravity.
	GravityInterval time.Duration
	Seed            uint64
}

// DefaultConfig returns a 20×10 board with one-second gravity.
func DefaultConfig() Config {
	return Config{
		Rows:            DefaultRows,
		Cols:            DefaultCols,
		GravityInterval: DefaultGravityInterval,
	}
}

func (c Config) withDefaults() Config {
	if c.Rows <= 0 {
		c.Rows = DefaultRows
	}
	if c.Cols <= 0 {
		c.Cols = DefaultCols
	}
	if c.GravityInterval <= 0 {
		c.GravityInterval = DefaultGravityInterval
	}
	return c
}

// Direction selects a rotation sense.
type Direction uint8

const (
	CW Direction = iota
	CCW
)

func (d Direction) String() string {
	if d == CCW {
		return "CCW"
	}
	return "CW"
}

// Piece is the falling piece: its kind, current orientation and the board
// position of the matrix's top-left corner.
type Piece struct {
	Kind   Kind
	Matrix Matrix
	X, Y   int
}

// Cells yields the board coordinates (col, row) of every occupied square.
func (p Piece) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for r := range MatrixSize {
			for c := range MatrixSize {
				if !p.Matrix[r][c] {
					continue
				}
				if !yield(p.X+c, p.Y+r) {
					return
				}
			}
		}
	}
}

// State is one immutable engine snapshot.
type State struct {
	cfg              Config
	board            Board
	active           Piece
	hold             Kind
	hasHold          bool
	canHold          bool
	supply           Supply
	stats            Stats
	gameOver         bool
	didRotateCurrent bool
}

// New creates an engine with an empty board and the first piece spawned.
// Zero config fields take their defaults.
func New(cfg Config) *State {
	cfg = cfg.withDefaults()

	s := &State{
		cfg:     cfg,
		board:   NewBoard(cfg.Rows, cfg.Cols),
		canHold: true,
		supply:  NewSupply(cfg.Seed),
	}

	kind, supply := s.supply.Next()
	s.supply = supply
	s.spawn(kind)

	return s
}

// NewWithBoard is New starting from a pre-filled board. The board's
// dimensions replace cfg.Rows and cfg.Cols.
func NewWithBoard(cfg Config, board Board) *State {
	cfg.Rows = board.Rows()
	cfg.Cols = board.Cols()

	s := New(cfg)
	s.board = board
	s.gameOver = s.collides(s.active.Matrix, s.active.X, s.active.Y)
	return s
}

func (s *State) Config() Config { return s.cfg }
func (s *State) Board() Board { return s.board }
func (s *State) Active() Piece { return s.active }
func (s *State) CanHold() bool { return s.canHold }
func (s *State) Stats() Stats { return s.stats }
func (s *State) GameOver() bool { return s.gameOver }
func (s *State) DidRotateCurrent() bool { return s.didRotateCurrent }

// HoldKind returns the held kind; ok is false while the slot is empty.
func (s *State) HoldKind() (k Kind, ok bool) { return s.hold, s.hasHold }

// Next returns up to n upcoming kinds.
func (s *State) Next(n int) []Kind { return s.supply.Peek(n) }

func (s *State) collides(m Matrix, x, y int) bool {
	return s.board.Collides(m, x, y)
}

// clone copies the snapshot. Board and Supply never mutate shared storage,
// so a shallow copy is fully independent.
func (s *State) clone() *State {
	next := *s
	return &next
}

// MoveHorizontal shifts the active piece by delta columns if the target
// placement is free.
func (s *State) MoveHorizontal(delta int) *State {
	if s.gameOver || delta == 0 {
		return s
	}

	x := s.active.X + delta
	if s.collides(s.active.Matrix, x, s.active.Y) {
		return s
	}

	next := s.clone()
	next.active.X = x
	return next
}

// Rotate turns the active piece, trying each kick offset in order. The first
// free placement wins; if none is free the state is returned unchanged.
func (s *State) Rotate(dir Direction) *State {
	if s.gameOver {
		return s
	}

	rotated := s.active.Matrix.RotateCW()
	if dir == CCW {
		rotated = s.active.Matrix.RotateCCW()
	}

	for _, offset := range kickOffsets {
		x := s.active.X + offset
		if s.collides(rotated, x, s.active.Y) {
			continue
		}

		next := s.clone()
		next.active.Matrix = rotated
		next.active.X = x
		next.didRotateCurrent = true
		next.stats.RotationsUsed++
		return next
	}

	return s
}

// StepGravity moves the active piece down one row, or locks it when the row
// below is blocked.
func (s *State) StepGravity() *State {
	if s.gameOver {
		return s
	}

	next := s.clone()
	if !s.collides(s.active.Matrix, s.active.X, s.active.Y+1) {
		next.active.Y++
		return next
	}

	next.lockActive()
	return next
}

// HardDrop drops the active piece as far as it goes and locks it in one step.
func (s *State) HardDrop() *State {
	if s.gameOver {
		return s
	}

	next := s.clone()
	next.active.Y = s.GhostY()
	next.lockActive()
	return next
}

// Hold parks the active kind. With an empty slot the next queued kind spawns;
// otherwise the held kind is swapped in without touching the queue. Only one
// hold is allowed per locked piece.
func (s *State) Hold() *State {
	if s.gameOver || !s.canHold {
		return s
	}

	next := s.clone()
	current := s.active.Kind

	spawnKind := s.hold
	if !s.hasHold {
		spawnKind, next.supply = s.supply.Next()
	}

	next.hold = current
	next.hasHold = true
	next.canHold = false
	next.didRotateCurrent = false
	next.spawn(spawnKind)
	return next
}

// GhostY returns the row the active piece would land on.
func (s *State) GhostY() int {
	y := s.active.Y
	for !s.collides(s.active.Matrix, s.active.X, y+1) {
		y++
	}
	return y
}

// lockActive mutates a freshly cloned state: it writes the active piece into
// the board, clears rows, updates stats and spawns the next kind.
func (s *State) lockActive() {
	board := s.board.Lock(s.active.Matrix, s.active.X, s.active.Y, s.active.Kind.Cell())
	board, cleared := board.ClearFullRows()
	s.board = board

	s.stats.LinesCleared += cleared
	s.stats.PiecesLocked++
	if s.didRotateCurrent {
		s.stats.FitsAfterRotation++
	}

	s.canHold = true
	s.didRotateCurrent = false

	var kind Kind
	kind, s.supply = s.supply.Next()
	s.spawn(kind)
}

// spawn places kind centred on the top row and flags game over when that
// placement is blocked.
func (s *State) spawn(kind Kind) {
	m := kind.Matrix()
	x := floorDiv(s.cfg.Cols-MatrixSize, 2)

	s.active = Piece{Kind: kind, Matrix: m, X: x, Y: 0}
	if s.collides(m, x, 0) {
		s.gameOver = true
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
