package engine

// Cells is the board surface the gravity system compacts.
// Occupied must report true for out-of-range positions.
type Cells interface {
	Rows() int
	Cols() int
	Occupied(row, col int) bool
	MoveItem(fromRow, fromCol, toRow, toCol int) bool
}

// MoveKind distinguishes vertical falls from horizontal shifts.
type MoveKind uint8

const (
	MoveFall MoveKind = iota
	MoveShift
)

// String returns the move kind name.
func (k MoveKind) String() string {
	if k == MoveShift {
		return "shift"
	}
	return "fall"
}

// Move records one item relocation.
type Move struct {
	Kind MoveKind
	From Pos
	To   Pos
}

// GravitySystem compacts items downward and then rightward.
type GravitySystem struct {
	cells Cells
}

// NewGravitySystem creates a gravity system over the given cells.
func NewGravitySystem(cells Cells) *GravitySystem {
	return &GravitySystem{cells: cells}
}

// ApplyGravity drops every item to the lowest empty slot beneath it,
// repeating full passes until one makes no moves.
func (gs *GravitySystem) ApplyGravity() []Move {
	var moves []Move
	for {
		pass := gs.gravityPass()
		if len(pass) == 0 {
			return moves
		}
		moves = append(moves, pass...)
	}
}

func (gs *GravitySystem) gravityPass() []Move {
	var moves []Move
	rows, cols := gs.cells.Rows(), gs.cells.Cols()
	for col := 0; col < cols; col++ {
		for row := rows - 2; row >= 0; row-- {
			if !gs.cells.Occupied(row, col) || gs.cells.Occupied(row+1, col) {
				continue
			}
			target := row + 1
			for !gs.cells.Occupied(target+1, col) {
				target++
			}
			if gs.cells.MoveItem(row, col, target, col) {
				moves = append(moves, Move{Kind: MoveFall, From: Pos{row, col}, To: Pos{target, col}})
			}
		}
	}
	return moves
}

// ShiftRight slides every item in a row to the rightmost empty slot it can
// reach, repeating full passes until one makes no moves.
func (gs *GravitySystem) ShiftRight() []Move {
	var moves []Move
	for {
		pass := gs.shiftPass()
		if len(pass) == 0 {
			return moves
		}
		moves = append(moves, pass...)
	}
}

func (gs *GravitySystem) shiftPass() []Move {
	var moves []Move
	rows, cols := gs.cells.Rows(), gs.cells.Cols()
	for row := 0; row < rows; row++ {
		for col := cols - 2; col >= 0; col-- {
			if !gs.cells.Occupied(row, col) || gs.cells.Occupied(row, col+1) {
				continue
			}
			target := col + 1
			for !gs.cells.Occupied(row, target+1) {
				target++
			}
			if gs.cells.MoveItem(row, col, row, target) {
				moves = append(moves, Move{Kind: MoveShift, From: Pos{row, col}, To: Pos{row, target}})
			}
		}
	}
	return moves
}

// Resolve alternates gravity and right shift until neither moves anything.
func (gs *GravitySystem) Resolve() []Move {
	var moves []Move
	for {
		fall := gs.ApplyGravity()
		shift := gs.ShiftRight()
		if len(fall) == 0 && len(shift) == 0 {
			return moves
		}
		moves = append(moves, fall...)
		moves = append(moves, shift...)
	}
}

// EmptyCells lists empty positions column by column from right to left,
// bottom to top within a column.
func (gs *GravitySystem) EmptyCells() []Pos {
	var out []Pos
	rows, cols := gs.cells.Rows(), gs.cells.Cols()
	for col := cols - 1; col >= 0; col-- {
		for row := rows - 1; row >= 0; row-- {
			if !gs.cells.Occupied(row, col) {
				out = append(out, Pos{Row: row, Col: col})
			}
		}
	}
	return out
}
