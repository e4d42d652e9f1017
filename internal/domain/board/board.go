package board

import (
	"fmt"

	errs "rhapsody/internal/errors"
)

// Stone is the occupancy of a single board cell.
type Stone uint8

const (
	Empty Stone = iota
	Black
	White
)

// Opponent returns the opposing color. Empty has no opponent and maps to itself.
func (s Stone) Opponent() Stone {
	switch s {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// Letter returns the single-letter external representation: "B", "W" or "E".
func (s Stone) Letter() string {
	switch s {
	case Black:
		return "B"
	case White:
		return "W"
	}
	return "E"
}

// StoneFromLetter is the inverse of Letter.
func StoneFromLetter(letter string) (Stone, error) {
	switch letter {
	case "B":
		return Black, nil
	case "W":
		return White, nil
	case "E":
		return Empty, nil
	}
	return Empty, fmt.Errorf("unknown stone letter %q", letter)
}

// Point is a 0-indexed board coordinate.
type Point struct {
	Row int `json:"row" bson:"row"`
	Col int `json:"col" bson:"col"`
}

// Board is a square grid of stones. It carries no notion of turn order
// or legality beyond rejecting out-of-bounds and occupied placements.
type Board struct {
	size  int
	cells []Stone
}

// New allocates an all-empty board of the given side length.
func New(size int) (*Board, error) {
	if size <= 0 {
		return nil, fmt.Errorf("board size must be positive, got %d", size)
	}
	return &Board{
		size:  size,
		cells: make([]Stone, size*size),
	}, nil
}

func (b *Board) Size() int { return b.size }

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// Get returns the stone at (row, col).
func (b *Board) Get(row, col int) (Stone, error) {
	if !b.inBounds(row, col) {
		return Empty, fmt.Errorf("%w: (%d,%d) on %dx%d board", errs.ErrOutOfBounds, row, col, b.size, b.size)
	}
	return b.cells[row*b.size+col], nil
}

// Set overwrites the stone at (row, col). Only the target cell changes.
func (b *Board) Set(row, col int, s Stone) error {
	if !b.inBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d board", errs.ErrOutOfBounds, row, col, b.size, b.size)
	}
	b.cells[row*b.size+col] = s
	return nil
}

// at is Get without the bounds check, for internal loops that already know.
func (b *Board) at(p Point) Stone {
	return b.cells[p.Row*b.size+p.Col]
}

// Neighbors returns the 2 to 4 in-bounds orthogonal neighbors of (row, col).
func (b *Board) Neighbors(row, col int) []Point {
	out := make([]Point, 0, 4)
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nr, nc := row+d[0], col+d[1]
		if b.inBounds(nr, nc) {
			out = append(out, Point{Row: nr, Col: nc})
		}
	}
	return out
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Stone, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// Grid returns the external letter-grid representation, row-major.
func (b *Board) Grid() [][]string {
	grid := make([][]string, b.size)
	for r := 0; r < b.size; r++ {
		row := make([]string, b.size)
		for c := 0; c < b.size; c++ {
			row[c] = b.cells[r*b.size+c].Letter()
		}
		grid[r] = row
	}
	return grid
}

// FromGrid rebuilds a board from its letter-grid representation.
func FromGrid(grid [][]string) (*Board, error) {
	b, err := New(len(grid))
	if err != nil {
		return nil, err
	}
	for r, row := range grid {
		if len(row) != b.size {
			return nil, fmt.Errorf("grid row %d has %d cells, want %d", r, len(row), b.size)
		}
		for c, letter := range row {
			s, err := StoneFromLetter(letter)
			if err != nil {
				return nil, err
			}
			b.cells[r*b.size+c] = s
		}
	}
	return b, nil
}

// Apply places a stone for color at (row, col) and removes any adjacent
// enemy group left without liberties. It returns the captured coordinates.
// An out-of-bounds or occupied placement leaves the board untouched.
//
// Each enemy group is evaluated against the grid as it stands at that
// moment, after the placement and after any removal earlier in the same
// call. Suicide is not blocked here: the upstream game record is trusted,
// and the resulting position is reported as it really is.
func (b *Board) Apply(row, col int, color Stone) ([]Point, error) {
	if !b.inBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d,%d) on %dx%d board", errs.ErrOutOfBounds, row, col, b.size, b.size)
	}
	if b.cells[row*b.size+col] != Empty {
		return nil, fmt.Errorf("%w: (%d,%d) holds %s", errs.ErrCellOccupied, row, col, b.cells[row*b.size+col].Letter())
	}
	b.cells[row*b.size+col] = color

	var captured []Point
	opponent := color.Opponent()
	for _, n := range b.Neighbors(row, col) {
		// A neighbor of an already removed group reads as empty here.
		if b.at(n) != opponent {
			continue
		}
		group := b.GroupAt(n)
		if len(b.Liberties(group)) != 0 {
			continue
		}
		for p := range group {
			b.cells[p.Row*b.size+p.Col] = Empty
			captured = append(captured, p)
		}
	}
	return captured, nil
}
