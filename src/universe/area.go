package universe

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

//Cell is the occupant of a single grid position
type Cell uint8

const (
	Empty   Cell = 0
	Player1 Cell = 1
	Player2 Cell = 2

	//Alive is the only occupant used by the classic rules
	Alive = Player1
)

var (
	ErrOutOfRange = errors.New("coordinates out of range")
	ErrBadCell    = errors.New("unknown cell value")
	ErrBadSize    = errors.New("area dimensions must be positive")
)

func (c Cell) valid() bool {
	return c <= Player2
}

//Other returns the opponent of the player, Empty stays Empty
func (c Cell) Other() Cell {
	switch c {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Player1:
		return "player 1"
	case Player2:
		return "player 2"
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}

//Area is the toroidal field where cells are living
//dimensions are fixed when the area is created
type Area struct {
	width  int
	height int
	cells  []Cell
}

//NewArea allocates the area, both dimensions must be positive
func NewArea(width int, height int) (*Area, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("area %dx%d: %w", width, height, ErrBadSize)
	}
	return &Area{width: width, height: height, cells: make([]Cell, width*height)}, nil
}

func (a *Area) Width() int  { return a.width }
func (a *Area) Height() int { return a.height }

func (a *Area) inside(x int, y int) bool {
	return x >= 0 && y >= 0 && x < a.width && y < a.height
}

func (a *Area) at(x int, y int) Cell {
	return a.cells[y*a.width+x]
}

//put writes the occupant without the checks, x, y must be inside
func (a *Area) put(x int, y int, c Cell) {
	a.cells[y*a.width+x] = c
}

//Get returns the occupant at x, y
func (a *Area) Get(x int, y int) (Cell, error) {
	if !a.inside(x, y) {
		return Empty, fmt.Errorf("get %d,%d in %dx%d: %w", x, y, a.width, a.height, ErrOutOfRange)
	}
	return a.at(x, y), nil
}

//Set overwrites the occupant at x, y
func (a *Area) Set(x int, y int, c Cell) error {
	if !a.inside(x, y) {
		return fmt.Errorf("set %d,%d in %dx%d: %w", x, y, a.width, a.height, ErrOutOfRange)
	}
	if !c.valid() {
		return fmt.Errorf("set %d,%d: %w", x, y, ErrBadCell)
	}
	a.cells[y*a.width+x] = c
	return nil
}

//neighbors counts the occupied neighbours of x, y per player
//edges are wrapped around to the opposite side
func (a *Area) neighbors(x int, y int) (p1 int, p2 int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := ((x+dx)%a.width + a.width) % a.width
			ny := ((y+dy)%a.height + a.height) % a.height
			switch a.cells[ny*a.width+nx] {
			case Player1:
				p1++
			case Player2:
				p2++
			}
		}
	}
	return
}

//CountAliveNeighbors returns the number of occupied cells among the 8 wrapped neighbours
func (a *Area) CountAliveNeighbors(x int, y int) int {
	p1, p2 := a.neighbors(x, y)
	return p1 + p2
}

//DominantNeighborOwner returns the player holding most of the neighbours of x, y
//Player1 wins the tie
func (a *Area) DominantNeighborOwner(x int, y int) Cell {
	p1, p2 := a.neighbors(x, y)
	if p1 >= p2 {
		return Player1
	}
	return Player2
}

//CountOccupied returns the count of non-empty cells
func (a *Area) CountOccupied() int {
	n := 0
	for _, c := range a.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

//Count returns the count of cells held by the occupant c
func (a *Area) Count(c Cell) int {
	n := 0
	for _, v := range a.cells {
		if v == c {
			n++
		}
	}
	return n
}

//Clear kills all cells
func (a *Area) Clear() {
	for i := range a.cells {
		a.cells[i] = Empty
	}
}

//FillRandom makes every cell alive with the probability p
func (a *Area) FillRandom(p float64, rng *rand.Rand) {
	for i := range a.cells {
		if rng.Float64() < p {
			a.cells[i] = Alive
		} else {
			a.cells[i] = Empty
		}
	}
}

//Walk walks the entire area row by row and calls cb for each cell
func (a *Area) Walk(cb func(x int, y int, c Cell)) {
	for y := 0; y < a.height; y++ {
		row := a.cells[y*a.width : (y+1)*a.width]
		for x, c := range row {
			cb(x, y, c)
		}
	}
}

//Row returns a copy of the row y
func (a *Area) Row(y int) []Cell {
	row := make([]Cell, a.width)
	copy(row, a.cells[y*a.width:(y+1)*a.width])
	return row
}

//Clone returns the deep copy of the area
func (a *Area) Clone() *Area {
	b := &Area{width: a.width, height: a.height, cells: make([]Cell, len(a.cells))}
	copy(b.cells, a.cells)
	return b
}

//swap exchanges the cell buffers of two areas with the same dimensions
func (a *Area) swap(b *Area) {
	a.cells, b.cells = b.cells, a.cells
}
