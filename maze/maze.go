// Package maze holds the static grid the avatar moves through. A Grid is validated once when it
// is created and never changes afterwards, so the wall boxes derived from it are computed eagerly.
package maze

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mazeball/game"
)

// Cell is a single marker in a maze layout.
type Cell uint8

const (
	Open Cell = iota
	Wall
)

var (
	ErrTooSmall       = errors.New("maze must be at least 3x3")
	ErrNotRectangular = errors.New("maze rows differ in length")
	ErrUnsealed       = errors.New("maze boundary is not sealed")
	ErrInvalidCell    = errors.New("maze cell is neither open nor wall")
	ErrBlockedSpawn   = errors.New("maze spawn cell is a wall")
	ErrBlockedExit    = errors.New("maze exit cell is a wall")
	ErrInvalidSize    = errors.New("maze cell size and wall height must be positive")
)

// Grid is an immutable, validated maze layout together with the world geometry derived from it.
type Grid struct {
	cells      [][]Cell
	rows, cols int

	cellSize   float64
	wallHeight float64

	walls []cube.BBox
}

// New validates the layout passed and returns a Grid for it. The layout is copied, so later
// changes to cells do not affect the Grid.
func New(cells [][]Cell, cellSize, wallHeight float64) (*Grid, error) {
	if cellSize <= 0 || wallHeight <= 0 || !game.IsFinite(cellSize) || !game.IsFinite(wallHeight) {
		return nil, fmt.Errorf("cell size %v, wall height %v: %w", cellSize, wallHeight, ErrInvalidSize)
	}
	rows := len(cells)
	if rows < 3 || len(cells[0]) < 3 {
		return nil, ErrTooSmall
	}
	cols := len(cells[0])

	g := &Grid{
		cells:      make([][]Cell, rows),
		rows:       rows,
		cols:       cols,
		cellSize:   cellSize,
		wallHeight: wallHeight,
	}
	for r, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d cells, expected %d: %w", r, len(row), cols, ErrNotRectangular)
		}
		g.cells[r] = make([]Cell, cols)
		for c, cell := range row {
			if cell != Open && cell != Wall {
				return nil, fmt.Errorf("cell (%d, %d) = %d: %w", r, c, cell, ErrInvalidCell)
			}
			boundary := r == 0 || c == 0 || r == rows-1 || c == cols-1
			if boundary && cell != Wall {
				return nil, fmt.Errorf("cell (%d, %d): %w", r, c, ErrUnsealed)
			}
			g.cells[r][c] = cell
		}
	}

	if r, c := g.SpawnCell(); g.cells[r][c] != Open {
		return nil, fmt.Errorf("cell (%d, %d): %w", r, c, ErrBlockedSpawn)
	}
	if r, c := g.ExitCell(); g.cells[r][c] != Open {
		return nil, fmt.Errorf("cell (%d, %d): %w", r, c, ErrBlockedExit)
	}

	half := cellSize / 2
	for r := range rows {
		for c := range cols {
			if g.cells[r][c] == Wall {
				g.walls = append(g.walls, game.BoxAround(g.CellCenter(r, c), half, half, 0, wallHeight))
			}
		}
	}
	return g, nil
}

// Rows returns the amount of rows in the grid.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the amount of columns in the grid.
func (g *Grid) Cols() int {
	return g.cols
}

// CellSize returns the world-space width of a single cell.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// WallHeight returns the height of every wall box.
func (g *Grid) WallHeight() float64 {
	return g.wallHeight
}

// At returns the cell at the given row and column. Out of range lookups are reported as walls.
func (g *Grid) At(row, col int) Cell {
	if row < 0 || col < 0 || row >= g.rows || col >= g.cols {
		return Wall
	}
	return g.cells[row][col]
}

// CellCenter returns the world position of the center of a cell on the floor plane. The grid is
// centered on the world origin, with rows running along +Z and columns along +X.
func (g *Grid) CellCenter(row, col int) mgl64.Vec3 {
	return mgl64.Vec3{
		(float64(col) - float64(g.cols-1)/2) * g.cellSize,
		0,
		(float64(row) - float64(g.rows-1)/2) * g.cellSize,
	}
}

// CellAt returns the row and column containing the world position passed.
func (g *Grid) CellAt(pos mgl64.Vec3) (row, col int) {
	col = int(math.Floor(pos.X()/g.cellSize + float64(g.cols-1)/2 + 0.5))
	row = int(math.Floor(pos.Z()/g.cellSize + float64(g.rows-1)/2 + 0.5))
	return row, col
}

// Walls returns one box per wall cell, in row-major order. The slice must not be modified.
func (g *Grid) Walls() []cube.BBox {
	return g.walls
}

// SpawnCell returns the cell the avatar spawns in: the middle column of the second to last row.
func (g *Grid) SpawnCell() (row, col int) {
	return g.rows - 2, g.cols / 2
}

// ExitCell returns the cell holding the exit gate: the second to last column of the second row.
func (g *Grid) ExitCell() (row, col int) {
	return 1, g.cols - 2
}

// Spawn returns the center of the spawn cell, raised to the given height.
func (g *Grid) Spawn(height float64) mgl64.Vec3 {
	pos := g.CellCenter(g.SpawnCell())
	pos[1] = height
	return pos
}

// ExitCenter returns the center of the exit gate, raised to the given elevation.
func (g *Grid) ExitCenter(elevation float64) mgl64.Vec3 {
	pos := g.CellCenter(g.ExitCell())
	pos[1] = elevation
	return pos
}

// String renders the grid as rows of '1' and '0' characters.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for r, row := range g.cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			sb.WriteByte('0' + byte(cell))
		}
	}
	return sb.String()
}
