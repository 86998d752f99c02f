package maze

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oomph-ac/mazeball/game"
)

// DefaultLayout is the 11x11 layout used when no layout file is configured.
const DefaultLayout = `
11111111111
10000000001
10110111101
10100000101
10101110101
10000010001
11111011101
10001000101
10101110101
10000000001
11111111111
`

// Default returns the grid for DefaultLayout with the default cell size and wall height.
func Default() *Grid {
	g, err := FromString(DefaultLayout, game.CellSize, game.WallHeight)
	if err != nil {
		panic(fmt.Errorf("default layout is invalid: %w", err))
	}
	return g
}

// Parse reads a layout made of '0' (open) and '1' (wall) characters, one row per line. Blank
// lines, whitespace, commas and lines starting with '#' are ignored.
func Parse(r io.Reader) ([][]Cell, error) {
	var cells [][]Cell
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		row := make([]Cell, 0, len(text))
		for col, ch := range text {
			switch ch {
			case '0':
				row = append(row, Open)
			case '1':
				row = append(row, Wall)
			case ' ', '\t', ',':
			default:
				return nil, fmt.Errorf("line %d, column %d: unexpected %q: %w", line, col+1, ch, ErrInvalidCell)
			}
		}
		cells = append(cells, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading layout: %w", err)
	}
	if len(cells) == 0 {
		return nil, ErrTooSmall
	}
	return cells, nil
}

// FromString parses and validates a layout held in memory.
func FromString(layout string, cellSize, wallHeight float64) (*Grid, error) {
	cells, err := Parse(strings.NewReader(layout))
	if err != nil {
		return nil, err
	}
	return New(cells, cellSize, wallHeight)
}

// LoadFile parses and validates the layout file at path.
func LoadFile(path string, cellSize, wallHeight float64) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening layout: %w", err)
	}
	defer f.Close()

	cells, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	g, err := New(cells, cellSize, wallHeight)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
