package maze

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"
)

// Fingerprint returns a hash identifying the layout and world dimensions of the grid. Two grids
// with the same fingerprint produce identical simulations.
func (g *Grid) Fingerprint() uint64 {
	buf := make([]byte, 0, 24+g.rows*g.cols)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(g.rows))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(g.cols))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(g.cellSize))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(g.wallHeight))
	for _, row := range g.cells {
		for _, cell := range row {
			buf = append(buf, byte(cell))
		}
	}
	return xxh3.Hash(buf)
}
