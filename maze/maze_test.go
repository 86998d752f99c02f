package maze

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGrid(t *testing.T) {
	g := Default()
	require.Equal(t, 11, g.Rows())
	require.Equal(t, 11, g.Cols())
	assert.Equal(t, strings.TrimSpace(DefaultLayout), g.String())

	walls := 0
	for r := range g.Rows() {
		for c := range g.Cols() {
			if g.At(r, c) == Wall {
				walls++
			}
		}
	}
	assert.Len(t, g.Walls(), walls)
}

func TestSpawnAndExit(t *testing.T) {
	g := Default()

	spawn := g.Spawn(0.6)
	assert.True(t, spawn.ApproxEqualThreshold(mgl64.Vec3{0, 0.6, 8}, 1e-9), "spawn %v", spawn)

	exit := g.ExitCenter(1.5)
	assert.True(t, exit.ApproxEqualThreshold(mgl64.Vec3{8, 1.5, -8}, 1e-9), "exit %v", exit)

	row, col := g.CellAt(spawn)
	assert.Equal(t, 9, row)
	assert.Equal(t, 5, col)
}

func TestWallGeometry(t *testing.T) {
	g := Default()

	// The first wall in row-major order is the top left corner.
	first := g.Walls()[0]
	assert.True(t, first.Min().ApproxEqualThreshold(mgl64.Vec3{-11, 0, -11}, 1e-9), "min %v", first.Min())
	assert.True(t, first.Max().ApproxEqualThreshold(mgl64.Vec3{-9, 2, -9}, 1e-9), "max %v", first.Max())
}

func TestValidation(t *testing.T) {
	tests := map[string]struct {
		layout string
		err    error
	}{
		"too small":       {layout: "11\n11", err: ErrTooSmall},
		"not rectangular": {layout: "111\n101\n1111", err: ErrNotRectangular},
		"unsealed":        {layout: "11111\n10001\n00001\n10001\n11111", err: ErrUnsealed},
		"blocked spawn":   {layout: "11111\n10001\n10001\n10101\n11111", err: ErrBlockedSpawn},
		"blocked exit":    {layout: "11111\n10011\n10001\n10001\n11111", err: ErrBlockedExit},
		"invalid cell":    {layout: "111\n121\n111", err: ErrInvalidCell},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromString(test.layout, 2, 2)
			require.ErrorIs(t, err, test.err)
		})
	}
}

func TestInvalidSize(t *testing.T) {
	_, err := FromString(DefaultLayout, 0, 2)
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestNewCopiesLayout(t *testing.T) {
	cells := [][]Cell{
		{Wall, Wall, Wall, Wall, Wall},
		{Wall, Open, Open, Open, Wall},
		{Wall, Open, Open, Open, Wall},
		{Wall, Open, Open, Open, Wall},
		{Wall, Wall, Wall, Wall, Wall},
	}
	g, err := New(cells, 2, 2)
	require.NoError(t, err)

	cells[2][2] = Wall
	assert.Equal(t, Open, g.At(2, 2))
	assert.Equal(t, Wall, g.At(-1, 0))
}

func TestParseIgnoresDecoration(t *testing.T) {
	layout := "# small room\n1,1,1,1,1\n\n1 0 0 0 1\n1 0 0 0 1\n1 0 0 0 1\n1 1 1 1 1\n"
	g, err := FromString(layout, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, g.Rows())
	assert.Equal(t, "11111\n10001\n10001\n10001\n11111", g.String())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.txt")
	require.NoError(t, os.WriteFile(path, []byte(DefaultLayout), 0644))

	g, err := LoadFile(path, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, Default().Fingerprint(), g.Fingerprint())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"), 2, 2)
	require.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	a := Default()
	b, err := FromString(DefaultLayout, 2, 2.2)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, a.Fingerprint(), Default().Fingerprint())
}
