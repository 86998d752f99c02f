package input

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyDownSetsAxis(t *testing.T) {
	m := NewMapper(0)

	require.True(t, m.KeyDown("ArrowUp"))
	assert.Equal(t, Intent{Z: -1}, m.Snapshot())

	require.True(t, m.KeyDown("KeyD"))
	assert.Equal(t, Intent{X: 1, Z: -1}, m.Snapshot())

	assert.False(t, m.KeyDown("Space"))
}

func TestKeyUpOnlyClearsActiveValue(t *testing.T) {
	m := NewMapper(0)

	m.KeyDown("ArrowLeft")
	m.KeyDown("ArrowRight")
	// Left is no longer the active value, so releasing it must not clobber right.
	m.KeyUp("ArrowLeft")
	assert.Equal(t, 1.0, m.Snapshot().X)

	m.KeyUp("ArrowRight")
	assert.Equal(t, 0.0, m.Snapshot().X)
}

func TestKeyUpAcrossBindings(t *testing.T) {
	m := NewMapper(0)

	m.KeyDown("KeyW")
	m.KeyUp("ArrowUp")
	assert.Equal(t, Intent{}, m.Snapshot())
}

func TestCustomBinding(t *testing.T) {
	m := NewMapper(0)
	m.Bind("KeyI", DirectionUp)

	keys := m.Keys()
	require.Len(t, keys, 9)
	assert.Equal(t, "ArrowUp", keys[0])
	assert.Equal(t, "KeyI", keys[8])

	m.KeyDown("KeyI")
	assert.Equal(t, -1.0, m.Snapshot().Z)
}

func TestDragIntentBound(t *testing.T) {
	m := NewMapper(40)
	m.DragStart(100, 100)

	for _, d := range [][2]float64{{40, 0}, {0, 40}, {-300, 0}, {90, -120}, {28.28427, 28.28427}} {
		m.DragMove(100+d[0], 100+d[1])
		assert.InDelta(t, 1, m.Snapshot().Len(), 1e-6, "drag %v", d)
	}

	m.DragMove(100, 100)
	assert.Equal(t, Intent{}, m.Snapshot())
}

func TestDragDirection(t *testing.T) {
	m := NewMapper(40)
	m.DragStart(0, 0)

	// Upwards in a y-up frame means away from the camera.
	m.DragMove(0, 20)
	s := m.Snapshot()
	assert.InDelta(t, 0, s.X, 1e-9)
	assert.InDelta(t, -0.5, s.Z, 1e-9)

	m.DragMove(-40, 0)
	s = m.Snapshot()
	assert.InDelta(t, -1, s.X, 1e-9)
	assert.InDelta(t, 0, s.Z, 1e-9)
}

func TestDragEndResets(t *testing.T) {
	m := NewMapper(40)
	m.DragStart(10, 10)
	m.DragMove(60, 10)
	require.NotEqual(t, Intent{}, m.Snapshot())

	m.DragEnd()
	assert.Equal(t, Intent{}, m.Snapshot())
	_, _, dragging := m.Dragging()
	assert.False(t, dragging)

	// Moves without an active drag are ignored.
	m.DragMove(80, 10)
	assert.Equal(t, Intent{}, m.Snapshot())
}

func TestNonFiniteWritesDropped(t *testing.T) {
	m := NewMapper(40)
	m.Set(0.5, -0.5)

	m.Set(math.NaN(), 0)
	m.DragStart(math.Inf(1), 0)
	assert.Equal(t, Intent{X: 0.5, Z: -0.5}, m.Snapshot())

	m.DragStart(0, 0)
	m.DragMove(math.NaN(), 4)
	assert.Equal(t, Intent{X: 0.5, Z: -0.5}, m.Snapshot())
}

func TestSetClamps(t *testing.T) {
	m := NewMapper(40)
	m.Set(4, -9)
	assert.Equal(t, Intent{X: 1, Z: -1}, m.Snapshot())
}

func TestBindWhileTyping(t *testing.T) {
	m := NewMapper(0)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 500 {
			m.Bind(fmt.Sprintf("Key%d", i), DirectionLeft)
		}
	}()
	go func() {
		defer wg.Done()
		for range 500 {
			m.KeyDown("KeyD")
			m.KeyUp("KeyD")
			_ = m.Keys()
		}
	}()
	wg.Wait()

	assert.Len(t, m.Keys(), 508)
	assert.True(t, m.KeyDown("Key499"))
	assert.Equal(t, -1.0, m.Snapshot().X)
}
