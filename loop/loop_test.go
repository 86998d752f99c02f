package loop

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/oomph-ac/mazeball/input"
	"github.com/oomph-ac/mazeball/maze"
	"github.com/oomph-ac/mazeball/replay"
	"github.com/oomph-ac/mazeball/simulation"
	"github.com/oomph-ac/mazeball/worker"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newRunner(t *testing.T, conf Config) (*Runner, *input.Mapper) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	conf.Log = log

	m := input.NewMapper(0)
	s, err := simulation.New(simulation.DefaultConfig(maze.Default()), m)
	require.NoError(t, err)
	return New(s, conf), m
}

func TestTickUsesClock(t *testing.T) {
	clock := &fakeClock{now: time.Unix(100, 0)}
	r, m := newRunner(t, Config{Clock: clock})
	m.Set(0, -1)

	first := r.Tick()
	assert.Zero(t, first.Dt)
	assert.Equal(t, uint64(1), first.Tick)

	clock.advance(10 * time.Millisecond)
	second := r.Tick()
	assert.InDelta(t, 0.01, second.Dt, 1e-9)
	assert.Equal(t, second, r.Last())

	// A stall longer than the maximum step is clamped.
	clock.advance(time.Second)
	assert.Equal(t, 0.033, r.Tick().Dt)
}

func TestOnTick(t *testing.T) {
	var ticks []uint64
	r, _ := newRunner(t, Config{Clock: &fakeClock{}, OnTick: func(rs simulation.RenderableState) {
		ticks = append(ticks, rs.Tick)
	}})
	for range 3 {
		r.Tick()
	}
	assert.Equal(t, []uint64{1, 2, 3}, ticks)
}

func TestRunStopsOnCancel(t *testing.T) {
	r, _ := newRunner(t, Config{TickRate: 200})
	assert.Equal(t, 5*time.Millisecond, r.Interval())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, r.Run(ctx))
	assert.Positive(t, r.Last().Tick)
}

func TestRestartKeepsClosedRecorder(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	pool := worker.New(log, 1)
	defer pool.Close()

	out := new(bytes.Buffer)
	rec, err := replay.NewRecorder(nopCloser{out}, maze.Default(), pool, log)
	require.NoError(t, err)

	r, _ := newRunner(t, Config{TickRate: 200, Recorder: rec})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, r.Run(ctx))
	written := out.Len()

	// Ticks after the first run stopped are not recorded, and the second stop is not an error.
	ctx, cancel = context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NotPanics(t, func() {
		assert.NoError(t, r.Run(ctx))
	})
	assert.Equal(t, written, out.Len())
}

func TestRunRecoversPanics(t *testing.T) {
	r, _ := newRunner(t, Config{TickRate: 200, OnTick: func(simulation.RenderableState) {
		panic("boom")
	}})
	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	// The runner can be started again after it stopped.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, r.Run(ctx))
}
