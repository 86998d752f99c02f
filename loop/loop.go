// Package loop drives a simulation State at a fixed tick rate.
package loop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/mazeball/replay"
	"github.com/oomph-ac/mazeball/simulation"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// DefaultTickRate is the number of ticks run per second when none is configured.
const DefaultTickRate = 60

// Clock supplies the timestamps ticks are stepped with.
type Clock interface {
	Now() time.Time
}

type monotonicClock struct{}

// Now returns time.Now, which carries a monotonic reading.
func (monotonicClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns the monotonic wall clock.
func SystemClock() Clock {
	return monotonicClock{}
}

// Config holds the settings of a Runner.
type Config struct {
	TickRate int
	Clock    Clock
	// Recorder, if set, receives every tick and is closed when the runner stops.
	Recorder *replay.Recorder
	// OnTick is called on the tick goroutine after every step.
	OnTick func(simulation.RenderableState)
	Log    *logrus.Logger
}

// Runner steps a State on a ticker and publishes the latest snapshot.
type Runner struct {
	conf  Config
	log   *logrus.Logger
	state *simulation.State

	last    *atomic.Pointer[simulation.RenderableState]
	running *atomic.Bool
}

var ErrRunning = errors.New("runner is already running")

// New returns a Runner for state. Zero values in conf are replaced by defaults.
func New(state *simulation.State, conf Config) *Runner {
	if conf.TickRate <= 0 {
		conf.TickRate = DefaultTickRate
	}
	if conf.Clock == nil {
		conf.Clock = SystemClock()
	}
	if conf.Log == nil {
		conf.Log = logrus.StandardLogger()
	}
	return &Runner{
		conf:    conf,
		log:     conf.Log,
		state:   state,
		last:    atomic.NewPointer(&simulation.RenderableState{}),
		running: atomic.NewBool(false),
	}
}

// Interval returns the time between two ticks.
func (r *Runner) Interval() time.Duration {
	return time.Second / time.Duration(r.conf.TickRate)
}

// Tick steps the state once using the configured clock. Hosts that own their frame loop call Tick
// directly instead of Run.
func (r *Runner) Tick() simulation.RenderableState {
	rs := r.state.StepAt(r.conf.Clock.Now())
	if r.conf.Recorder != nil {
		r.conf.Recorder.Record(replay.FrameOf(rs))
	}
	if r.conf.OnTick != nil {
		r.conf.OnTick(rs)
	}
	r.last.Store(&rs)
	return rs
}

// Last returns the snapshot of the most recent tick. It is safe to call from any goroutine.
func (r *Runner) Last() simulation.RenderableState {
	return *r.last.Load()
}

// Run ticks the state until ctx is cancelled. A panic during a tick is reported to sentry and
// returned as an error. The recorder, if any, is closed before Run returns.
func (r *Runner) Run(ctx context.Context) (err error) {
	if !r.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer r.running.Store(false)

	t := time.NewTicker(r.Interval())
	defer t.Stop()

	defer func() {
		if v := recover(); v != nil {
			hub := sentry.CurrentHub().Clone()
			hub.Recover(v)
			hub.Flush(time.Second * 5)
			err = fmt.Errorf("tick %d panicked: %v", r.state.Tick(), v)
		}
		if r.conf.Recorder != nil {
			// A restarted runner finds its recorder already closed by the previous run.
			if cerr := r.conf.Recorder.Close(r.Last()); cerr != nil && !errors.Is(cerr, replay.ErrRecorderClosed) && err == nil {
				err = cerr
			}
		}
		r.log.WithFields(logrus.Fields{"ticks": r.state.Tick(), "phase": r.state.Phase()}).Info("simulation stopped")
	}()

	r.log.WithField("rate", r.conf.TickRate).Info("simulation started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			r.Tick()
		}
	}
}
