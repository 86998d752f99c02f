// Command headless runs the maze without a window, steering the avatar with a random walk. It is
// used to soak test the simulation and to produce replay recordings.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/joho/godotenv"
	"github.com/oomph-ac/mazeball/game"
	"github.com/oomph-ac/mazeball/input"
	"github.com/oomph-ac/mazeball/loop"
	"github.com/oomph-ac/mazeball/replay"
	"github.com/oomph-ac/mazeball/settings"
	"github.com/oomph-ac/mazeball/simulation"
	"github.com/oomph-ac/mazeball/worker"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	settingsPath = flag.String("settings", "settings.toml", "path to the settings file")
	duration     = flag.Duration("duration", 0, "stop after this long, or run until interrupted if zero")
	verify       = flag.String("verify", "", "re-simulate the recording at this path and exit")
)

func main() {
	flag.Parse()
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	_ = godotenv.Load()

	s, err := settings.LoadOrCreate(*settingsPath)
	if err != nil {
		log.Fatalf("unable to load settings: %v", err)
	}
	if lvl, err := s.LogLevel(); err == nil {
		log.SetLevel(lvl)
	}

	if *verify != "" {
		if err := verifyRecording(*verify, s, log); err != nil {
			log.Fatal(err)
		}
		return
	}

	if s.Host.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: s.Host.SentryDSN}); err != nil {
			log.Errorf("unable to initialize sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}
	if err := run(s, log); err != nil {
		log.Fatal(err)
	}
}

func run(s settings.Settings, log *logrus.Logger) error {
	grid, err := s.Grid()
	if err != nil {
		return fmt.Errorf("unable to load maze: %w", err)
	}
	conf, err := s.SimulationConfig(grid)
	if err != nil {
		return err
	}
	conf.Log = log
	conf.Announcer = simulation.AnnouncerFunc(func(onResume func()) {
		time.AfterFunc(time.Second, onResume)
	})

	m := input.NewMapper(s.Input.DragRadius)
	state, err := simulation.New(conf, m)
	if err != nil {
		return err
	}

	pool := worker.New(log, 1)
	defer pool.Close()

	var rec *replay.Recorder
	if s.Host.RecordingPath != "" {
		if rec, err = replay.Create(s.Host.RecordingPath, grid, pool, log); err != nil {
			return err
		}
	}
	runner := loop.New(state, loop.Config{TickRate: s.Host.TickRate, Recorder: rec, Log: log})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return runner.Run(ctx)
	})
	eg.Go(func() error {
		drive(ctx, m, grid.Fingerprint())
		return nil
	})
	if s.Host.StatsAddr != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(s.Host.StatsAddr))
		mgr := statsview.New()
		eg.Go(func() error {
			go mgr.Start()
			<-ctx.Done()
			mgr.Stop()
			return nil
		})
	}
	eg.Go(func() error {
		t := time.NewTicker(5 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				r := runner.Last()
				log.WithFields(logrus.Fields{"tick": r.Tick, "phase": r.Phase, "pos": game.RoundVec64(r.Position, 3)}).Info("status")
			}
		}
	})
	return eg.Wait()
}

// drive holds a random direction for a random duration, like a player feeling their way around.
func drive(ctx context.Context, m *input.Mapper, seed uint64) {
	rnd := rand.New(rand.NewPCG(seed, uint64(time.Now().UnixNano())))
	directions := [...]input.Direction{input.DirectionUp, input.DirectionDown, input.DirectionLeft, input.DirectionRight}
	keys := m.Keys()
	for {
		d := directions[rnd.IntN(len(directions))]
		var key string
		for _, k := range keys {
			if b, _ := m.Binding(k); b == d {
				key = k
				break
			}
		}
		m.KeyDown(key)
		select {
		case <-ctx.Done():
			m.Clear()
			return
		case <-time.After(time.Duration(200+rnd.IntN(800)) * time.Millisecond):
		}
		m.KeyUp(key)
	}
}

func verifyRecording(path string, s settings.Settings, log *logrus.Logger) error {
	rec, err := replay.Open(path)
	if err != nil {
		return err
	}
	conf, err := s.SimulationConfig(rec.Grid)
	if err != nil {
		return err
	}
	r, err := replay.Play(rec, conf)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"run":    rec.RunID,
		"frames": len(rec.Frames),
		"pos":    r.Position,
		"closed": rec.Final != nil,
	}).Info("recording verified")
	return nil
}
