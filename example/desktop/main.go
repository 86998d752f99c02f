// Command desktop plays the maze in a window. Settings are read from settings.toml, or the path in
// MAZEBALL_SETTINGS, which is created with the defaults if missing.
package main

import (
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/oomph-ac/mazeball/settings"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("unable to load .env: %v", err)
	}
	path := os.Getenv("MAZEBALL_SETTINGS")
	if path == "" {
		path = "settings.toml"
	}
	s, err := settings.LoadOrCreate(path)
	if err != nil {
		log.Fatalf("unable to load settings: %v", err)
	}
	if lvl, err := s.LogLevel(); err != nil {
		log.Warnf("invalid log level %q, using info", s.Host.LogLevel)
	} else {
		log.SetLevel(lvl)
	}

	if s.Host.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: s.Host.SentryDSN}); err != nil {
			log.Errorf("unable to initialize sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}
	if s.Host.StatsAddr != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(s.Host.StatsAddr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	g, err := newGame(s, log)
	if err != nil {
		log.Fatalf("unable to start game: %v", err)
	}
	defer g.close()

	ebiten.SetWindowSize(960, 720)
	ebiten.SetWindowTitle("Maze Ball")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(s.Host.TickRate)
	if err := ebiten.RunGame(g); err != nil {
		log.Errorf("game stopped: %v", err)
	}
}
