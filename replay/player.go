package replay

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/oomph-ac/mazeball/input"
	"github.com/oomph-ac/mazeball/maze"
	"github.com/oomph-ac/mazeball/simulation"
)

var (
	ErrVersion     = errors.New("unsupported recording version")
	ErrFingerprint = errors.New("recorded maze does not match its fingerprint")
	ErrDiverged    = errors.New("replay diverged from the recording")
)

// Recording is a decoded recording file.
type Recording struct {
	Version     string
	RunID       uuid.UUID
	Fingerprint uint64
	Grid        *maze.Grid

	Frames []Frame
	// Final is nil if the recording was cut off before it was closed.
	Final *Final
}

// Open reads the recording at path.
func Open(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open recording: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a recording from r.
func Read(r io.Reader) (*Recording, error) {
	br := bufio.NewReader(r)
	line := func() (string, error) {
		s, err := br.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("error reading recording header: %w", err)
		}
		return strings.TrimSuffix(s, "\n"), nil
	}

	rec := &Recording{}
	var err error
	if rec.Version, err = line(); err != nil {
		return nil, err
	}
	if rec.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %q", ErrVersion, rec.Version)
	}

	id, err := line()
	if err != nil {
		return nil, err
	}
	if rec.RunID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid run id: %w", err)
	}

	fp, err := line()
	if err != nil {
		return nil, err
	}
	if rec.Fingerprint, err = strconv.ParseUint(fp, 16, 64); err != nil {
		return nil, fmt.Errorf("invalid fingerprint: %w", err)
	}

	dims, err := line()
	if err != nil {
		return nil, err
	}
	var (
		rows, cols             int
		cellSize, wallHeight float64
	)
	if _, err := fmt.Sscanf(dims, "%d %d %g %g", &rows, &cols, &cellSize, &wallHeight); err != nil {
		return nil, fmt.Errorf("invalid maze dimensions: %w", err)
	}

	var layout strings.Builder
	for range rows {
		row, err := line()
		if err != nil {
			return nil, err
		}
		layout.WriteString(row + "\n")
	}
	if rec.Grid, err = maze.FromString(layout.String(), cellSize, wallHeight); err != nil {
		return nil, fmt.Errorf("invalid recorded maze: %w", err)
	}
	if rec.Grid.Cols() != cols || rec.Grid.Fingerprint() != rec.Fingerprint {
		return nil, ErrFingerprint
	}

	rest, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("error reading recording: %w", err)
	}
	rec.Frames, rec.Final, err = decodeRecords(bytes.NewBuffer(rest))
	if err != nil {
		return rec, err
	}
	return rec, nil
}

// Play re-simulates the recording with conf, replacing its grid with the recorded one. If the
// recording was closed, the final state is verified against the recorded checksum.
func Play(rec *Recording, conf simulation.Config) (simulation.RenderableState, error) {
	conf.Grid = rec.Grid
	conf.Effects, conf.Sound, conf.Announcer = nil, nil, nil

	m := input.NewMapper(0)
	s, err := simulation.New(conf, m)
	if err != nil {
		return simulation.RenderableState{}, err
	}

	var r simulation.RenderableState
	for _, f := range rec.Frames {
		if f.Reset {
			s.Resume()
		}
		m.Set(f.Intent.X, f.Intent.Z)
		r = s.Step(f.Dt)
	}

	if rec.Final != nil {
		if r.Tick != rec.Final.Tick || Checksum(r) != rec.Final.Checksum {
			return r, fmt.Errorf("%w: ended at %v on tick %d, recorded %v on tick %d", ErrDiverged, r.Position, r.Tick, rec.Final.Position, rec.Final.Tick)
		}
	}
	return r, nil
}
