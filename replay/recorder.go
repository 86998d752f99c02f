package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/oomph-ac/mazeball/internal"
	"github.com/oomph-ac/mazeball/maze"
	"github.com/oomph-ac/mazeball/simulation"
	"github.com/oomph-ac/mazeball/worker"
	"github.com/sirupsen/logrus"
)

// FormatVersion is written as the first line of every recording.
const FormatVersion = "1"

// DefaultBatchSize is the number of frames buffered before they are handed to the writer.
const DefaultBatchSize = 120

// ErrRecorderClosed is returned when closing a recorder twice.
var ErrRecorderClosed = errors.New("recorder is already closed")

// Recorder writes the frames of a session to a file. Frames are batched on the tick goroutine and
// written by a job running on a worker pool.
type Recorder struct {
	log *logrus.Logger
	id  uuid.UUID
	w   io.WriteCloser

	pending *Ring[Frame]
	chunks  chan []byte
	done    chan error

	mu     sync.Mutex
	closed bool
}

// Create creates or truncates the file at path and starts recording to it.
func Create(path string, grid *maze.Grid, pool *worker.Pool, log *logrus.Logger) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to open recording file: %w", err)
	}
	r, err := NewRecorder(f, grid, pool, log)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// NewRecorder writes the recording header for grid to w and starts the writer job on pool.
func NewRecorder(w io.WriteCloser, grid *maze.Grid, pool *worker.Pool, log *logrus.Logger) (*Recorder, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &Recorder{
		log:     log,
		id:      uuid.New(),
		w:       w,
		pending: NewRing[Frame](DefaultBatchSize),
		chunks:  make(chan []byte, 16),
		done:    make(chan error, 1),
	}

	// The header is plain text so recordings can be identified without decoding them.
	var header strings.Builder
	header.WriteString(FormatVersion + "\n")
	header.WriteString(r.id.String() + "\n")
	fmt.Fprintf(&header, "%016x\n", grid.Fingerprint())
	fmt.Fprintf(&header, "%d %d %v %v\n", grid.Rows(), grid.Cols(), grid.CellSize(), grid.WallHeight())
	header.WriteString(grid.String() + "\n")
	if _, err := io.WriteString(w, header.String()); err != nil {
		return nil, fmt.Errorf("unable to write recording header: %w", err)
	}

	if err := pool.Submit(r.write); err != nil {
		return nil, fmt.Errorf("unable to start recording writer: %w", err)
	}
	r.log.WithField("run", r.id).Info("recording started")
	return r, nil
}

// ID returns the run id written to the recording header.
func (r *Recorder) ID() uuid.UUID {
	return r.id
}

// Record adds the frame of a tick to the recording. Frames recorded after Close are dropped.
func (r *Recorder) Record(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.pending.Append(f)
	if r.pending.Full() {
		r.flush()
	}
}

// Close flushes every pending frame, appends the final record for last and waits for the writer
// to finish.
func (r *Recorder) Close(last simulation.RenderableState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRecorderClosed
	}
	r.closed = true

	r.flush()
	buf := internal.GetBuffer()
	FinalOf(last).Encode(buf)
	r.chunks <- bytes.Clone(buf.Bytes())
	internal.PutBuffer(buf)

	close(r.chunks)
	err := <-r.done
	if cerr := r.w.Close(); err == nil {
		err = cerr
	}
	r.log.WithFields(logrus.Fields{"run": r.id, "ticks": last.Tick}).Info("recording finished")
	return err
}

func (r *Recorder) flush() {
	if r.pending.Len() == 0 {
		return
	}
	buf := internal.GetBuffer()
	for _, f := range r.pending.Drain() {
		f.Encode(buf)
	}
	r.chunks <- bytes.Clone(buf.Bytes())
	internal.PutBuffer(buf)
}

func (r *Recorder) write() {
	var firstErr error
	defer func() { r.done <- firstErr }()
	for data := range r.chunks {
		if firstErr != nil {
			continue
		}
		if _, err := r.w.Write(data); err != nil {
			firstErr = fmt.Errorf("unable to write recording: %w", err)
			r.log.WithField("run", r.id).Error(firstErr)
		}
	}
}
