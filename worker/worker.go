// Package worker runs background jobs, such as flushing replay recordings to disk, off the tick
// goroutine.
package worker

import (
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// ErrClosed is returned when submitting to a pool that has been closed.
var ErrClosed = errors.New("worker pool is closed")

// Pool is a fixed set of goroutines draining a shared job queue. A panicking job is reported to
// sentry and does not take its worker down.
type Pool struct {
	log   *logrus.Logger
	queue chan func()

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// New starts a pool with n workers, or one per CPU if n is zero or less.
func New(log *logrus.Logger, n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	p := &Pool{log: log, queue: make(chan func(), n)}
	p.wg.Add(n)
	for range n {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.wg.Done()
	for f := range p.queue {
		p.run(f)
	}
}

func (p *Pool) run(f func()) {
	defer func() {
		if v := recover(); v != nil {
			p.log.Errorf("worker job panicked: %v", v)
			hub := sentry.CurrentHub().Clone()
			hub.Recover(v)
			hub.Flush(5 * time.Second)
		}
	}()
	f()
}

// Submit queues f, blocking while the queue is full.
func (p *Pool) Submit(f func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	p.queue <- f
	return nil
}

// Close stops accepting jobs and waits for every queued job to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
}
