package window

import (
	"log/slog"
	"runtime"
	"sync"
)

// Dispatcher runs window mutations on the thread that is allowed to perform
// them. Dispatch must not block; it reports false when the job was dropped.
type Dispatcher interface {
	Dispatch(job func()) bool
}

// Inline runs jobs on the caller's goroutine, so any lock the caller holds
// is held across the window call. Only for windows whose calls return
// immediately, such as test doubles; real windows go through a Queue.
type Inline struct{}

// Dispatch runs job immediately.
func (Inline) Dispatch(job func()) bool {
	job()
	return true
}

// Queue is a FIFO of window mutations drained by a single goroutine pinned to
// one OS thread. Jobs run in the order they were accepted.
type Queue struct {
	jobs     chan func()
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewQueue starts a queue that holds up to size pending jobs.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 64
	}
	q := &Queue{
		jobs: make(chan func(), size),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(q.done)

	for {
		select {
		case job := <-q.jobs:
			job()
		case <-q.stop:
			return
		}
	}
}

// Dispatch enqueues job without blocking.
func (q *Queue) Dispatch(job func()) bool {
	select {
	case <-q.stop:
		return false
	default:
	}

	select {
	case q.jobs <- job:
		return true
	default:
		slog.Debug("window queue full, dropping job")
		return false
	}
}

// Flush blocks until every job accepted before the call has run.
func (q *Queue) Flush() bool {
	marker := make(chan struct{})
	if !q.Dispatch(func() { close(marker) }) {
		return false
	}
	select {
	case <-marker:
		return true
	case <-q.done:
		return false
	}
}

// Close stops the worker. Pending jobs are discarded.
func (q *Queue) Close() {
	q.stopOnce.Do(func() { close(q.stop) })
	<-q.done
}
