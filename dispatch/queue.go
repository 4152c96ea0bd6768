package dispatch

import (
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// A Queue is a single-threaded [Dispatcher].
//
// When a function is posted, it is added into an internal FIFO queue.
// The Run method then pops and runs each of them until the queue is
// emptied. It is done in a single-threaded manner.
// If one function blocks, no other functions can run.
// The best practice is not to block.
//
// Manually calling the Run method is usually not desired.
// One would instead use the Autorun method to set up an autorun function to
// calling the Run method automatically whenever a function is posted.
// The Queue never calls the autorun function twice at the same time.
//
// A panic in a posted function is recovered and logged; it does not stop
// the queue.
type Queue struct {
	mu         sync.Mutex
	head, tail []func()
	running    bool
	autorun    func()
	logger     *slog.Logger
	runner     atomic.Int64 // id of the goroutine running a posted function, 0 when idle
}

// Autorun sets up an autorun function to calling the Run method
// automatically whenever a function is posted.
//
// One must pass a function that calls the Run method.
//
// If f blocks, the Post method may block too.
// The best practice is not to block.
func (q *Queue) Autorun(f func()) {
	q.autorun = f
}

// SetLogger sets the logger used to report recovered panics.
// By default recovered panics are reported through [slog.Default].
func (q *Queue) SetLogger(l *slog.Logger) {
	q.logger = l
}

// Post adds f in the queue. To run it, either call the Run method, or call
// the Autorun method to set up an autorun function beforehand.
//
// Post is safe for concurrent use.
func (q *Queue) Post(f func()) {
	var autorun func()

	q.mu.Lock()

	if !q.running && q.autorun != nil {
		q.running = true
		autorun = q.autorun
	}

	q.tail = append(q.tail, f)
	q.mu.Unlock()

	if autorun != nil {
		autorun()
	}
}

// Run pops and runs every function in the queue until the queue is emptied.
//
// Run must not be called twice at the same time.
func (q *Queue) Run() {
	q.mu.Lock()
	q.running = true

	for {
		f, ok := q.pop()
		if !ok {
			break
		}
		q.mu.Unlock()
		q.call(f)
		q.mu.Lock()
	}

	q.running = false
	q.mu.Unlock()
}

func (q *Queue) pop() (func(), bool) {
	if len(q.head) == 0 {
		if len(q.tail) == 0 {
			return nil, false
		}
		q.head, q.tail = q.tail, q.head[:0]
	}
	f := q.head[0]
	q.head[0] = nil
	q.head = q.head[1:]
	return f, true
}

func (q *Queue) call(f func()) {
	q.runner.Store(goid())
	defer func() {
		q.runner.Store(0)
		if v := recover(); v != nil {
			l := q.logger
			if l == nil {
				l = slog.Default()
			}
			l.Error("dispatch: queued function panicked", "panic", v)
		}
	}()
	f()
}

// Dispatching reports whether the calling goroutine is currently running a
// function posted to q.
//
// While q is busy on another goroutine, Dispatching is false: a caller that
// is not inside one of q's functions is never on q's context, no matter
// what q is doing elsewhere.
func (q *Queue) Dispatching() bool {
	id := q.runner.Load()
	return id != 0 && id == goid()
}

// goid returns the id of the calling goroutine, read from the header line
// of its stack trace.
func goid() int64 {
	var buf [64]byte
	s := string(buf[:runtime.Stack(buf[:], false)])
	s = strings.TrimPrefix(s, "goroutine ")
	if i := strings.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}
