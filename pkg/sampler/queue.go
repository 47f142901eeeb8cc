package sampler

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// workQueue is the dedicated worker context for blocking snapshot reads.
// Bridge notifications arrive on a thread that must not be blocked, so the
// notification handler only submits a job here and returns; the reads run on
// the queue's own goroutine.
type workQueue struct {
	mu     sync.Mutex
	jobs   chan func()
	closed bool
}

func newWorkQueue(depth int) *workQueue {
	q := &workQueue{jobs: make(chan func(), depth)}
	go q.run()
	return q
}

func (q *workQueue) run() {
	for job := range q.jobs {
		job()
	}
}

// submit enqueues job without blocking. It reports false when the queue is
// closed or full; a full queue means a fetch is already pending, so the
// notification it would have served is coalesced into that one.
func (q *workQueue) submit(job func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	select {
	case q.jobs <- job:
		return true
	default:
		logrus.Trace("snapshot fetch queue full, coalescing notification")
		return false
	}
}

// close stops the worker after draining already-submitted jobs. Further
// submits are rejected.
func (q *workQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
}
