// Package jobs runs scan and inference work in the background so that HTTP
// clients can poll or stream progress instead of holding a request open.
package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/trishulai/trishul-api/internal/models"
)

var (
	// ErrQueueFull is returned by Submit when no queue slot is free
	ErrQueueFull = errors.New("job queue is full")

	// ErrJobNotFound is returned for unknown or expired job ids
	ErrJobNotFound = errors.New("job not found")

	// ErrRunnerClosed is returned by Submit after Shutdown
	ErrRunnerClosed = errors.New("job runner is shut down")
)

// Func is the unit of work executed by a job. The returned value becomes the
// job result.
type Func func(ctx context.Context) (interface{}, error)

// Options configures a Runner
type Options struct {
	Workers      int
	QueueSize    int
	Retries      int
	RetryBackoff time.Duration
	Retention    time.Duration
	Logger       *logrus.Logger
	Clock        func() time.Time
}

// DefaultOptions returns the runner defaults
func DefaultOptions() Options {
	return Options{
		Workers:      2,
		QueueSize:    64,
		Retries:      2,
		RetryBackoff: 500 * time.Millisecond,
		Retention:    time.Hour,
	}
}

// watchBuffer is the number of snapshots a slow watcher may fall behind by
// before older snapshots are dropped
const watchBuffer = 8

type watcher struct {
	ch   chan models.Job
	done chan struct{}
}

type entry struct {
	job      models.Job
	fn       Func
	watchers []*watcher
}

// Runner is a fixed-size worker pool over a bounded queue
type Runner struct {
	opts   Options
	logger *logrus.Logger

	mu     sync.RWMutex
	jobs   map[string]*entry
	closed bool

	queue  chan *entry
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner creates a runner and starts its workers
func NewRunner(opts Options) *Runner {
	defaults := DefaultOptions()
	if opts.Workers < 1 {
		opts.Workers = defaults.Workers
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = defaults.QueueSize
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		opts:   opts,
		logger: logger,
		jobs:   make(map[string]*entry),
		queue:  make(chan *entry, opts.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	r.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go r.worker()
	}
	return r
}

// Submit queues fn under the given kind and returns the queued job
func (r *Runner) Submit(kind string, fn Func) (models.Job, error) {
	if fn == nil {
		return models.Job{}, errors.New("job function is required")
	}

	e := &entry{
		job: models.Job{
			ID:          uuid.New().String(),
			Kind:        kind,
			Status:      models.JobQueued,
			SubmittedAt: r.opts.Clock(),
		},
		fn: fn,
	}

	// Enqueue under mu so Shutdown cannot drain the queue after the closed check
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return models.Job{}, ErrRunnerClosed
	}
	select {
	case r.queue <- e:
	default:
		r.mu.Unlock()
		return models.Job{}, ErrQueueFull
	}
	r.pruneLocked()
	r.jobs[e.job.ID] = e
	snapshot := e.job
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"job_id": snapshot.ID,
		"kind":   kind,
	}).Debug("Job queued")
	return snapshot, nil
}

// Get returns a snapshot of the job with the given id
func (r *Runner) Get(id string) (models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.jobs[id]
	if !ok {
		return models.Job{}, errors.Wrapf(ErrJobNotFound, "job %s", id)
	}
	return e.job, nil
}

// Watch returns a channel that receives the current snapshot of the job and
// then one snapshot per state change. The channel is closed once the job
// reaches a terminal state or ctx is done.
func (r *Runner) Watch(ctx context.Context, id string) (<-chan models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.jobs[id]
	if !ok {
		return nil, errors.Wrapf(ErrJobNotFound, "job %s", id)
	}

	w := &watcher{
		ch:   make(chan models.Job, watchBuffer),
		done: make(chan struct{}),
	}
	w.ch <- e.job
	if e.job.Status.Terminal() {
		close(w.ch)
		return w.ch, nil
	}
	e.watchers = append(e.watchers, w)

	go func() {
		select {
		case <-ctx.Done():
			r.unwatch(id, w)
		case <-w.done:
		}
	}()
	return w.ch, nil
}

// Len returns the number of tracked jobs
func (r *Runner) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

// Shutdown stops accepting jobs, cancels running work and waits for the
// workers to exit. Jobs still queued are marked failed.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	r.cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "waiting for job workers")
	}

	for {
		select {
		case e := <-r.queue:
			r.finish(e, nil, ErrRunnerClosed)
		default:
			return nil
		}
	}
}

func (r *Runner) worker() {
	defer r.wg.Done()
	for {
		select {
		case <-r.ctx.Done():
			return
		case e := <-r.queue:
			if r.ctx.Err() != nil {
				r.finish(e, nil, ErrRunnerClosed)
				return
			}
			r.run(e)
		}
	}
}

func (r *Runner) run(e *entry) {
	attempts := r.opts.Retries + 1
	backoff := r.opts.RetryBackoff
	log := r.logger.WithFields(logrus.Fields{
		"job_id": e.job.ID,
		"kind":   e.job.Kind,
	})

	var (
		result interface{}
		err    error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		r.update(e, func(j *models.Job) {
			j.Status = models.JobRunning
			j.Attempts = attempt
			if j.StartedAt == nil {
				now := r.opts.Clock()
				j.StartedAt = &now
			}
		})

		result, err = e.fn(r.ctx)
		if err == nil || r.ctx.Err() != nil {
			break
		}

		log.WithError(err).WithField("attempt", attempt).Warn("Job attempt failed")
		if attempt == attempts {
			break
		}
		if waitErr := sleep(r.ctx, backoff); waitErr != nil {
			err = waitErr
			break
		}
		backoff *= 2
	}

	r.finish(e, result, err)
	if err != nil {
		log.WithError(err).Error("Job failed")
		return
	}
	log.Info("Job succeeded")
}

func (r *Runner) finish(e *entry, result interface{}, err error) {
	r.update(e, func(j *models.Job) {
		now := r.opts.Clock()
		j.FinishedAt = &now
		if err != nil {
			j.Status = models.JobFailed
			j.Error = err.Error()
			return
		}
		j.Status = models.JobSucceeded
		j.Result = result
	})
}

// update applies fn to the job and publishes the new snapshot to watchers
func (r *Runner) update(e *entry, fn func(j *models.Job)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fn(&e.job)
	for _, w := range e.watchers {
		offer(w.ch, e.job)
	}
	if e.job.Status.Terminal() {
		for _, w := range e.watchers {
			close(w.ch)
			close(w.done)
		}
		e.watchers = nil
	}
}

func (r *Runner) unwatch(id string, w *watcher) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.jobs[id]
	if !ok {
		return
	}
	for i, candidate := range e.watchers {
		if candidate == w {
			e.watchers = append(e.watchers[:i], e.watchers[i+1:]...)
			close(w.ch)
			return
		}
	}
}

// pruneLocked drops terminal jobs older than the retention window
func (r *Runner) pruneLocked() {
	if r.opts.Retention <= 0 {
		return
	}
	cutoff := r.opts.Clock().Add(-r.opts.Retention)
	for id, e := range r.jobs {
		if e.job.FinishedAt != nil && e.job.FinishedAt.Before(cutoff) {
			delete(r.jobs, id)
		}
	}
}

// offer sends j without blocking, dropping the oldest buffered snapshot when
// the watcher is behind
func offer(ch chan models.Job, j models.Job) {
	for {
		select {
		case ch <- j:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
