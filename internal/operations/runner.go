package operations

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mgit-app/mgit/internal/git"
	"go.uber.org/zap"
)

// Operation is the direct form of a job body used by StartOperation.
type Operation func(ctx context.Context, progress git.ProgressFunc) (string, error)

type state int

const (
	stateIdle state = iota
	stateReady
	stateRunning
	stateFinishing
)

func (s state) busy() bool {
	return s == stateRunning || s == stateFinishing
}

type inflight struct {
	job       Job
	run       Operation
	cancel    context.CancelFunc
	startedAt time.Time
}

// Runner executes one job at a time in the background and reports its lifecycle to listeners.
//
// For every started job listeners observe Started, then zero or more Progress, then exactly one
// Result. The runner returns to idle only after the Result has been delivered, so the Started of
// the next job can never be observed before the Result of the previous one. A job's continuation
// runs before the runner turns idle, so no other job can start while it reacts to the Result.
type Runner struct {
	config   Config
	executor Executor
	metrics  *Metrics
	logger   *zap.Logger

	mu            sync.Mutex
	state         state
	pending       *Job
	current       *inflight
	continuations map[uuid.UUID]Continuation
	listeners     []Listener
	stopped       bool
	idle          chan struct{}

	queue   chan any
	workers sync.WaitGroup
	done    chan struct{}
}

func NewRunner(config Config, executor Executor, metrics *Metrics, logger *zap.Logger) *Runner {
	if config.EventBuffer < 2 {
		config.EventBuffer = DefaultConfig().EventBuffer
	}

	r := &Runner{
		config:   config,
		executor: executor,
		metrics:  metrics,
		logger:   logger,

		state:         stateIdle,
		continuations: make(map[uuid.UUID]Continuation),
		idle:          make(chan struct{}),

		queue: make(chan any, config.EventBuffer),
		done:  make(chan struct{}),
	}

	close(r.idle)
	go r.dispatch()

	return r
}

// Subscribe registers a listener for all subsequent events.
func (r *Runner) Subscribe(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listeners = append(r.listeners, l)
}

// Busy reports whether a job is running or its continuation has not returned yet.
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state.busy()
}

// WaitIdle blocks until no job is running or finishing. Another caller may start a job right
// after it returns.
func (r *Runner) WaitIdle(ctx context.Context) error {
	r.mu.Lock()
	idle := r.idle
	r.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to wait for idle runner: %w", ctx.Err())
	}
}

// Setup validates job and stores it for the next Start, replacing any pending job.
func (r *Runner) Setup(job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.setupLocked(job, nil)
}

// Start runs the pending job in the background.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return ErrStopped
	}
	if r.state.busy() {
		return ErrBusy
	}
	if r.pending == nil {
		return ErrNoJob
	}

	job := *r.pending
	r.pending = nil
	r.startLocked(ctx, job, nil)

	return nil
}

// Submit sets up and starts job in one step. then, if not nil, runs once after the job's Result
// has been delivered to listeners, whether the job succeeded or not.
func (r *Runner) Submit(ctx context.Context, job Job, then Continuation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.setupLocked(job, then); err != nil {
		return err
	}

	job = *r.pending
	r.pending = nil
	r.startLocked(ctx, job, nil)

	return nil
}

// StartOperation runs fn as a job of the given kind without parameter validation. It is meant for
// simple single-call operations against repoPath.
func (r *Runner) StartOperation(ctx context.Context, kind Kind, repoPath string, fn Operation) (uuid.UUID, error) {
	if fn == nil {
		return uuid.Nil, fmt.Errorf("%w: nil operation", ErrInvalidJob)
	}
	if !kind.IsValid() {
		return uuid.Nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidJob, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return uuid.Nil, ErrStopped
	}
	if r.state.busy() {
		return uuid.Nil, ErrBusy
	}

	job := newJob(kind, Params{Path: repoPath})
	r.startLocked(ctx, job, fn)

	return job.ID, nil
}

// Cancel cancels the running job, if any. The job still finishes with a Result.
func (r *Runner) Cancel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return false
	}

	r.logger.Info("cancelling operation",
		zap.Stringer("job_id", r.current.job.ID),
		zap.Stringer("kind", r.current.job.Kind))
	r.current.cancel()

	return true
}

// Stop rejects new jobs, cancels the running one and waits until its Result has been delivered.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return r.wait(ctx)
	}
	r.stopped = true
	r.pending = nil
	if r.current != nil {
		r.current.cancel()
	}
	r.mu.Unlock()

	go func() {
		r.workers.Wait()
		close(r.queue)
	}()

	return r.wait(ctx)
}

func (r *Runner) wait(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to drain operation events: %w", ctx.Err())
	}
}

func (r *Runner) setupLocked(job Job, then Continuation) error {
	if r.stopped {
		return ErrStopped
	}
	if r.state.busy() {
		return ErrBusy
	}
	if err := job.Validate(); err != nil {
		return err
	}

	if r.pending != nil {
		delete(r.continuations, r.pending.ID)
	}
	if then != nil {
		r.continuations[job.ID] = then
	}

	r.pending = &job
	r.state = stateReady

	return nil
}

// startLocked moves the runner to running and launches the job. Started is queued before the
// goroutine exists so it always precedes the job's own events.
func (r *Runner) startLocked(ctx context.Context, job Job, fn Operation) {
	runCtx, cancel := context.WithCancel(ctx)
	if job.Kind.IsNetwork() && r.config.NetworkTimeout > 0 {
		var cancelTimeout context.CancelFunc
		runCtx, cancelTimeout = context.WithTimeout(runCtx, r.config.NetworkTimeout)
		parentCancel := cancel
		cancel = func() {
			cancelTimeout()
			parentCancel()
		}
	}

	r.idle = make(chan struct{})
	r.state = stateRunning
	r.current = &inflight{
		job:       job,
		run:       fn,
		cancel:    cancel,
		startedAt: time.Now(),
	}

	r.logger.Info("starting operation",
		zap.Stringer("job_id", job.ID),
		zap.Stringer("kind", job.Kind),
		zap.String("path", job.RepoPath()))

	r.metrics.started()
	r.queue <- Started{JobID: job.ID, Kind: job.Kind, RepoPath: job.RepoPath()}

	r.workers.Add(1)
	go r.execute(runCtx, *r.current)
}

func (r *Runner) execute(ctx context.Context, f inflight) {
	defer r.workers.Done()
	defer f.cancel()

	progress := func(percent int, message string) {
		r.publishProgress(Progress{JobID: f.job.ID, Kind: f.job.Kind, Percent: percent, Message: message})
	}

	message, err := r.run(ctx, f, progress)
	elapsed := time.Since(f.startedAt)

	result := Result{
		JobID:     f.job.ID,
		Kind:      f.job.Kind,
		RepoPath:  f.job.RepoPath(),
		Success:   err == nil,
		Message:   message,
		StartedAt: f.startedAt,
		Duration:  elapsed,
	}

	outcome := resultSuccess
	if err != nil {
		result.Err = err
		result.Message = git.RedactSecrets(err.Error())
		result.Cancelled = errors.Is(err, context.Canceled) || errors.Is(err, git.ErrOperationCancelled)
		outcome = resultFailure
		if result.Cancelled {
			outcome = resultCancelled
		}

		r.logger.Warn("operation failed",
			zap.Stringer("job_id", f.job.ID),
			zap.Stringer("kind", f.job.Kind),
			zap.Duration("duration", elapsed),
			zap.String("error", result.Message))
	} else {
		r.logger.Info("operation finished",
			zap.Stringer("job_id", f.job.ID),
			zap.Stringer("kind", f.job.Kind),
			zap.Duration("duration", elapsed))
	}

	r.metrics.finished(f.job.Kind, outcome, elapsed)

	// a slot is always left free for the result, see publishProgress
	r.queue <- result
}

// run executes the job and converts panics into errors.
func (r *Runner) run(ctx context.Context, f inflight, progress git.ProgressFunc) (message string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("operation panicked",
				zap.Stringer("job_id", f.job.ID),
				zap.Any("panic", rec),
				zap.StackSkip("stack", 2))
			message = ""
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()

	if f.run != nil {
		return f.run(ctx, progress)
	}
	return r.executor.Execute(ctx, f.job, progress)
}

// publishProgress drops the event when the queue is close to full. The last slot is reserved for
// the job's Result.
func (r *Runner) publishProgress(e Progress) {
	if len(r.queue) >= cap(r.queue)-1 {
		return
	}

	select {
	case r.queue <- e:
	default:
	}
}

func (r *Runner) dispatch() {
	defer close(r.done)

	for ev := range r.queue {
		r.mu.Lock()
		listeners := append([]Listener(nil), r.listeners...)
		r.mu.Unlock()

		switch e := ev.(type) {
		case Started:
			for _, l := range listeners {
				r.deliver(func() { l.OnStarted(e) })
			}
		case Progress:
			for _, l := range listeners {
				r.deliver(func() { l.OnProgress(e) })
			}
		case Result:
			for _, l := range listeners {
				r.deliver(func() { l.OnFinished(e) })
			}

			r.mu.Lock()
			r.state = stateFinishing
			r.current = nil
			then := r.continuations[e.JobID]
			delete(r.continuations, e.JobID)
			r.mu.Unlock()

			if then != nil {
				r.deliver(func() { then(e) })
			}

			r.mu.Lock()
			r.state = stateIdle
			close(r.idle)
			r.mu.Unlock()
		}
	}
}

// deliver shields the dispatcher from panicking listeners.
func (r *Runner) deliver(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("event listener panicked", zap.Any("panic", rec))
		}
	}()
	fn()
}
