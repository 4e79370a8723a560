package domain

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	m "github.com/mouse-blink/coverprobe/internal/model"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

// TraceController is the part of the tracer the executor drives.
type TraceController interface {
	SetCurrentThreadIdentifier(thread vm.ThreadID)
	Disarm()
	ClearTrace()
	TakeTrace() m.ExecutionTrace
}

// Executor runs instrumented functions with the tracer armed for exactly the
// thread executing them.
type Executor interface {
	Execute(ctx context.Context, fn vm.Value, args ...vm.Value) (m.ExecutionResult, error)
}

type executor struct {
	tracer  TraceController
	interp  *vm.Interpreter
	timeout time.Duration
	sem     *semaphore.Weighted
	threads atomic.Uint64
	log     zerolog.Logger
}

// NewExecutor creates an executor. Runs against one tracer never overlap.
func NewExecutor(tracer TraceController, interp *vm.Interpreter, timeout time.Duration, log zerolog.Logger) Executor {
	return &executor{
		tracer:  tracer,
		interp:  interp,
		timeout: timeout,
		sem:     semaphore.NewWeighted(1),
		log:     log,
	}
}

// Execute calls fn with args on a fresh thread. Exceptions raised by fn and
// timeouts are part of the result; only machine faults and cancellation of
// ctx are returned as errors.
func (e *executor) Execute(ctx context.Context, fn vm.Value, args ...vm.Value) (m.ExecutionResult, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return m.ExecutionResult{}, fmt.Errorf("failed to acquire executor: %w", err)
	}
	defer e.sem.Release(1)

	thread := vm.ThreadID(e.threads.Add(1))

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	e.tracer.ClearTrace()
	e.tracer.SetCurrentThreadIdentifier(thread)

	var (
		result m.ExecutionResult
		done   = make(chan struct{})
	)

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer close(done)

		value, err := e.interp.Call(gctx, thread, fn, args...)
		if err == nil {
			result.Value = value

			return nil
		}

		var exc *vm.Exception
		if errors.As(err, &exc) {
			result.Exception = exc

			return nil
		}

		return err
	})

	select {
	case <-done:
	case <-runCtx.Done():
		// late probes of the abandoned run must not reach the trace
		e.tracer.Disarm()
	}

	err := g.Wait()
	e.tracer.Disarm()

	result.Trace = e.tracer.TakeTrace()

	switch {
	case err == nil:
	case ctx.Err() != nil:
		return m.ExecutionResult{}, fmt.Errorf("execution cancelled: %w", ctx.Err())
	case errors.Is(err, context.DeadlineExceeded):
		result.TimedOut = true
	default:
		return m.ExecutionResult{}, fmt.Errorf("execution of thread %d failed: %w", thread, err)
	}

	e.log.Debug().Uint64("thread", uint64(thread)).Bool("timed_out", result.TimedOut).
		Bool("raised", result.Exception != nil).Msg("execution finished")

	return result, nil
}
