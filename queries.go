package cfgprops

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Scheduler runs completion queries off the interactive path. Each submitted
// query is one self-contained unit of work; queries do not block one another
// and carry no ordering guarantee relative to one another. Staleness of the
// initiating caret is the consumer's concern, not the scheduler's.
type Scheduler struct {
	engine *Engine
	logger *zap.Logger
	sem    chan struct{}
	wg     sync.WaitGroup
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithConcurrency bounds the number of queries resolving at once.
func WithConcurrency(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.sem = make(chan struct{}, n)
		}
	}
}

// WithSchedulerLogger sets the scheduler logger.
func WithSchedulerLogger(logger *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler creates a scheduler over an engine. Default concurrency is 4.
func NewScheduler(engine *Engine, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		engine: engine,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.sem == nil {
		s.sem = make(chan struct{}, 4)
	}

	return s
}

// Submit schedules one completion query. The sink always receives its Done
// signal, even when the query panics; a panic is logged and contained.
func (s *Scheduler) Submit(ctx context.Context, doc DocumentAccessor, caretOffset int, sink ResultSink) {
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("completion query panicked", zap.Any("panic", r))
				sink.Done()
			}
		}()

		select {
		case s.sem <- struct{}{}:
		case <-ctx.Done():
			sink.Done()

			return
		}
		defer func() { <-s.sem }()

		s.engine.Resolve(ctx, doc, caretOffset, sink)
	}()
}

// Wait blocks until all submitted queries have finished.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
