// internal/engine/engine.go
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/mailburst/mailburst/internal/model"
)

// Pipeline executes the render -> build -> deliver sequence for one task.
// Implementations must treat the task as read-only.
type Pipeline interface {
	Process(ctx context.Context, task model.Task) error
}

// Progress is invoked after every tenth completed task with the monotonic
// completion count and the total. It may be called from any worker.
type Progress func(completed, total int)

// Config controls one engine run.
type Config struct {
	// Workers caps concurrent deliveries. Values below 1 are treated as 1.
	Workers int
	// Delay is slept by each worker after it finishes a task, before it
	// takes the next one. Pure relay courtesy, not a correctness knob.
	Delay time.Duration
	// Template is the identifier stamped on every outcome.
	Template string
	// OnProgress, when set, observes completion milestones.
	OnProgress Progress
}

const progressEvery = 10

// Engine fans a task list out across a bounded worker pool and collects
// exactly one Sent-or-Failed outcome per task. Failures are isolated: a bad
// address or a relay hiccup fails its own task and nothing else.
type Engine struct {
	pipe Pipeline
	cfg  Config
	log  zerolog.Logger
}

func New(pipe Pipeline, cfg Config, log zerolog.Logger) *Engine {
	return &Engine{
		pipe: pipe,
		cfg:  cfg,
		log:  log.With().Str("component", "engine").Logger(),
	}
}

// Run executes every task and returns once each one has produced its single
// outcome. Completion order is whatever the workers make it; only the
// per-task order (process happens-before record) is guaranteed. A cancelled
// context stops tasks that have not started yet, failing them with the
// context error, so the one-outcome-per-task invariant holds even then.
func (e *Engine) Run(ctx context.Context, tasks []model.Task) *Results {
	res := newResults()
	total := len(tasks)
	if total == 0 {
		return res
	}

	workers := e.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	var completed int64
	record := func(out model.Outcome) {
		res.append(out)
		done := atomic.AddInt64(&completed, 1)
		if done%progressEvery == 0 && e.cfg.OnProgress != nil {
			e.cfg.OnProgress(int(done), total)
		}
	}

	e.log.Info().Int("tasks", total).Int("workers", workers).Msg("dispatch started")

	taskCh := make(chan model.Task)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 1; i <= workers; i++ {
		go func(worker int) {
			defer wg.Done()
			for task := range taskCh {
				out := e.runTask(ctx, task)
				record(out)

				if out.Status == model.StatusSent {
					e.log.Debug().Int("worker", worker).Int("seq", task.Seq).
						Str("to", task.To).Msg("sent")
				} else {
					e.log.Warn().Int("worker", worker).Int("seq", task.Seq).
						Str("to", task.To).Str("reason", out.Reason).Msg("failed")
				}

				if e.cfg.Delay > 0 {
					time.Sleep(e.cfg.Delay)
				}
			}
		}(i)
	}

	for _, task := range tasks {
		select {
		case taskCh <- task:
		case <-ctx.Done():
			record(model.FailedOutcome(task, e.cfg.Template, ctx.Err().Error()))
		}
	}
	close(taskCh)
	wg.Wait()

	e.log.Info().Int("tasks", total).Msg("dispatch finished")
	return res
}

// runTask is the task boundary: whatever goes wrong inside the pipeline,
// including a panic, comes back as exactly one Failed outcome.
func (e *Engine) runTask(ctx context.Context, task model.Task) (out model.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = model.FailedOutcome(task, e.cfg.Template, fmt.Sprintf("panic: %v", r))
		}
	}()

	if err := e.pipe.Process(ctx, task); err != nil {
		return model.FailedOutcome(task, e.cfg.Template, err.Error())
	}
	return model.SentOutcome(task, e.cfg.Template)
}
