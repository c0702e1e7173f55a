// internal/engine/engine_test.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailburst/mailburst/internal/model"
)

// fakePipeline fails tasks whose To address is in failTo and panics on tasks
// in panicTo. It counts how many times each seq was processed.
type fakePipeline struct {
	mu      sync.Mutex
	seen    map[int]int
	failTo  map[string]bool
	panicTo map[string]bool
}

func newFakePipeline() *fakePipeline {
	return &fakePipeline{
		seen:    make(map[int]int),
		failTo:  make(map[string]bool),
		panicTo: make(map[string]bool),
	}
}

func (p *fakePipeline) Process(ctx context.Context, task model.Task) error {
	p.mu.Lock()
	p.seen[task.Seq]++
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if p.panicTo[task.To] {
		panic("boom: " + task.To)
	}
	if p.failTo[task.To] {
		return errors.New("relay rejected recipient")
	}
	return nil
}

func makeTasks(n int) []model.Task {
	tasks := make([]model.Task, n)
	for i := range tasks {
		tasks[i] = model.Task{
			Seq:  i + 1,
			Name: fmt.Sprintf("Recipient_%d", i+1),
			To:   fmt.Sprintf("r%d@example.com", i+1),
		}
	}
	return tasks
}

func TestRunOneOutcomePerTask(t *testing.T) {
	pipe := newFakePipeline()
	pipe.failTo["r3@example.com"] = true
	pipe.failTo["r7@example.com"] = true

	tasks := makeTasks(20)
	eng := New(pipe, Config{Workers: 5, Template: "1"}, zerolog.Nop())

	res := eng.Run(context.Background(), tasks)

	sent, failed := res.Sent(), res.Failed()
	require.Len(t, sent, 18)
	require.Len(t, failed, 2)

	// Every task processed exactly once, no drops, no duplicates.
	seqs := map[int]bool{}
	for _, o := range append(append([]model.Outcome{}, sent...), failed...) {
		assert.False(t, seqs[o.Seq], "seq %d recorded twice", o.Seq)
		seqs[o.Seq] = true
	}
	assert.Len(t, seqs, 20)

	pipe.mu.Lock()
	defer pipe.mu.Unlock()
	for seq, count := range pipe.seen {
		assert.Equal(t, 1, count, "seq %d processed %d times", seq, count)
	}
}

func TestRunFailureIsolation(t *testing.T) {
	pipe := newFakePipeline()
	pipe.failTo["r1@example.com"] = true

	eng := New(pipe, Config{Workers: 3, Template: "custom"}, zerolog.Nop())
	res := eng.Run(context.Background(), makeTasks(5))

	require.Len(t, res.Failed(), 1)
	assert.Len(t, res.Sent(), 4)

	f := res.Failed()[0]
	assert.Equal(t, model.StatusFailed, f.Status)
	assert.Equal(t, "r1@example.com", f.Email)
	assert.Equal(t, "relay rejected recipient", f.Reason)
	assert.Equal(t, "custom", f.Template)
}

func TestRunRecoversPanics(t *testing.T) {
	pipe := newFakePipeline()
	pipe.panicTo["r2@example.com"] = true

	eng := New(pipe, Config{Workers: 2, Template: "1"}, zerolog.Nop())
	res := eng.Run(context.Background(), makeTasks(4))

	require.Len(t, res.Failed(), 1)
	assert.Len(t, res.Sent(), 3)
	assert.True(t, strings.HasPrefix(res.Failed()[0].Reason, "panic:"),
		"reason = %q", res.Failed()[0].Reason)
}

func TestRunProgressMilestones(t *testing.T) {
	pipe := newFakePipeline()

	var mu sync.Mutex
	var calls [][2]int
	eng := New(pipe, Config{
		Workers:  1,
		Template: "1",
		OnProgress: func(completed, total int) {
			mu.Lock()
			calls = append(calls, [2]int{completed, total})
			mu.Unlock()
		},
	}, zerolog.Nop())

	eng.Run(context.Background(), makeTasks(25))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, [][2]int{{10, 25}, {20, 25}}, calls)
}

func TestRunCancelledContext(t *testing.T) {
	pipe := newFakePipeline()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := New(pipe, Config{Workers: 4, Template: "1"}, zerolog.Nop())
	res := eng.Run(ctx, makeTasks(12))

	// Every task still gets exactly one outcome, and none succeed: tasks
	// that never started fail with the context error, tasks that did start
	// see the cancelled context inside the pipeline.
	assert.Empty(t, res.Sent())
	require.Len(t, res.Failed(), 12)
	for _, o := range res.Failed() {
		assert.Equal(t, context.Canceled.Error(), o.Reason)
	}
}

func TestRunEmptyTaskList(t *testing.T) {
	eng := New(newFakePipeline(), Config{Workers: 3}, zerolog.Nop())
	res := eng.Run(context.Background(), nil)

	assert.Empty(t, res.Sent())
	assert.Empty(t, res.Failed())
}

func TestResultsAccessorsReturnCopies(t *testing.T) {
	pipe := newFakePipeline()
	eng := New(pipe, Config{Workers: 2, Template: "1"}, zerolog.Nop())
	res := eng.Run(context.Background(), makeTasks(3))

	first := res.Sent()
	require.Len(t, first, 3)
	first[0].Email = "clobbered@example.com"

	for _, o := range res.Sent() {
		assert.NotEqual(t, "clobbered@example.com", o.Email,
			"mutating a returned slice must not affect the collector")
	}
}

func TestRunZeroWorkersTreatedAsOne(t *testing.T) {
	pipe := newFakePipeline()
	eng := New(pipe, Config{Workers: 0, Template: "1"}, zerolog.Nop())
	res := eng.Run(context.Background(), makeTasks(3))

	assert.Len(t, res.Sent(), 3)
}
