package pipeline

import (
	"context"
	"sync"

	"github.com/sad-cli/sad/pkg/model"
)

// Abort is the shared cancellation/aggregated-failure object from
// SPEC_FULL.md §5: any stage can Send a Failure; everyone else selects
// on Done. It replaces broadcast-channel cancellation with one mutex
// and one context.CancelFunc — the single semantic is "we failed,
// stop".
type Abort struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	logs []model.Failure
}

// NewAbort derives a cancellable context from parent.
func NewAbort(parent context.Context) *Abort {
	ctx, cancel := context.WithCancel(parent)
	return &Abort{ctx: ctx, cancel: cancel}
}

// Send records f (unless it is model.Eof, an internal sentinel that
// never surfaces) and cancels the shared context.
func (a *Abort) Send(f model.Failure) {
	if _, ok := f.(model.Eof); ok {
		return
	}
	a.mu.Lock()
	a.logs = append(a.logs, f)
	a.mu.Unlock()
	a.cancel()
}

// Done reports cancellation the way ctx.Done() does, so suspension
// points can select on it directly.
func (a *Abort) Done() <-chan struct{} {
	return a.ctx.Done()
}

// Context returns the cancellable context workers should run under.
func (a *Abort) Context() context.Context {
	return a.ctx
}

// Failures returns a snapshot of everything recorded so far.
func (a *Abort) Failures() []model.Failure {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.Failure, len(a.logs))
	copy(out, a.logs)
	return out
}

// ExitCode implements SPEC_FULL.md §7's final exit rule: 130 if the
// log holds only Interrupt, 1 if non-empty otherwise, 0 if empty.
func (a *Abort) ExitCode() int {
	failures := a.Failures()
	if len(failures) == 0 {
		return 0
	}
	onlyInterrupt := true
	for _, f := range failures {
		if _, ok := f.(model.Interrupt); !ok {
			onlyInterrupt = false
			break
		}
	}
	if onlyInterrupt {
		return 130
	}
	return 1
}
