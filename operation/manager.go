// Package operation manages the lifetime of blocking actuator operations.
package operation

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// SingleOperationManager ensures only 1 operation is happening a time.
// An operation can be nested, so if there is already an operation in progress,
// it can have sub-operations without an issue.
type SingleOperationManager struct {
	// Clock is used for timed waits. Defaults to the wall clock.
	Clock clock.Clock

	mu        sync.Mutex
	currentOp *anOp
}

type somCtxKey byte

const somCtxKeySingleOp = somCtxKey(iota)

type anOp struct {
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func (sm *SingleOperationManager) clock() clock.Clock {
	if sm.Clock == nil {
		return clock.New()
	}
	return sm.Clock
}

// CancelRunning cancels the current operation unless it's mine.
func (sm *SingleOperationManager) CancelRunning(ctx context.Context) {
	if ctx.Value(somCtxKeySingleOp) != nil {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.cancelInLock(ctx)
}

// OpRunning returns if there is a current operation.
func (sm *SingleOperationManager) OpRunning() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.currentOp != nil
}

// New creates a new operation, cancels previous, returns a new context and function to call when done.
func (sm *SingleOperationManager) New(ctx context.Context) (context.Context, func()) {
	// handle nested ops
	if ctx.Value(somCtxKeySingleOp) != nil {
		return ctx, func() {}
	}

	sm.mu.Lock()
	sm.cancelInLock(ctx)

	theOp := &anOp{}
	ctx = context.WithValue(ctx, somCtxKeySingleOp, theOp)
	theOp.ctx, theOp.cancelFunc = context.WithCancel(ctx)
	sm.currentOp = theOp
	sm.mu.Unlock()

	return theOp.ctx, func() {
		theOp.cancelFunc()
		sm.mu.Lock()
		if theOp == sm.currentOp {
			sm.currentOp = nil
		}
		sm.mu.Unlock()
	}
}

// NewTimedWaitOp returns true if it finished, false if cancelled.
// If there are other operations pending, this will cancel them.
func (sm *SingleOperationManager) NewTimedWaitOp(ctx context.Context, dur time.Duration) bool {
	ctx, finish := sm.New(ctx)
	defer finish()

	return sm.wait(ctx, dur)
}

// WaitForSuccess will call testFunc every pollTime until it returns true or an error.
func (sm *SingleOperationManager) WaitForSuccess(
	ctx context.Context,
	pollTime time.Duration,
	testFunc func(ctx context.Context) (bool, error),
) error {
	ctx, finish := sm.New(ctx)
	defer finish()

	for {
		res, err := testFunc(ctx)
		if err != nil {
			return err
		}
		if res {
			return nil
		}

		if !sm.wait(ctx, pollTime) {
			return ctx.Err()
		}
	}
}

func (sm *SingleOperationManager) wait(ctx context.Context, dur time.Duration) bool {
	if dur <= 0 {
		return ctx.Err() == nil
	}
	timer := sm.clock().Timer(dur)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (sm *SingleOperationManager) cancelInLock(ctx context.Context) {
	myOp := ctx.Value(somCtxKeySingleOp)
	op := sm.currentOp

	if op == nil || myOp == op {
		return
	}

	op.cancelFunc()

	sm.currentOp = nil
}
