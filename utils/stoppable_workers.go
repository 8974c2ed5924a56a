package utils

import (
	"context"
	"sync"

	goutils "go.viam.com/utils"
)

// StoppableWorkers is a group of background goroutines sharing one context that is cancelled
// by Stop.
type StoppableWorkers interface {
	AddWorkers(...func(context.Context))
	Stop()
	Context() context.Context
}

// stoppableWorkersImpl holds a sync.WaitGroup and must not be copied, so it is only handed out
// behind the interface.
type stoppableWorkersImpl struct {
	mu         sync.Mutex
	cancelCtx  context.Context
	cancelFunc func()
	workers    sync.WaitGroup
}

// NewStoppableWorkers starts each function in its own goroutine.
func NewStoppableWorkers(funcs ...func(context.Context)) StoppableWorkers {
	cancelCtx, cancelFunc := context.WithCancel(context.Background())
	sw := &stoppableWorkersImpl{cancelCtx: cancelCtx, cancelFunc: cancelFunc}
	sw.AddWorkers(funcs...)
	return sw
}

// AddWorkers starts more goroutines. After Stop it does nothing.
func (sw *stoppableWorkersImpl) AddWorkers(funcs ...func(context.Context)) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.cancelCtx.Err() != nil {
		return
	}

	sw.workers.Add(len(funcs))
	for _, f := range funcs {
		f := f
		goutils.PanicCapturingGo(func() {
			defer sw.workers.Done()
			f(sw.cancelCtx)
		})
	}
}

// Stop cancels the shared context and waits for every goroutine to return.
func (sw *stoppableWorkersImpl) Stop() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.cancelFunc()
	sw.workers.Wait()
}

// Context returns the context the workers watch.
func (sw *stoppableWorkersImpl) Context() context.Context {
	return sw.cancelCtx
}
