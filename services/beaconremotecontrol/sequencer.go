package beaconremotecontrol

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"go.viam.com/beaconrc/logging"
)

// State is the state of a Sequencer's latch.
type State uint8

// Sequencer states. The latch is set in every state but StateIdle.
const (
	StateIdle State = iota
	StateRunning
	StateAwaitingRelease
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateAwaitingRelease:
		return "awaiting_release"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// A Sequence is a one-shot mechanical action. Run blocks until the sequence is done.
type Sequence interface {
	Run(ctx context.Context) error
}

// SequenceFunc adapts a function to a Sequence.
type SequenceFunc func(ctx context.Context) error

// Run calls f.
func (f SequenceFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// A Sequencer runs its action exactly once per press of the trigger, no matter how long the
// trigger is held. After the action finishes the trigger must be seen released before the
// action can run again.
type Sequencer struct {
	action Sequence
	// OnIdle, when set, is called on every tick the trigger is not held and nothing is
	// latched, e.g. to keep a weapon motor stopped.
	OnIdle func(ctx context.Context) error
	logger logging.Logger

	mu    sync.Mutex
	state State
	runs  int
}

// NewSequencer returns an idle sequencer for action.
func NewSequencer(action Sequence, logger logging.Logger) *Sequencer {
	return &Sequencer{action: action, logger: logger}
}

// State returns the current latch state.
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Latched reports whether the latch is set.
func (s *Sequencer) Latched() bool {
	return s.State() != StateIdle
}

// Runs returns how many times the action has been started.
func (s *Sequencer) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Sequencer) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// Tick advances the latch for one observation of d and reports whether the action ran.
// The action runs to completion inside Tick. If it fails the latch still waits for release
// and the error is returned.
func (s *Sequencer) Tick(ctx context.Context, d Directive) (bool, error) {
	switch s.State() {
	case StateAwaitingRelease:
		if d != Action {
			s.setState(StateIdle)
			s.logger.CDebugw(ctx, "action trigger released")
		}
		return false, nil
	case StateRunning:
		return false, errors.New("action sequence is already running")
	case StateIdle:
	}

	if d != Action {
		if s.OnIdle == nil {
			return false, nil
		}
		if err := s.OnIdle(ctx); err != nil {
			return false, errors.Wrap(err, "idle hook")
		}
		return false, nil
	}

	s.mu.Lock()
	s.state = StateRunning
	s.runs++
	s.mu.Unlock()

	activationID := uuid.NewString()
	s.logger.Infow("action sequence starting", "activation_id", activationID)
	start := time.Now()
	err := s.action.Run(ctx)
	s.setState(StateAwaitingRelease)
	if err != nil {
		s.logger.Errorw("action sequence failed", "activation_id", activationID, "error", err)
		return true, errors.Wrapf(err, "action sequence %s", activationID)
	}
	s.logger.Infow("action sequence finished", "activation_id", activationID, "took", time.Since(start))
	return true, nil
}
