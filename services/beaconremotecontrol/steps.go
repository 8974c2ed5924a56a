package beaconremotecontrol

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"go.viam.com/beaconrc/components/feedback"
	"go.viam.com/beaconrc/components/motor"
	"go.viam.com/beaconrc/logging"
	"go.viam.com/beaconrc/operation"
)

// Steps runs actions one after another, stopping at the first failure.
type Steps []Sequence

// Run runs every step in order.
func (steps Steps) Run(ctx context.Context) error {
	for i, step := range steps {
		if err := step.Run(ctx); err != nil {
			return errors.Wrapf(err, "step %d", i+1)
		}
	}
	return nil
}

// CueStep plays a feedback cue without waiting for it to finish.
type CueStep struct {
	Device feedback.Device
	Cue    feedback.Cue
}

// Run plays the cue.
func (s CueStep) Run(ctx context.Context) error {
	return errors.Wrapf(s.Device.PlayCue(ctx, s.Cue), "playing %s", s.Cue)
}

// AngleStep turns a motor by a fixed angle.
type AngleStep struct {
	Motor motor.Motor
	Speed float64
	Angle float64
	Then  motor.StopMode
}

// Run turns the motor and waits for it to arrive.
func (s AngleStep) Run(ctx context.Context) error {
	return s.Motor.RunAngle(ctx, s.Speed, s.Angle, s.Then)
}

// TimedStep runs a motor for a fixed time.
type TimedStep struct {
	Motor    motor.Motor
	Speed    float64
	Duration time.Duration
	Then     motor.StopMode
}

// Run runs the motor and waits for the time to pass.
func (s TimedStep) Run(ctx context.Context) error {
	return s.Motor.RunTime(ctx, s.Speed, s.Duration, s.Then)
}

// Default polling for UntilStep.
const (
	DefaultUntilPollInterval = 10 * time.Millisecond
	DefaultUntilTimeout      = 5 * time.Second
)

// UntilStep runs a motor until Done reports true or Timeout passes, then rests it with Then.
// Running out of time is not an error; the motor is stopped and a warning is logged.
type UntilStep struct {
	Motor        motor.Motor
	Speed        float64
	Done         func(ctx context.Context) (bool, error)
	Timeout      time.Duration
	PollInterval time.Duration
	Then         motor.StopMode
	Clock        clock.Clock
	Logger       logging.Logger
}

// Run runs the motor and polls Done.
func (s UntilStep) Run(ctx context.Context) error {
	clk := s.Clock
	if clk == nil {
		clk = clock.New()
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultUntilTimeout
	}
	poll := s.PollInterval
	if poll <= 0 {
		poll = DefaultUntilPollInterval
	}

	if err := s.Motor.Run(ctx, s.Speed); err != nil {
		return err
	}
	opMgr := operation.SingleOperationManager{Clock: clk}
	deadline := clk.Now().Add(timeout)
	timedOut := false
	err := opMgr.WaitForSuccess(ctx, poll, func(ctx context.Context) (bool, error) {
		done, err := s.Done(ctx)
		if err != nil || done {
			return done, err
		}
		if !clk.Now().Before(deadline) {
			timedOut = true
			return true, nil
		}
		return false, nil
	})
	haltErr := motor.Halt(ctx, s.Motor, s.Then)
	if err != nil {
		return err
	}
	if timedOut && s.Logger != nil {
		s.Logger.Warnw("gave up waiting for motor to finish", "timeout", timeout)
	}
	return haltErr
}

// Choice picks one of two actions when it runs.
type Choice struct {
	Cond func(ctx context.Context) (bool, error)
	Then Sequence
	Else Sequence
}

// Run runs Then if Cond holds and Else otherwise. A nil branch does nothing.
func (c Choice) Run(ctx context.Context) error {
	ok, err := c.Cond(ctx)
	if err != nil {
		return err
	}
	branch := c.Else
	if ok {
		branch = c.Then
	}
	if branch == nil {
		return nil
	}
	return branch.Run(ctx)
}
