package motor

import "github.com/pkg/errors"

// NewZeroSpeedError returns an error representing a request to move a motor at
// zero speed (i.e., moving the motor without moving the motor).
func NewZeroSpeedError() error {
	return errors.New("cannot move motor at a speed that is nearly 0")
}

// NewZeroAngleError returns an error representing a request to turn a motor by 0 degrees.
func NewZeroAngleError() error {
	return errors.New("cannot move motor by 0 degrees")
}

// NewNegativeDurationError returns an error when a timed run is given a negative duration.
func NewNegativeDurationError() error {
	return errors.New("cannot run motor for a negative duration")
}

// NewUnknownStopModeError returns an error for a stop mode that is not coast, brake or hold.
func NewUnknownStopModeError(name string) error {
	return errors.Errorf("unknown motor stop mode %q", name)
}
