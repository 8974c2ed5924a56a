package beaconremotecontrol

import (
	"context"

	"github.com/pkg/errors"

	"go.viam.com/beaconrc/components/touch"
	"go.viam.com/beaconrc/logging"
)

// A Watcher is checked once per tick after the beacon has been handled. Watchers let a robot
// react to its other sensors from the same loop.
type Watcher interface {
	Check(ctx context.Context) error
}

// WatcherFunc adapts a function to a Watcher.
type WatcherFunc func(ctx context.Context) error

// Check calls f.
func (f WatcherFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// TouchTrigger runs an action once each time a touch sensor is pressed. It keeps its own latch,
// so holding the sensor down does not repeat the action.
type TouchTrigger struct {
	name   string
	sensor touch.Sensor
	seq    *Sequencer
}

// NewTouchTrigger returns a watcher running action on each press of sensor.
func NewTouchTrigger(name string, sensor touch.Sensor, action Sequence, logger logging.Logger) *TouchTrigger {
	return &TouchTrigger{
		name:   name,
		sensor: sensor,
		seq:    NewSequencer(action, logger.Sublogger(name)),
	}
}

// Check reads the sensor and advances the latch.
func (w *TouchTrigger) Check(ctx context.Context) error {
	pressed, err := w.sensor.Pressed(ctx)
	if err != nil {
		return errors.Wrapf(err, "reading touch sensor for %s", w.name)
	}
	d := Idle
	if pressed {
		d = Action
	}
	_, err = w.seq.Tick(ctx, d)
	return err
}

// Runs returns how many times the action has run.
func (w *TouchTrigger) Runs() int {
	return w.seq.Runs()
}
