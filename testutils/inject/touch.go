package inject

import (
	"context"

	"go.viam.com/beaconrc/components/touch"
)

// TouchSensor is an injected touch sensor.
type TouchSensor struct {
	touch.Sensor
	PressedFunc func(ctx context.Context) (bool, error)
}

// Pressed calls the injected Pressed or the real version.
func (s *TouchSensor) Pressed(ctx context.Context) (bool, error) {
	if s.PressedFunc == nil {
		return s.Sensor.Pressed(ctx)
	}
	return s.PressedFunc(ctx)
}
