package inject

import (
	"context"

	"go.viam.com/beaconrc/components/beacon"
)

// Sensor is an injected beacon sensor.
type Sensor struct {
	beacon.Sensor
	ButtonsFunc func(ctx context.Context, channel int) (beacon.ButtonSet, error)
}

// Buttons calls the injected Buttons or the real version.
func (s *Sensor) Buttons(ctx context.Context, channel int) (beacon.ButtonSet, error) {
	if s.ButtonsFunc == nil {
		return s.Sensor.Buttons(ctx, channel)
	}
	return s.ButtonsFunc(ctx, channel)
}
