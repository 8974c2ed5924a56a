// Package touch defines the simple sensors the robot variants react to besides the beacon.
package touch

import "context"

// A Sensor is a touch sensor.
type Sensor interface {
	Pressed(ctx context.Context) (bool, error)
}

// A ColorSensor reports ambient light intensity as a percentage from 0 to 100.
type ColorSensor interface {
	Ambient(ctx context.Context) (float64, error)
}
