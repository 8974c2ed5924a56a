// Package fake implements fake touch and color sensors set by the caller.
package fake

import (
	"context"
	"sync"
)

// Sensor is a fake touch sensor.
type Sensor struct {
	mu      sync.Mutex
	pressed bool
	err     error
}

// Set presses or releases the sensor.
func (s *Sensor) Set(pressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressed = pressed
}

// Fail makes later reads return err. Pass nil to clear.
func (s *Sensor) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Pressed returns the value last set.
func (s *Sensor) Pressed(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pressed, s.err
}

// ColorSensor is a fake ambient light sensor.
type ColorSensor struct {
	mu      sync.Mutex
	ambient float64
}

// SetAmbient sets the reported light level.
func (s *ColorSensor) SetAmbient(ambient float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambient = ambient
}

// Ambient returns the light level last set.
func (s *ColorSensor) Ambient(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ambient, nil
}
