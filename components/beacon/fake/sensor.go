// Package fake implements a fake beacon sensor whose pressed buttons are set by the caller.
package fake

import (
	"context"
	"sync"

	"go.viam.com/beaconrc/components/beacon"
)

// Sensor is a fake beacon sensor. Buttons held with Press stay held until Release. Frames queued
// with Script take precedence and are consumed one per read.
type Sensor struct {
	mu      sync.Mutex
	pressed map[int]beacon.ButtonSet
	script  []beacon.ButtonSet
	reads   int
}

// NewSensor returns a fake sensor with nothing pressed.
func NewSensor() *Sensor {
	return &Sensor{pressed: map[int]beacon.ButtonSet{}}
}

// Press holds the given buttons on a channel, replacing what was held before.
func (s *Sensor) Press(channel int, buttons ...beacon.Button) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressed[channel] = beacon.NewButtonSet(buttons...)
}

// Release lets go of every button on a channel.
func (s *Sensor) Release(channel int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pressed, channel)
}

// Script queues frames returned by successive reads regardless of channel.
func (s *Sensor) Script(frames ...beacon.ButtonSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = append(s.script, frames...)
}

// Reads returns how many times Buttons was called.
func (s *Sensor) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// Buttons returns the next scripted frame, or what is held on the channel.
func (s *Sensor) Buttons(ctx context.Context, channel int) (beacon.ButtonSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if len(s.script) > 0 {
		frame := s.script[0]
		s.script = s.script[1:]
		return frame, nil
	}
	return s.pressed[channel], nil
}
