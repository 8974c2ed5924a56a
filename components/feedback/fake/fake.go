// Package fake implements a feedback device that remembers the cues it was asked to play.
package fake

import (
	"context"
	"sync"

	"go.viam.com/beaconrc/components/feedback"
	"go.viam.com/beaconrc/logging"
)

// Device is a fake feedback device.
type Device struct {
	mu     sync.Mutex
	played []feedback.Cue
	logger logging.Logger
	err    error
}

// NewDevice returns a fake device that logs each cue. A nil logger is allowed.
func NewDevice(logger logging.Logger) *Device {
	return &Device{logger: logger}
}

// Fail makes every later PlayCue return err. Pass nil to clear.
func (d *Device) Fail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}

// PlayCue records the cue.
func (d *Device) PlayCue(ctx context.Context, cue feedback.Cue) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.played = append(d.played, cue)
	if d.logger != nil {
		d.logger.Infow("cue", "cue", string(cue), "kind", cue.Kind().String())
	}
	return nil
}

// Played returns every cue played so far, in order.
func (d *Device) Played() []feedback.Cue {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]feedback.Cue(nil), d.played...)
}
