// Package beaconremotecontrol drives a robot from an infrared beacon. Each tick it reads the
// buttons held on the configured channel, decodes them into a Directive, drives the base and
// fires the robot's one-shot action at most once per press.
package beaconremotecontrol

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/beaconrc/components/base"
	"go.viam.com/beaconrc/components/beacon"
	"go.viam.com/beaconrc/logging"
	"go.viam.com/beaconrc/utils"
)

// Dependencies are the collaborators a Service controls.
type Dependencies struct {
	Sensor beacon.Sensor
	// Base is required when the mode drives.
	Base base.Base
	// Action is required when the mode acts.
	Action Sequence
	// OnIdle is called on ticks where the action is neither held nor latched.
	OnIdle   func(ctx context.Context) error
	Watchers []Watcher
	// Clock paces the loop. Defaults to the wall clock.
	Clock clock.Clock
}

// TickResult describes what one tick saw and did.
type TickResult struct {
	Buttons   beacon.ButtonSet
	Directive Directive
	Vector    DriveVector
	Ran       bool
	State     State
}

// Service is the beacon control loop.
type Service struct {
	sensor    beacon.Sensor
	base      base.Base
	arbiter   *Arbiter
	sequencer *Sequencer
	watchers  []Watcher
	clk       clock.Clock
	logger    logging.Logger

	// mu is held for a whole tick, so reconfiguration lands between ticks.
	mu            sync.Mutex
	settings      settings
	decoder       Decoder
	lastDirective Directive
	ticks         int

	workersMu sync.Mutex
	workers   utils.StoppableWorkers
	runErr    error
}

// New returns a service controlling deps.
func New(ctx context.Context, deps Dependencies, conf Config, logger logging.Logger) (*Service, error) {
	s, err := conf.settings()
	if err != nil {
		return nil, err
	}
	if deps.Sensor == nil {
		return nil, errors.New("beacon remote control needs a beacon sensor")
	}
	if err := checkDependencies(deps, s.mode); err != nil {
		return nil, err
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.New()
	}

	svc := &Service{
		sensor:   deps.Sensor,
		base:     deps.Base,
		watchers: deps.Watchers,
		clk:      clk,
		logger:   logger,
		settings: s,
		decoder:  NewDecoder(s.mode.Acts()),
	}
	if deps.Base != nil {
		svc.arbiter = NewArbiter(deps.Base, s.speed, s.turnRate, logger.Sublogger("arbiter"))
	}
	if deps.Action != nil {
		svc.sequencer = NewSequencer(deps.Action, logger.Sublogger("sequencer"))
		svc.sequencer.OnIdle = deps.OnIdle
	}
	logger.CDebugw(ctx, "beacon remote control ready", "channel", s.channel, "mode", string(s.mode),
		"speed", s.speed, "turn_rate", s.turnRate, "tick_interval", s.tickInterval)
	return svc, nil
}

func checkDependencies(deps Dependencies, mode Mode) error {
	if mode.Drives() && deps.Base == nil {
		return errors.Errorf("mode %q needs a base", mode)
	}
	if mode.Acts() && deps.Action == nil {
		return errors.Errorf("mode %q needs an action", mode)
	}
	return nil
}

// Tick reads the beacon once and acts on it. Errors from any collaborator are returned wrapped
// and should be treated as fatal.
func (svc *Service) Tick(ctx context.Context) (TickResult, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.ticks++

	var res TickResult
	pressed, err := svc.sensor.Buttons(ctx, svc.settings.channel)
	if err != nil {
		return res, errors.Wrapf(err, "reading beacon channel %d", svc.settings.channel)
	}
	res.Buttons = pressed
	res.Directive = svc.decoder.Decode(pressed)
	if res.Directive != svc.lastDirective {
		svc.logger.CDebugw(ctx, "directive changed", "from", svc.lastDirective.String(),
			"to", res.Directive.String(), "buttons", pressed.String())
		svc.lastDirective = res.Directive
	}

	if svc.settings.mode.Drives() {
		// Action maps to a zero vector, so the base is stopped before the action runs.
		res.Vector, err = svc.arbiter.Drive(ctx, res.Directive)
		if err != nil {
			return res, err
		}
	}
	if svc.settings.mode.Acts() {
		res.Ran, err = svc.sequencer.Tick(ctx, res.Directive)
		res.State = svc.sequencer.State()
		if err != nil {
			return res, err
		}
	}
	for _, w := range svc.watchers {
		if err := w.Check(ctx); err != nil {
			return res, errors.Wrap(err, "watcher")
		}
	}
	return res, nil
}

// Ticks returns how many ticks have started.
func (svc *Service) Ticks() int {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.ticks
}

// Latched reports whether the action latch is set.
func (svc *Service) Latched() bool {
	return svc.sequencer != nil && svc.sequencer.Latched()
}

func (svc *Service) tickInterval() time.Duration {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.settings.tickInterval
}

// Run ticks until ctx is done, yielding the tick interval between ticks. It returns nil when
// ctx is cancelled and the first tick error otherwise.
func (svc *Service) Run(ctx context.Context) error {
	for {
		if _, err := svc.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if !svc.wait(ctx, svc.tickInterval()) {
			return nil
		}
	}
}

func (svc *Service) wait(ctx context.Context, dur time.Duration) bool {
	if dur <= 0 {
		return ctx.Err() == nil
	}
	timer := svc.clk.Timer(dur)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Start runs the loop in the background until Close. Calling Start again does nothing.
func (svc *Service) Start() {
	svc.workersMu.Lock()
	defer svc.workersMu.Unlock()
	if svc.workers != nil {
		return
	}
	svc.workers = utils.NewStoppableWorkers(func(ctx context.Context) {
		if err := svc.Run(ctx); err != nil {
			svc.logger.Errorw("beacon remote control loop stopped", "error", err)
			svc.workersMu.Lock()
			svc.runErr = err
			svc.workersMu.Unlock()
		}
	})
}

// Err returns the error that stopped a started loop, if any.
func (svc *Service) Err() error {
	svc.workersMu.Lock()
	defer svc.workersMu.Unlock()
	return svc.runErr
}

// Reconfigure applies a new config between ticks. The mode may only change to one the
// service's dependencies support.
func (svc *Service) Reconfigure(ctx context.Context, conf Config) error {
	s, err := conf.settings()
	if err != nil {
		return err
	}
	if err := checkDependencies(Dependencies{Sensor: svc.sensor, Base: svc.base, Action: svc.action()}, s.mode); err != nil {
		return err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.settings = s
	svc.decoder = NewDecoder(s.mode.Acts())
	if svc.arbiter != nil {
		svc.arbiter.SetSpeeds(s.speed, s.turnRate)
	}
	svc.logger.CDebugw(ctx, "beacon remote control reconfigured", "channel", s.channel, "mode", string(s.mode),
		"speed", s.speed, "turn_rate", s.turnRate, "tick_interval", s.tickInterval)
	return nil
}

func (svc *Service) action() Sequence {
	if svc.sequencer == nil {
		return nil
	}
	return svc.sequencer.action
}

// Close stops the loop and then the base.
func (svc *Service) Close(ctx context.Context) error {
	svc.workersMu.Lock()
	workers := svc.workers
	svc.workersMu.Unlock()
	if workers != nil {
		workers.Stop()
	}

	var err error
	if svc.base != nil {
		err = multierr.Combine(err, errors.Wrap(svc.base.Stop(ctx), "stopping base"))
	}
	if svc.sequencer != nil && svc.sequencer.OnIdle != nil {
		err = multierr.Combine(err, errors.Wrap(svc.sequencer.OnIdle(ctx), "resting action"))
	}
	return err
}
