// Package sim implements a simulated motor whose bounded moves take as long as the real motor
// would. Time is read from a clock.Clock so tests can drive it with a mock clock.
package sim

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"go.viam.com/beaconrc/components/motor"
	"go.viam.com/beaconrc/logging"
	"go.viam.com/beaconrc/operation"
)

// DefaultMaxSpeed is the fastest a simulated motor turns, in degrees per second.
const DefaultMaxSpeed = 1560.0

// Config describes a simulated motor.
type Config struct {
	MaxSpeed float64 `json:"max_speed_degs_per_sec,omitempty"`
}

// Motor is a simulated motor. Only one operation runs at a time; a new command cancels
// whatever bounded move is in progress.
type Motor struct {
	name     string
	logger   logging.Logger
	clk      clock.Clock
	maxSpeed float64
	opMgr    *operation.SingleOperationManager

	mu      sync.Mutex
	speed   float64
	since   time.Time
	angle   float64
	holding bool
}

// NewMotor returns a stopped simulated motor. A nil clock means the wall clock.
func NewMotor(name string, conf Config, clk clock.Clock, logger logging.Logger) *Motor {
	if clk == nil {
		clk = clock.New()
	}
	maxSpeed := conf.MaxSpeed
	if maxSpeed <= 0 {
		maxSpeed = DefaultMaxSpeed
	}
	return &Motor{
		name:     name,
		logger:   logger,
		clk:      clk,
		maxSpeed: maxSpeed,
		opMgr:    &operation.SingleOperationManager{Clock: clk},
		since:    clk.Now(),
	}
}

func (m *Motor) clamp(degsPerSec float64) float64 {
	return math.Max(-m.maxSpeed, math.Min(m.maxSpeed, degsPerSec))
}

// settle folds the motion since the last speed change into the angle. Call with mu held.
func (m *Motor) settle() {
	now := m.clk.Now()
	m.angle += m.speed * now.Sub(m.since).Seconds()
	m.since = now
}

func (m *Motor) setSpeed(degsPerSec float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settle()
	m.speed = degsPerSec
	m.holding = false
	return m.angle
}

// arrive ends a completed bounded move exactly on its target angle.
func (m *Motor) arrive(target float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.angle = target
	m.speed = 0
	m.since = m.clk.Now()
}

func (m *Motor) halt(hold bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settle()
	m.speed = 0
	m.holding = hold
}

// Run starts the motor at degsPerSec until the next command.
func (m *Motor) Run(ctx context.Context, degsPerSec float64) error {
	m.opMgr.CancelRunning(ctx)
	m.logger.CDebugw(ctx, "run", "motor", m.name, "speed", degsPerSec)
	m.setSpeed(m.clamp(degsPerSec))
	return nil
}

// RunAngle turns the motor by angleDeg and blocks until the simulated move has finished.
func (m *Motor) RunAngle(ctx context.Context, degsPerSec, angleDeg float64, then motor.StopMode) error {
	if err := motor.CheckSpeed(degsPerSec); err != nil {
		return err
	}
	if err := motor.CheckAngle(angleDeg); err != nil {
		return err
	}
	speed := m.clamp(math.Abs(degsPerSec))
	travelled, dur := motor.AngleMove(motor.GetSign(degsPerSec)*speed, angleDeg)
	m.logger.CDebugw(ctx, "run angle", "motor", m.name, "speed", speed, "angle", travelled, "then", then.String())
	return m.timedMove(ctx, motor.GetSign(travelled)*speed, dur, then)
}

// RunTime runs the motor for dur and blocks until the simulated move has finished.
func (m *Motor) RunTime(ctx context.Context, degsPerSec float64, dur time.Duration, then motor.StopMode) error {
	if dur < 0 {
		return motor.NewNegativeDurationError()
	}
	m.logger.CDebugw(ctx, "run time", "motor", m.name, "speed", degsPerSec, "duration", dur, "then", then.String())
	return m.timedMove(ctx, m.clamp(degsPerSec), dur, then)
}

func (m *Motor) timedMove(ctx context.Context, speed float64, dur time.Duration, then motor.StopMode) error {
	start := m.setSpeed(speed)
	if !m.opMgr.NewTimedWaitOp(ctx, dur) {
		m.halt(false)
		if ctx.Err() != nil {
			return errors.Wrapf(ctx.Err(), "motor %s move interrupted", m.name)
		}
		return nil
	}
	m.arrive(start + speed*dur.Seconds())
	return motor.Halt(ctx, m, then)
}

// Stop cuts power.
func (m *Motor) Stop(ctx context.Context) error {
	m.opMgr.CancelRunning(ctx)
	m.halt(false)
	return nil
}

// Brake stops the motor. The simulation does not distinguish braking from coasting.
func (m *Motor) Brake(ctx context.Context) error {
	return m.Stop(ctx)
}

// Hold stops the motor and holds its angle.
func (m *Motor) Hold(ctx context.Context) error {
	m.opMgr.CancelRunning(ctx)
	m.halt(true)
	return nil
}

// IsMoving returns whether the motor is powered.
func (m *Motor) IsMoving(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speed != 0, nil
}

// Angle returns the simulated shaft angle in degrees.
func (m *Motor) Angle() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settle()
	return m.angle
}

// Holding reports whether the motor is holding its angle.
func (m *Motor) Holding() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.holding
}
