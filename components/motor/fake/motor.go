// Package fake implements a fake motor.
package fake

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.viam.com/beaconrc/components/motor"
	"go.viam.com/beaconrc/logging"
)

// Call is one command received by the fake motor.
type Call struct {
	Op       string
	Speed    float64
	Angle    float64
	Duration time.Duration
	Then     motor.StopMode
}

func (c Call) String() string {
	switch c.Op {
	case "run":
		return fmt.Sprintf("run(%.0f)", c.Speed)
	case "run_angle":
		return fmt.Sprintf("run_angle(%.0f, %.0f, %s)", c.Speed, c.Angle, c.Then)
	case "run_time":
		return fmt.Sprintf("run_time(%.0f, %s, %s)", c.Speed, c.Duration, c.Then)
	default:
		return c.Op
	}
}

// Motor is a fake motor that records the commands it receives. Bounded moves complete
// immediately and update the tracked angle as if they had run to completion.
type Motor struct {
	Name   string
	Logger logging.Logger

	// OnCall, when set, is invoked after every recorded call. It lets tests simulate the
	// world reacting to the motor, e.g. a gripper closing on a touch sensor.
	OnCall func(Call)

	mu      sync.Mutex
	calls   []Call
	speed   float64
	angle   float64
	held    bool
	moveErr error
}

// NewMotor returns a stopped fake motor.
func NewMotor(name string, logger logging.Logger) *Motor {
	return &Motor{Name: name, Logger: logger}
}

// FailMoves makes every later move return err. Pass nil to clear.
func (m *Motor) FailMoves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moveErr = err
}

func (m *Motor) record(c Call) {
	m.calls = append(m.calls, c)
	if m.Logger != nil {
		m.Logger.Debugw("motor call", "motor", m.Name, "call", c.String())
	}
}

func (m *Motor) notify(c Call) {
	if m.OnCall != nil {
		m.OnCall(c)
	}
}

// Run starts the motor indefinitely.
func (m *Motor) Run(ctx context.Context, degsPerSec float64) error {
	c := Call{Op: "run", Speed: degsPerSec}
	m.mu.Lock()
	if m.moveErr != nil {
		m.mu.Unlock()
		return m.moveErr
	}
	m.record(c)
	m.speed = degsPerSec
	m.held = false
	m.mu.Unlock()
	m.notify(c)
	return nil
}

// RunAngle records the move and adds the travelled angle.
func (m *Motor) RunAngle(ctx context.Context, degsPerSec, angleDeg float64, then motor.StopMode) error {
	if err := motor.CheckSpeed(degsPerSec); err != nil {
		return err
	}
	if err := motor.CheckAngle(angleDeg); err != nil {
		return err
	}
	c := Call{Op: "run_angle", Speed: degsPerSec, Angle: angleDeg, Then: then}
	m.mu.Lock()
	if m.moveErr != nil {
		m.mu.Unlock()
		return m.moveErr
	}
	m.record(c)
	travelled, _ := motor.AngleMove(degsPerSec, angleDeg)
	m.angle += travelled
	m.speed = 0
	m.held = then == motor.Hold
	m.mu.Unlock()
	m.notify(c)
	return nil
}

// RunTime records the move and adds the angle travelled in that time.
func (m *Motor) RunTime(ctx context.Context, degsPerSec float64, dur time.Duration, then motor.StopMode) error {
	if dur < 0 {
		return motor.NewNegativeDurationError()
	}
	c := Call{Op: "run_time", Speed: degsPerSec, Duration: dur, Then: then}
	m.mu.Lock()
	if m.moveErr != nil {
		m.mu.Unlock()
		return m.moveErr
	}
	m.record(c)
	m.angle += degsPerSec * dur.Seconds()
	m.speed = 0
	m.held = then == motor.Hold
	m.mu.Unlock()
	m.notify(c)
	return nil
}

func (m *Motor) halt(op string, hold bool) error {
	c := Call{Op: op}
	m.mu.Lock()
	m.record(c)
	m.speed = 0
	m.held = hold
	m.mu.Unlock()
	m.notify(c)
	return nil
}

// Stop has the motor pretend to be off.
func (m *Motor) Stop(ctx context.Context) error {
	return m.halt("stop", false)
}

// Brake has the motor pretend to brake.
func (m *Motor) Brake(ctx context.Context) error {
	return m.halt("brake", false)
}

// Hold has the motor pretend to hold its angle.
func (m *Motor) Hold(ctx context.Context) error {
	return m.halt("hold", true)
}

// IsMoving returns if the motor is pretending to be moving or not.
func (m *Motor) IsMoving(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return math.Abs(m.speed) >= 0.1, nil
}

// Calls returns every command received so far.
func (m *Motor) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Ops returns the op names of every command received so far.
func (m *Motor) Ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ops := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		ops = append(ops, c.Op)
	}
	return ops
}

// Reset forgets the recorded calls.
func (m *Motor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Angle returns the tracked shaft angle in degrees.
func (m *Motor) Angle() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.angle
}

// Speed returns the speed of the last Run, or 0 once halted.
func (m *Motor) Speed() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speed
}

// Held reports whether the motor is actively holding its angle.
func (m *Motor) Held() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held
}
