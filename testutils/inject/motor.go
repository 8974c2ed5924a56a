package inject

import (
	"context"
	"time"

	"go.viam.com/beaconrc/components/motor"
)

// Motor is an injected motor.
type Motor struct {
	motor.Motor
	RunFunc      func(ctx context.Context, degsPerSec float64) error
	RunAngleFunc func(ctx context.Context, degsPerSec, angleDeg float64, then motor.StopMode) error
	RunTimeFunc  func(ctx context.Context, degsPerSec float64, dur time.Duration, then motor.StopMode) error
	StopFunc     func(ctx context.Context) error
	BrakeFunc    func(ctx context.Context) error
	HoldFunc     func(ctx context.Context) error
	IsMovingFunc func(ctx context.Context) (bool, error)
}

// Run calls the injected Run or the real version.
func (m *Motor) Run(ctx context.Context, degsPerSec float64) error {
	if m.RunFunc == nil {
		return m.Motor.Run(ctx, degsPerSec)
	}
	return m.RunFunc(ctx, degsPerSec)
}

// RunAngle calls the injected RunAngle or the real version.
func (m *Motor) RunAngle(ctx context.Context, degsPerSec, angleDeg float64, then motor.StopMode) error {
	if m.RunAngleFunc == nil {
		return m.Motor.RunAngle(ctx, degsPerSec, angleDeg, then)
	}
	return m.RunAngleFunc(ctx, degsPerSec, angleDeg, then)
}

// RunTime calls the injected RunTime or the real version.
func (m *Motor) RunTime(ctx context.Context, degsPerSec float64, dur time.Duration, then motor.StopMode) error {
	if m.RunTimeFunc == nil {
		return m.Motor.RunTime(ctx, degsPerSec, dur, then)
	}
	return m.RunTimeFunc(ctx, degsPerSec, dur, then)
}

// Stop calls the injected Stop or the real version.
func (m *Motor) Stop(ctx context.Context) error {
	if m.StopFunc == nil {
		return m.Motor.Stop(ctx)
	}
	return m.StopFunc(ctx)
}

// Brake calls the injected Brake or the real version.
func (m *Motor) Brake(ctx context.Context) error {
	if m.BrakeFunc == nil {
		return m.Motor.Brake(ctx)
	}
	return m.BrakeFunc(ctx)
}

// Hold calls the injected Hold or the real version.
func (m *Motor) Hold(ctx context.Context) error {
	if m.HoldFunc == nil {
		return m.Motor.Hold(ctx)
	}
	return m.HoldFunc(ctx)
}

// IsMoving calls the injected IsMoving or the real version.
func (m *Motor) IsMoving(ctx context.Context) (bool, error) {
	if m.IsMovingFunc == nil {
		return m.Motor.IsMoving(ctx)
	}
	return m.IsMovingFunc(ctx)
}
