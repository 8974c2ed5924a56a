// Package motor defines the actuator motors that drive a robot's wheels, tracks and weapons.
// Speeds are in degrees per second of the output shaft and angles are in degrees.
package motor

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// StopMode is what a motor does once a bounded move completes.
type StopMode uint8

const (
	// Coast lets the motor spin freely.
	Coast StopMode = iota
	// Brake shorts the motor so it resists motion passively.
	Brake
	// Hold actively keeps the motor at its final angle.
	Hold
)

func (m StopMode) String() string {
	switch m {
	case Coast:
		return "coast"
	case Brake:
		return "brake"
	case Hold:
		return "hold"
	default:
		return fmt.Sprintf("stop_mode(%d)", uint8(m))
	}
}

// ParseStopMode returns the StopMode with the given name.
func ParseStopMode(name string) (StopMode, error) {
	switch strings.ToLower(name) {
	case "coast", "":
		return Coast, nil
	case "brake":
		return Brake, nil
	case "hold":
		return Hold, nil
	}
	return Coast, NewUnknownStopModeError(name)
}

// A Motor is a single actuator. Bounded moves (RunAngle, RunTime) block until the move is done
// and then rest according to the given StopMode. Any later command replaces the running one.
type Motor interface {
	// Run starts the motor at degsPerSec indefinitely. It does not block.
	Run(ctx context.Context, degsPerSec float64) error

	// RunAngle turns the motor by angleDeg at |degsPerSec| and blocks until done. The direction
	// is the sign of angleDeg times the sign of degsPerSec.
	RunAngle(ctx context.Context, degsPerSec, angleDeg float64, then StopMode) error

	// RunTime runs the motor at degsPerSec for the given duration and blocks until done.
	RunTime(ctx context.Context, degsPerSec float64, dur time.Duration, then StopMode) error

	// Stop cuts power and lets the motor coast.
	Stop(ctx context.Context) error

	// Brake stops the motor with passive resistance.
	Brake(ctx context.Context) error

	// Hold stops the motor and actively holds its current angle.
	Hold(ctx context.Context) error

	// IsMoving reports whether the motor is currently powered.
	IsMoving(ctx context.Context) (bool, error)
}

// Halt rests m according to mode.
func Halt(ctx context.Context, m Motor, mode StopMode) error {
	switch mode {
	case Coast:
		return m.Stop(ctx)
	case Brake:
		return m.Brake(ctx)
	case Hold:
		return m.Hold(ctx)
	default:
		return NewUnknownStopModeError(mode.String())
	}
}

// CheckSpeed checks if the input speed is too slow to move and returns an error if so.
func CheckSpeed(degsPerSec float64) error {
	if math.Abs(degsPerSec) < 0.1 {
		return NewZeroSpeedError()
	}
	return nil
}

// CheckAngle checks if the input angle is non-zero.
func CheckAngle(angleDeg float64) error {
	if angleDeg == 0 {
		return NewZeroAngleError()
	}
	return nil
}

// GetSign returns the sign of the float as a helper for getting
// the intended direction of travel of a motor.
func GetSign(x float64) float64 {
	if x == 0 {
		return 0
	}
	if math.Signbit(x) {
		return -1.0
	}
	return 1.0
}

// AngleMove returns the signed angle travelled and the time taken by RunAngle(degsPerSec, angleDeg).
func AngleMove(degsPerSec, angleDeg float64) (float64, time.Duration) {
	travelled := GetSign(degsPerSec) * angleDeg
	seconds := math.Abs(angleDeg / degsPerSec)
	return travelled, time.Duration(seconds * float64(time.Second))
}
