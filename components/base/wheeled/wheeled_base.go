// Package wheeled implements a differential drive base: one or more motors on each side, no
// steering.
package wheeled

import (
	"context"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/beaconrc/components/base"
	"go.viam.com/beaconrc/components/motor"
	"go.viam.com/beaconrc/logging"
)

// Config is how you configure a wheeled base.
type Config struct {
	WheelDiameterMM float64 `json:"wheel_diameter_mm"`
	AxleTrackMM     float64 `json:"axle_track_mm"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.WheelDiameterMM == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "wheel_diameter_mm")
	}
	if cfg.AxleTrackMM == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "axle_track_mm")
	}
	if cfg.WheelDiameterMM < 0 || cfg.AxleTrackMM < 0 {
		return utils.NewConfigValidationError(path,
			fmt.Errorf("wheel diameter and axle track must be positive, not %v and %v", cfg.WheelDiameterMM, cfg.AxleTrackMM))
	}
	return nil
}

type wheeledBase struct {
	wheelDiameterMM float64
	axleTrackMM     float64

	left      []motor.Motor
	right     []motor.Motor
	allMotors []motor.Motor

	logger logging.Logger
}

// NewBase returns a differential drive on the given left and right motors.
func NewBase(conf Config, left, right []motor.Motor, logger logging.Logger) (base.Base, error) {
	if err := conf.Validate("wheeled"); err != nil {
		return nil, err
	}
	if len(left) == 0 || len(right) == 0 {
		return nil, errors.New("wheeled base needs at least one motor on each side")
	}
	if len(left) != len(right) {
		return nil, errors.Errorf("left and right need to have the same number of motors, not %d vs %d", len(left), len(right))
	}
	b := &wheeledBase{
		wheelDiameterMM: conf.WheelDiameterMM,
		axleTrackMM:     conf.AxleTrackMM,
		left:            left,
		right:           right,
		logger:          logger,
	}
	b.allMotors = append(b.allMotors, left...)
	b.allMotors = append(b.allMotors, right...)
	return b, nil
}

// velocityMath calculates wheel speeds in deg/s from the base's linear and angular velocity.
// A positive turn rate turns clockwise, so the left wheel runs faster.
func (b *wheeledBase) velocityMath(mmPerSec, degsPerSec float64) (float64, float64) {
	v := mmPerSec
	r := b.wheelDiameterMM / 2
	l := b.axleTrackMM

	w0 := degsPerSec / 180 * math.Pi
	wL := (v / r) + (l * w0 / (2 * r))
	wR := (v / r) - (l * w0 / (2 * r))

	return wL * 180 / math.Pi, wR * 180 / math.Pi
}

// Drive runs each side at the speed that yields the requested velocity.
func (b *wheeledBase) Drive(ctx context.Context, mmPerSec, degsPerSec float64) error {
	if mmPerSec == 0 && degsPerSec == 0 {
		return b.Stop(ctx)
	}
	leftSpeed, rightSpeed := b.velocityMath(mmPerSec, degsPerSec)
	b.logger.CDebugw(ctx, "drive", "mm_per_sec", mmPerSec, "degs_per_sec", degsPerSec, "left", leftSpeed, "right", rightSpeed)

	var err error
	for _, m := range b.left {
		err = multierr.Combine(err, m.Run(ctx, leftSpeed))
	}
	for _, m := range b.right {
		err = multierr.Combine(err, m.Run(ctx, rightSpeed))
	}
	return err
}

// Stop brakes every motor.
func (b *wheeledBase) Stop(ctx context.Context) error {
	var err error
	for _, m := range b.allMotors {
		err = multierr.Combine(err, m.Brake(ctx))
	}
	return err
}

// Hold holds every motor in place.
func (b *wheeledBase) Hold(ctx context.Context) error {
	var err error
	for _, m := range b.allMotors {
		err = multierr.Combine(err, m.Hold(ctx))
	}
	return err
}

func (b *wheeledBase) IsMoving(ctx context.Context) (bool, error) {
	for _, m := range b.allMotors {
		isMoving, err := m.IsMoving(ctx)
		if err != nil {
			return false, err
		}
		if isMoving {
			return true, nil
		}
	}
	return false, nil
}
