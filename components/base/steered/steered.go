// Package steered implements a base with one drive motor and one steering motor, like a car.
// It can arc but cannot turn on the spot.
package steered

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/beaconrc/components/base"
	"go.viam.com/beaconrc/components/motor"
	"go.viam.com/beaconrc/logging"
)

// DefaultSteerSpeed is how fast the steering motor turns while arcing, in deg/s.
const DefaultSteerSpeed = 500.0

// Config is how you configure a steered base.
type Config struct {
	// SteerSpeed is the steering motor speed used for any nonzero turn rate.
	SteerSpeed float64 `json:"steer_speed_degs_per_sec,omitempty"`
	// WheelDiameterMM converts linear speed to drive motor speed. When zero, the linear
	// speed is passed to the drive motor unchanged.
	WheelDiameterMM float64 `json:"wheel_diameter_mm,omitempty"`
}

type steeredBase struct {
	steer motor.Motor
	drive motor.Motor
	conf  Config

	logger logging.Logger
}

// NewBase returns a steered base.
func NewBase(conf Config, steer, drive motor.Motor, logger logging.Logger) (base.Base, error) {
	if steer == nil || drive == nil {
		return nil, errors.New("steered base needs a steer motor and a drive motor")
	}
	if conf.SteerSpeed == 0 {
		conf.SteerSpeed = DefaultSteerSpeed
	}
	return &steeredBase{steer: steer, drive: drive, conf: conf, logger: logger}, nil
}

func (b *steeredBase) driveSpeed(mmPerSec float64) float64 {
	if b.conf.WheelDiameterMM == 0 {
		return mmPerSec
	}
	return mmPerSec / (b.conf.WheelDiameterMM * math.Pi) * 360
}

// Drive runs the drive motor and steers toward the turn. Turning without moving is not possible,
// so a zero linear speed stops the base. Moving straight leaves the steering where it is.
func (b *steeredBase) Drive(ctx context.Context, mmPerSec, degsPerSec float64) error {
	if mmPerSec == 0 {
		return b.Stop(ctx)
	}
	b.logger.CDebugw(ctx, "drive", "mm_per_sec", mmPerSec, "degs_per_sec", degsPerSec)
	if degsPerSec != 0 {
		// reversing flips which way the steering has to point for the same turn
		steer := motor.GetSign(degsPerSec) * motor.GetSign(mmPerSec) * b.conf.SteerSpeed
		if err := b.steer.Run(ctx, steer); err != nil {
			return err
		}
	}
	return b.drive.Run(ctx, b.driveSpeed(mmPerSec))
}

// Stop holds the steering and stops the drive motor.
func (b *steeredBase) Stop(ctx context.Context) error {
	return multierr.Combine(b.steer.Hold(ctx), b.drive.Stop(ctx))
}

// Hold holds both motors.
func (b *steeredBase) Hold(ctx context.Context) error {
	return multierr.Combine(b.steer.Hold(ctx), b.drive.Hold(ctx))
}

func (b *steeredBase) IsMoving(ctx context.Context) (bool, error) {
	return b.drive.IsMoving(ctx)
}
