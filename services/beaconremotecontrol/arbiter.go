package beaconremotecontrol

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"go.viam.com/beaconrc/components/base"
	"go.viam.com/beaconrc/logging"
)

// A DriveVector is a linear speed in mm/s and a turn rate in deg/s. Positive turn rates turn
// clockwise.
type DriveVector struct {
	LinearSpeed float64
	TurnRate    float64
}

// IsZero reports whether the vector means standing still.
func (v DriveVector) IsZero() bool {
	return v.LinearSpeed == 0 && v.TurnRate == 0
}

func (v DriveVector) String() string {
	return fmt.Sprintf("(%g, %g)", v.LinearSpeed, v.TurnRate)
}

// Apply returns the drive vector for a directive. Arcing toward a side while moving forward turns
// with the opposite sign of pivoting toward that side, and reversing flips the arc signs again.
func Apply(d Directive, baseSpeed, baseTurnRate float64) DriveVector {
	switch d {
	case Forward:
		return DriveVector{baseSpeed, 0}
	case Backward:
		return DriveVector{-baseSpeed, 0}
	case PivotLeft:
		return DriveVector{0, -baseTurnRate}
	case PivotRight:
		return DriveVector{0, baseTurnRate}
	case ArcLeftForward:
		return DriveVector{baseSpeed, -baseTurnRate}
	case ArcRightForward:
		return DriveVector{baseSpeed, baseTurnRate}
	case ArcLeftBackward:
		return DriveVector{-baseSpeed, baseTurnRate}
	case ArcRightBackward:
		return DriveVector{-baseSpeed, -baseTurnRate}
	default:
		// Idle and Action stand still.
		return DriveVector{}
	}
}

// An Arbiter turns directives into drive commands on a base.
type Arbiter struct {
	base   base.Base
	logger logging.Logger

	mu       sync.Mutex
	speed    float64
	turnRate float64
}

// NewArbiter returns an arbiter driving b at the given base speed and turn rate.
func NewArbiter(b base.Base, speed, turnRate float64, logger logging.Logger) *Arbiter {
	return &Arbiter{base: b, speed: speed, turnRate: turnRate, logger: logger}
}

// SetSpeeds changes the base speed and turn rate used for later directives.
func (a *Arbiter) SetSpeeds(speed, turnRate float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.speed = speed
	a.turnRate = turnRate
}

// Speeds returns the base speed and turn rate.
func (a *Arbiter) Speeds() (float64, float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.speed, a.turnRate
}

// Drive issues the vector for d. A zero vector actively stops the base.
func (a *Arbiter) Drive(ctx context.Context, d Directive) (DriveVector, error) {
	speed, turnRate := a.Speeds()
	v := Apply(d, speed, turnRate)
	if v.IsZero() {
		if err := a.base.Stop(ctx); err != nil {
			return v, errors.Wrapf(err, "stopping base for %s", d)
		}
		return v, nil
	}
	if err := a.base.Drive(ctx, v.LinearSpeed, v.TurnRate); err != nil {
		return v, errors.Wrapf(err, "driving base %s for %s", v, d)
	}
	return v, nil
}
