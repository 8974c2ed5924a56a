// Package base defines the drive a robot moves around with: a linear speed along its heading
// and a turn rate about its center.
package base

import (
	"context"
)

// A Base is the drive of a mobile robot. Positive linear speeds move forward and positive turn
// rates turn clockwise, as seen from above.
type Base interface {
	// Drive moves the base at mmPerSec while turning at degsPerSec until the next command.
	Drive(ctx context.Context, mmPerSec, degsPerSec float64) error

	// Stop actively stops the base.
	Stop(ctx context.Context) error

	// Hold stops the base and actively holds every wheel in place.
	Hold(ctx context.Context) error

	// IsMoving reports whether any drive motor is powered.
	IsMoving(ctx context.Context) (bool, error)
}
