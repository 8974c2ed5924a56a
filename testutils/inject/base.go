// Package inject provides doubles whose behavior is set per test through function fields. Any
// field left nil falls through to the embedded implementation.
package inject

import (
	"context"

	"go.viam.com/beaconrc/components/base"
)

// Base is an injected base.
type Base struct {
	base.Base
	DriveFunc    func(ctx context.Context, mmPerSec, degsPerSec float64) error
	StopFunc     func(ctx context.Context) error
	HoldFunc     func(ctx context.Context) error
	IsMovingFunc func(ctx context.Context) (bool, error)
}

// Drive calls the injected Drive or the real version.
func (b *Base) Drive(ctx context.Context, mmPerSec, degsPerSec float64) error {
	if b.DriveFunc == nil {
		return b.Base.Drive(ctx, mmPerSec, degsPerSec)
	}
	return b.DriveFunc(ctx, mmPerSec, degsPerSec)
}

// Stop calls the injected Stop or the real version.
func (b *Base) Stop(ctx context.Context) error {
	if b.StopFunc == nil {
		return b.Base.Stop(ctx)
	}
	return b.StopFunc(ctx)
}

// Hold calls the injected Hold or the real version.
func (b *Base) Hold(ctx context.Context) error {
	if b.HoldFunc == nil {
		return b.Base.Hold(ctx)
	}
	return b.HoldFunc(ctx)
}

// IsMoving calls the injected IsMoving or the real version.
func (b *Base) IsMoving(ctx context.Context) (bool, error) {
	if b.IsMovingFunc == nil {
		return b.Base.IsMoving(ctx)
	}
	return b.IsMovingFunc(ctx)
}
