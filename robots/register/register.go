// Package register registers all robot models
package register

import (
	// register robots.
	_ "go.viam.com/beaconrc/robots/ev3rstorm"
	_ "go.viam.com/beaconrc/robots/gripp3r"
	_ "go.viam.com/beaconrc/robots/r3ptar"
	_ "go.viam.com/beaconrc/robots/track3r"
)
