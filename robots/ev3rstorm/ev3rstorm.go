// Package ev3rstorm implements Ev3rstorm, a wheeled robot with a ball shooter. The beacon only
// drives it; pressing its touch sensor shoots, upward in the dark and downward in the light.
package ev3rstorm

import (
	"context"

	"go.viam.com/beaconrc/components/base/wheeled"
	"go.viam.com/beaconrc/components/beacon"
	"go.viam.com/beaconrc/components/feedback"
	"go.viam.com/beaconrc/components/motor"
	"go.viam.com/beaconrc/components/touch"
	"go.viam.com/beaconrc/config"
	"go.viam.com/beaconrc/logging"
	"go.viam.com/beaconrc/robots"
	rc "go.viam.com/beaconrc/services/beaconremotecontrol"
)

// Model is the registered model name.
const Model = "ev3rstorm"

// Build dimensions and shooter settings.
const (
	WheelDiameterMM = 26.0
	AxleTrackMM     = 102.0
	ShotAngle       = 3 * 360.0
	// shoot quickly in half a second
	ShotSpeed = 2 * ShotAngle
	// below this ambient light level the shooter fires up
	DarkThreshold = 15.0
)

// Config overrides the build defaults.
type Config struct {
	WheelDiameterMM float64 `json:"wheel_diameter_mm,omitempty"`
	AxleTrackMM     float64 `json:"axle_track_mm,omitempty"`
	DarkThreshold   float64 `json:"dark_threshold,omitempty"`
}

func init() {
	robots.Register(Model, robots.Registration{
		Constructor:  newEv3rstorm,
		Description:  "wheeled shooter, touch sensor shoots up or down by ambient light",
		Motors:       []string{robots.PortA, robots.PortB, robots.PortC},
		TouchSensors: []string{robots.PortS1},
		ColorSensors: []string{robots.PortS3},
	})
}

func newEv3rstorm(ctx context.Context, hw robots.Hardware, attrs config.AttributeMap, logger logging.Logger) (*robots.Robot, error) {
	conf, err := config.TransformAttributeMapToStruct[Config](attrs)
	if err != nil {
		return nil, err
	}
	if conf.WheelDiameterMM == 0 {
		conf.WheelDiameterMM = WheelDiameterMM
	}
	if conf.AxleTrackMM == 0 {
		conf.AxleTrackMM = AxleTrackMM
	}
	if conf.DarkThreshold == 0 {
		conf.DarkThreshold = DarkThreshold
	}

	sensor, err := robots.FromHardware[beacon.Sensor](hw, robots.PortS4)
	if err != nil {
		return nil, err
	}
	speaker, err := robots.FromHardware[feedback.Device](hw, robots.Speaker)
	if err != nil {
		return nil, err
	}
	trigger, err := robots.FromHardware[touch.Sensor](hw, robots.PortS1)
	if err != nil {
		return nil, err
	}
	light, err := robots.FromHardware[touch.ColorSensor](hw, robots.PortS3)
	if err != nil {
		return nil, err
	}
	motors, err := robots.Motors(hw, robots.PortA, robots.PortB, robots.PortC)
	if err != nil {
		return nil, err
	}
	shooter, left, right := motors[0], motors[1], motors[2]

	b, err := wheeled.NewBase(
		wheeled.Config{WheelDiameterMM: conf.WheelDiameterMM, AxleTrackMM: conf.AxleTrackMM},
		[]motor.Motor{left}, []motor.Motor{right},
		logger.Sublogger("base"),
	)
	if err != nil {
		return nil, err
	}

	dark := func(ctx context.Context) (bool, error) {
		ambient, err := light.Ambient(ctx)
		if err != nil {
			return false, err
		}
		return ambient < conf.DarkThreshold, nil
	}
	shoot := rc.Choice{
		Cond: dark,
		Then: rc.Steps{
			rc.CueStep{Device: speaker, Cue: feedback.Up},
			rc.AngleStep{Motor: shooter, Speed: ShotSpeed, Angle: ShotAngle, Then: motor.Hold},
		},
		Else: rc.Steps{
			rc.CueStep{Device: speaker, Cue: feedback.Down},
			rc.AngleStep{Motor: shooter, Speed: ShotSpeed, Angle: -ShotAngle, Then: motor.Hold},
		},
	}

	return &robots.Robot{
		Deps: rc.Dependencies{
			Sensor:   sensor,
			Base:     b,
			Watchers: []rc.Watcher{rc.NewTouchTrigger("shoot", trigger, shoot, logger)},
		},
		Defaults: rc.Config{Mode: string(rc.ModeDrive)},
	}, nil
}
