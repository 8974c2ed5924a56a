// Package gripp3r implements Gripp3r, a tracked robot with a gripper. The Beacon button closes
// the gripper until its touch sensor reports an object, or opens it if it is already closed.
package gripp3r

import (
	"context"
	"time"

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
const Model = "gripp3r"

// Build dimensions and gripper settings.
const (
	WheelDiameterMM = 26.0
	AxleTrackMM     = 115.0
	GripSpeed       = 500.0
	GripDuration    = time.Second
)

// Config overrides the build defaults.
type Config struct {
	WheelDiameterMM float64       `json:"wheel_diameter_mm,omitempty"`
	AxleTrackMM     float64       `json:"axle_track_mm,omitempty"`
	GripSpeed       float64       `json:"grip_speed_degs_per_sec,omitempty"`
	GripTimeout     time.Duration `json:"grip_timeout,omitempty"`
}

func init() {
	robots.Register(Model, robots.Registration{
		Constructor:  newGripp3r,
		Description:  "tracked gripper, beacon button grabs or releases",
		Motors:       []string{robots.PortA, robots.PortB, robots.PortC},
		TouchSensors: []string{robots.PortS1},
	})
}

func newGripp3r(ctx context.Context, hw robots.Hardware, attrs config.AttributeMap, logger logging.Logger) (*robots.Robot, error) {
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
	if conf.GripSpeed == 0 {
		conf.GripSpeed = GripSpeed
	}

	sensor, err := robots.FromHardware[beacon.Sensor](hw, robots.PortS4)
	if err != nil {
		return nil, err
	}
	speaker, err := robots.FromHardware[feedback.Device](hw, robots.Speaker)
	if err != nil {
		return nil, err
	}
	gripped, err := robots.FromHardware[touch.Sensor](hw, robots.PortS1)
	if err != nil {
		return nil, err
	}
	motors, err := robots.Motors(hw, robots.PortA, robots.PortB, robots.PortC)
	if err != nil {
		return nil, err
	}
	grip, left, right := motors[0], motors[1], motors[2]

	b, err := wheeled.NewBase(
		wheeled.Config{WheelDiameterMM: conf.WheelDiameterMM, AxleTrackMM: conf.AxleTrackMM},
		[]motor.Motor{left}, []motor.Motor{right},
		logger.Sublogger("base"),
	)
	if err != nil {
		return nil, err
	}

	release := rc.Steps{
		rc.CueStep{Device: speaker, Cue: feedback.AirRelease},
		rc.TimedStep{Motor: grip, Speed: conf.GripSpeed, Duration: GripDuration, Then: motor.Brake},
	}
	grab := rc.Steps{
		rc.CueStep{Device: speaker, Cue: feedback.Airbrake},
		rc.UntilStep{
			Motor:   grip,
			Speed:   -conf.GripSpeed,
			Done:    gripped.Pressed,
			Timeout: conf.GripTimeout,
			Then:    motor.Coast,
			Logger:  logger,
		},
	}

	return &robots.Robot{
		Deps: rc.Dependencies{
			Sensor: sensor,
			Base:   b,
			Action: rc.Choice{Cond: gripped.Pressed, Then: release, Else: grab},
		},
		Defaults: rc.Config{Mode: string(rc.ModeBoth)},
		// start with the gripper closed
		Startup: rc.TimedStep{Motor: grip, Speed: -conf.GripSpeed, Duration: GripDuration, Then: motor.Brake},
	}, nil
}
