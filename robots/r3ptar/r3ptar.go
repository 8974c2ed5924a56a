// Package r3ptar implements R3ptar, a snake that steers like a car. The beacon drives it, the
// Beacon button makes it strike and pressing its touch sensor makes it hiss.
package r3ptar

import (
	"context"
	"time"

	"go.viam.com/beaconrc/components/base/steered"
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
const Model = "r3ptar"

// Strike settings.
const (
	StrikeSpeed    = 1000.0
	StrikeDuration = time.Second
)

// Config overrides the build defaults.
type Config struct {
	SteerSpeed  float64 `json:"steer_speed_degs_per_sec,omitempty"`
	StrikeSpeed float64 `json:"strike_speed_degs_per_sec,omitempty"`
}

func init() {
	robots.Register(Model, robots.Registration{
		Constructor:  newR3ptar,
		Description:  "steered snake, beacon button strikes, touch sensor hisses",
		Motors:       []string{robots.PortA, robots.PortB, robots.PortD},
		TouchSensors: []string{robots.PortS1},
	})
}

func newR3ptar(ctx context.Context, hw robots.Hardware, attrs config.AttributeMap, logger logging.Logger) (*robots.Robot, error) {
	conf, err := config.TransformAttributeMapToStruct[Config](attrs)
	if err != nil {
		return nil, err
	}
	if conf.StrikeSpeed == 0 {
		conf.StrikeSpeed = StrikeSpeed
	}

	sensor, err := robots.FromHardware[beacon.Sensor](hw, robots.PortS4)
	if err != nil {
		return nil, err
	}
	speaker, err := robots.FromHardware[feedback.Device](hw, robots.Speaker)
	if err != nil {
		return nil, err
	}
	pressed, err := robots.FromHardware[touch.Sensor](hw, robots.PortS1)
	if err != nil {
		return nil, err
	}
	motors, err := robots.Motors(hw, robots.PortA, robots.PortB, robots.PortD)
	if err != nil {
		return nil, err
	}
	steer, drive, strike := motors[0], motors[1], motors[2]

	b, err := steered.NewBase(steered.Config{SteerSpeed: conf.SteerSpeed}, steer, drive, logger.Sublogger("base"))
	if err != nil {
		return nil, err
	}

	return &robots.Robot{
		Deps: rc.Dependencies{
			Sensor: sensor,
			Base:   b,
			Action: rc.Steps{
				rc.TimedStep{Motor: strike, Speed: conf.StrikeSpeed, Duration: StrikeDuration, Then: motor.Hold},
				rc.TimedStep{Motor: strike, Speed: -conf.StrikeSpeed, Duration: StrikeDuration, Then: motor.Coast},
			},
			Watchers: []rc.Watcher{
				rc.NewTouchTrigger("hiss", pressed, rc.CueStep{Device: speaker, Cue: feedback.SnakeHiss}, logger),
			},
		},
		// the drive motor has no wheel, so speed is passed through as deg/s
		Defaults: rc.Config{Mode: string(rc.ModeBoth)},
	}, nil
}
