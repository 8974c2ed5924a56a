// Package track3r implements Track3r, a tracked tank with a bazooka on its medium motor. The
// beacon drives it and the Beacon button fires the bazooka.
package track3r

import (
	"context"

	"github.com/pkg/errors"

	"go.viam.com/beaconrc/components/base/wheeled"
	"go.viam.com/beaconrc/components/beacon"
	"go.viam.com/beaconrc/components/feedback"
	"go.viam.com/beaconrc/components/motor"
	"go.viam.com/beaconrc/config"
	"go.viam.com/beaconrc/logging"
	"go.viam.com/beaconrc/robots"
	rc "go.viam.com/beaconrc/services/beaconremotecontrol"
)

// Model is the registered model name.
const Model = "track3r"

// Build dimensions and bazooka settings.
const (
	WheelDiameterMM = 26.0
	AxleTrackMM     = 140.0
	BlastSpeed      = 1000.0
	// about 3 rotations for 1 shot
	BlastAngle = 3 * 360.0
)

// Config overrides the build defaults.
type Config struct {
	WheelDiameterMM float64 `json:"wheel_diameter_mm,omitempty"`
	AxleTrackMM     float64 `json:"axle_track_mm,omitempty"`
	BlastSpeed      float64 `json:"blast_speed_degs_per_sec,omitempty"`
	// BlastStopMode is how the bazooka motor rests after a shot: coast, brake or hold.
	BlastStopMode string `json:"blast_stop_mode,omitempty"`
}

func init() {
	robots.Register(Model, robots.Registration{
		Constructor: newTrack3r,
		Description: "tracked tank, beacon button blasts the bazooka",
		Motors:      []string{robots.PortA, robots.PortB, robots.PortC},
	})
}

func newTrack3r(ctx context.Context, hw robots.Hardware, attrs config.AttributeMap, logger logging.Logger) (*robots.Robot, error) {
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
	if conf.BlastSpeed == 0 {
		conf.BlastSpeed = BlastSpeed
	}
	blastThen := motor.Hold
	if conf.BlastStopMode != "" {
		if blastThen, err = motor.ParseStopMode(conf.BlastStopMode); err != nil {
			return nil, errors.Wrap(err, "blast_stop_mode")
		}
	}

	sensor, err := robots.FromHardware[beacon.Sensor](hw, robots.PortS4)
	if err != nil {
		return nil, err
	}
	speaker, err := robots.FromHardware[feedback.Device](hw, robots.Speaker)
	if err != nil {
		return nil, err
	}
	motors, err := robots.Motors(hw, robots.PortA, robots.PortB, robots.PortC)
	if err != nil {
		return nil, err
	}
	medium, left, right := motors[0], motors[1], motors[2]

	b, err := wheeled.NewBase(
		wheeled.Config{WheelDiameterMM: conf.WheelDiameterMM, AxleTrackMM: conf.AxleTrackMM},
		[]motor.Motor{left}, []motor.Motor{right},
		logger.Sublogger("base"),
	)
	if err != nil {
		return nil, err
	}

	return &robots.Robot{
		Deps: rc.Dependencies{
			Sensor: sensor,
			Base:   b,
			Action: rc.Steps{
				rc.AngleStep{Motor: medium, Speed: conf.BlastSpeed, Angle: BlastAngle, Then: blastThen},
				rc.CueStep{Device: speaker, Cue: feedback.Laughing1},
			},
			OnIdle: medium.Stop,
		},
		Defaults: rc.Config{Mode: string(rc.ModeBoth)},
		Startup:  rc.CueStep{Device: speaker, Cue: feedback.PinchedMiddle},
	}, nil
}
