package robots

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"go.viam.com/test"

	"go.viam.com/beaconrc/components/beacon"
	"go.viam.com/beaconrc/components/motor"
	"go.viam.com/beaconrc/components/motor/fake"
	"go.viam.com/beaconrc/config"
	"go.viam.com/beaconrc/logging"
	"go.viam.com/beaconrc/services/beaconremotecontrol"
)

func TestFromHardware(t *testing.T) {
	m := fake.NewMotor("A", nil)
	hw := Hardware{PortA: m, PortS1: "not a motor", PortB: nil}

	got, err := FromHardware[motor.Motor](hw, PortA)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got, test.ShouldEqual, m)

	_, err = FromHardware[motor.Motor](hw, PortC)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `dependency "C" not found`)

	_, err = FromHardware[motor.Motor](hw, PortB)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "not found")

	_, err = FromHardware[motor.Motor](hw, PortS1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "should be an implementation of motor.Motor")
	test.That(t, err.Error(), test.ShouldContainSubstring, "string")

	motors, err := Motors(Hardware{PortA: m, PortB: m}, PortB, PortA)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, motors, test.ShouldHaveLength, 2)

	_, err = Motors(hw, PortA, PortD)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRegistry(t *testing.T) {
	const model = "test_robot"
	var gotAttrs config.AttributeMap
	Register(model, Registration{
		Constructor: func(ctx context.Context, hw Hardware, attrs config.AttributeMap, logger logging.Logger) (*Robot, error) {
			gotAttrs = attrs
			sensor, err := FromHardware[beacon.Sensor](hw, PortS4)
			if err != nil {
				return nil, err
			}
			return &Robot{Deps: beaconremotecontrol.Dependencies{Sensor: sensor}}, nil
		},
		Motors: []string{PortA},
	})
	defer Deregister(model)

	test.That(t, Models(), test.ShouldContain, model)
	reg, ok := Lookup(model)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, reg.Motors, test.ShouldResemble, []string{PortA})

	test.That(t, func() {
		Register(model, Registration{Constructor: reg.Constructor})
	}, test.ShouldPanic)
	test.That(t, func() {
		Register("no_constructor", Registration{})
	}, test.ShouldPanic)

	logger := logging.NewTestLogger(t)
	_, err := Build(context.Background(), model, Hardware{}, nil, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "building test_robot")

	attrs := config.AttributeMap{"x": 1.0}
	r, err := Build(context.Background(), model, Hardware{PortS4: struct{ beacon.Sensor }{}}, attrs, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Model, test.ShouldEqual, model)
	test.That(t, gotAttrs, test.ShouldResemble, attrs)

	_, err = Build(context.Background(), "nope", Hardware{}, nil, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown robot model "nope"`)

	Deregister(model)
	_, ok = Lookup(model)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestRemoteControlConfig(t *testing.T) {
	r := &Robot{Defaults: beaconremotecontrol.Config{
		Channel:       2,
		SpeedMMPerSec: lo.ToPtr(500.0),
		TickInterval:  "5ms",
		Mode:          "drive",
	}}
	test.That(t, r.RemoteControlConfig(beaconremotecontrol.Config{}), test.ShouldResemble, r.Defaults)

	conf := beaconremotecontrol.Config{Channel: 3, TurnRateDegsPerSec: lo.ToPtr(45.0), Mode: "both"}
	test.That(t, r.RemoteControlConfig(conf), test.ShouldResemble, beaconremotecontrol.Config{
		Channel:            3,
		SpeedMMPerSec:      lo.ToPtr(500.0),
		TurnRateDegsPerSec: lo.ToPtr(45.0),
		TickInterval:       "5ms",
		Mode:               "both",
	})

	// an explicit zero is a setting, not a gap
	got := r.RemoteControlConfig(beaconremotecontrol.Config{SpeedMMPerSec: lo.ToPtr(0.0)})
	test.That(t, *got.SpeedMMPerSec, test.ShouldEqual, 0.0)
}
