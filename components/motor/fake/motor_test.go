package fake

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/beaconrc/components/motor"
	"go.viam.com/beaconrc/logging"
)

func TestFakeMotor(t *testing.T) {
	ctx := context.Background()
	m := NewMotor("medium", logging.NewTestLogger(t))

	test.That(t, m.Run(ctx, 500), test.ShouldBeNil)
	moving, err := m.IsMoving(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, moving, test.ShouldBeTrue)

	test.That(t, m.RunAngle(ctx, 1000, 1080, motor.Hold), test.ShouldBeNil)
	test.That(t, m.Angle(), test.ShouldEqual, 1080)
	test.That(t, m.Held(), test.ShouldBeTrue)
	moving, err = m.IsMoving(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, moving, test.ShouldBeFalse)

	test.That(t, m.RunTime(ctx, -500, time.Second, motor.Coast), test.ShouldBeNil)
	test.That(t, m.Angle(), test.ShouldEqual, 580)
	test.That(t, m.Held(), test.ShouldBeFalse)

	test.That(t, m.Calls(), test.ShouldResemble, []Call{
		{Op: "run", Speed: 500},
		{Op: "run_angle", Speed: 1000, Angle: 1080, Then: motor.Hold},
		{Op: "run_time", Speed: -500, Duration: time.Second, Then: motor.Coast},
	})
	test.That(t, m.Calls()[2].String(), test.ShouldEqual, "run_time(-500, 1s, coast)")

	m.Reset()
	test.That(t, m.Calls(), test.ShouldBeEmpty)
}

func TestFakeMotorErrors(t *testing.T) {
	ctx := context.Background()
	m := NewMotor("medium", logging.NewTestLogger(t))
	test.That(t, m.RunAngle(ctx, 0, 90, motor.Hold), test.ShouldBeError, motor.NewZeroSpeedError())
	test.That(t, m.RunAngle(ctx, 90, 0, motor.Hold), test.ShouldBeError, motor.NewZeroAngleError())
	test.That(t, m.RunTime(ctx, 90, -time.Second, motor.Hold), test.ShouldBeError, motor.NewNegativeDurationError())

	stalled := errors.New("stalled")
	m.FailMoves(stalled)
	test.That(t, m.Run(ctx, 100), test.ShouldEqual, stalled)
	test.That(t, m.Calls(), test.ShouldBeEmpty)
	m.FailMoves(nil)
	test.That(t, m.Run(ctx, 100), test.ShouldBeNil)
}

func TestFakeMotorOnCall(t *testing.T) {
	var seen []string
	m := NewMotor("grip", nil)
	m.OnCall = func(c Call) { seen = append(seen, c.Op) }
	test.That(t, m.Run(context.Background(), -500), test.ShouldBeNil)
	test.That(t, m.Stop(context.Background()), test.ShouldBeNil)
	test.That(t, seen, test.ShouldResemble, []string{"run", "stop"})
}
