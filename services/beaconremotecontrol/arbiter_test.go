package beaconremotecontrol

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.viam.com/test"

	"go.viam.com/beaconrc/components/base/fake"
	"go.viam.com/beaconrc/logging"
	"go.viam.com/beaconrc/testutils/inject"
)

const (
	testSpeed    = 1000.0
	testTurnRate = 90.0
)

func TestApplyTable(t *testing.T) {
	const s, r = testSpeed, testTurnRate
	expected := map[Directive]DriveVector{
		Idle:             {0, 0},
		Forward:          {s, 0},
		Backward:         {-s, 0},
		PivotLeft:        {0, -r},
		PivotRight:       {0, r},
		ArcLeftForward:   {s, -r},
		ArcRightForward:  {s, r},
		ArcLeftBackward:  {-s, r},
		ArcRightBackward: {-s, -r},
		Action:           {0, 0},
	}
	test.That(t, len(expected), test.ShouldEqual, len(AllDirectives))
	for _, d := range AllDirectives {
		test.That(t, Apply(d, s, r), test.ShouldResemble, expected[d])
	}
}

func TestApplyPivotArcAsymmetry(t *testing.T) {
	// arcing left forward turns the same way as pivoting left, arcing left backward the other way
	test.That(t, Apply(ArcLeftForward, 1, 1).TurnRate, test.ShouldEqual, Apply(PivotLeft, 1, 1).TurnRate)
	test.That(t, Apply(ArcLeftBackward, 1, 1).TurnRate, test.ShouldEqual, -Apply(PivotLeft, 1, 1).TurnRate)
	test.That(t, Apply(ArcRightBackward, 1, 1).TurnRate, test.ShouldEqual, -Apply(PivotRight, 1, 1).TurnRate)

	for _, d := range AllDirectives {
		v := Apply(d, testSpeed, testTurnRate)
		test.That(t, v.IsZero(), test.ShouldEqual, d == Idle || d == Action)
	}
}

func TestArbiterDrive(t *testing.T) {
	ctx := context.Background()
	b := fake.NewBase("drive")
	a := NewArbiter(b, testSpeed, testTurnRate, logging.NewTestLogger(t))

	for _, d := range []Directive{Forward, ArcLeftForward, Idle, PivotRight, Action} {
		_, err := a.Drive(ctx, d)
		test.That(t, err, test.ShouldBeNil)
	}
	want := []fake.Command{
		{Op: "drive", MMPerSec: 1000},
		{Op: "drive", MMPerSec: 1000, DegsPerSec: -90},
		{Op: "stop"},
		{Op: "drive", DegsPerSec: 90},
		{Op: "stop"},
	}
	if diff := cmp.Diff(want, b.Commands()); diff != "" {
		t.Errorf("unexpected base commands (-want +got):\n%s", diff)
	}

	a.SetSpeeds(200, 45)
	v, err := a.Drive(ctx, Backward)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldResemble, DriveVector{-200, 0})
	speed, turnRate := a.Speeds()
	test.That(t, speed, test.ShouldEqual, 200)
	test.That(t, turnRate, test.ShouldEqual, 45)
}

func TestArbiterErrors(t *testing.T) {
	ctx := context.Background()
	b := &inject.Base{Base: fake.NewBase("drive")}
	b.DriveFunc = func(ctx context.Context, mmPerSec, degsPerSec float64) error {
		return errors.New("motor unplugged")
	}
	b.StopFunc = func(ctx context.Context) error {
		return errors.New("brake failed")
	}
	a := NewArbiter(b, testSpeed, testTurnRate, logging.NewTestLogger(t))

	_, err := a.Drive(ctx, ArcRightForward)
	test.That(t, err, test.ShouldBeError, "driving base (1000, 90) for arc_right_forward: motor unplugged")

	v, err := a.Drive(ctx, Idle)
	test.That(t, err, test.ShouldBeError, "stopping base for idle: brake failed")
	test.That(t, v.IsZero(), test.ShouldBeTrue)
}
