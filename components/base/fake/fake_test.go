package fake

import (
	"context"
	"testing"

	"go.viam.com/test"
)

func TestFakeBase(t *testing.T) {
	ctx := context.Background()
	b := NewBase("drive")
	test.That(t, b.Last(), test.ShouldResemble, Command{})

	test.That(t, b.Drive(ctx, 1000, -90), test.ShouldBeNil)
	moving, err := b.IsMoving(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, moving, test.ShouldBeTrue)

	test.That(t, b.Stop(ctx), test.ShouldBeNil)
	test.That(t, b.Hold(ctx), test.ShouldBeNil)
	moving, err = b.IsMoving(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, moving, test.ShouldBeFalse)

	test.That(t, b.Commands(), test.ShouldResemble, []Command{
		{Op: "drive", MMPerSec: 1000, DegsPerSec: -90},
		{Op: "stop"},
		{Op: "hold"},
	})
	test.That(t, b.Commands()[0].String(), test.ShouldEqual, "drive(1000, -90)")
	test.That(t, b.Last().String(), test.ShouldEqual, "hold")

	b.Reset()
	test.That(t, b.Commands(), test.ShouldBeEmpty)
}
