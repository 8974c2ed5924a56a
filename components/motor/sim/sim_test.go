package sim

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"

	"go.viam.com/beaconrc/components/motor"
	"go.viam.com/beaconrc/logging"
)

// advanceUntil keeps moving the mock clock forward until done is closed.
func advanceUntil(t *testing.T, mock *clock.Mock, done <-chan error) error {
	t.Helper()
	for i := 0; i < 10000; i++ {
		select {
		case err := <-done:
			return err
		default:
			mock.Add(10 * time.Millisecond)
		}
	}
	t.Fatal("move never finished")
	return nil
}

func TestRunAngleTakesTime(t *testing.T) {
	mock := clock.NewMock()
	m := NewMotor("medium", Config{}, mock, logging.NewTestLogger(t))
	start := mock.Now()

	done := make(chan error, 1)
	go func() {
		done <- m.RunAngle(context.Background(), 1000, 3*360, motor.Hold)
	}()
	test.That(t, advanceUntil(t, mock, done), test.ShouldBeNil)

	test.That(t, mock.Now().Sub(start), test.ShouldBeGreaterThanOrEqualTo, 1080*time.Millisecond)
	test.That(t, m.Angle(), test.ShouldAlmostEqual, 1080, 1e-6)
	test.That(t, m.Holding(), test.ShouldBeTrue)
	moving, err := m.IsMoving(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, moving, test.ShouldBeFalse)
}

func TestRunTimeNegative(t *testing.T) {
	mock := clock.NewMock()
	m := NewMotor("grip", Config{}, mock, logging.NewTestLogger(t))

	done := make(chan error, 1)
	go func() {
		done <- m.RunTime(context.Background(), -500, time.Second, motor.Brake)
	}()
	test.That(t, advanceUntil(t, mock, done), test.ShouldBeNil)
	test.That(t, m.Angle(), test.ShouldAlmostEqual, -500, 1e-6)
	test.That(t, m.Holding(), test.ShouldBeFalse)
}

func TestRunClampsAndIntegrates(t *testing.T) {
	mock := clock.NewMock()
	m := NewMotor("left", Config{MaxSpeed: 100}, mock, logging.NewTestLogger(t))
	test.That(t, m.Run(context.Background(), 500), test.ShouldBeNil)
	mock.Add(2 * time.Second)
	test.That(t, m.Angle(), test.ShouldAlmostEqual, 200, 1e-6)
	test.That(t, m.Stop(context.Background()), test.ShouldBeNil)
	mock.Add(time.Second)
	test.That(t, m.Angle(), test.ShouldAlmostEqual, 200, 1e-6)
}

func TestMoveInterruptedByCancel(t *testing.T) {
	m := NewMotor("medium", Config{}, clock.New(), logging.NewTestLogger(t))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := m.RunTime(ctx, 100, time.Minute, motor.Hold)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "interrupted")
	moving, _ := m.IsMoving(context.Background())
	test.That(t, moving, test.ShouldBeFalse)
}
