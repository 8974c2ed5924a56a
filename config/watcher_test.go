package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	"go.viam.com/test"

	"go.viam.com/beaconrc/logging"
)

func TestWatcher(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	path := filepath.Join(t.TempDir(), "robot.json")
	write := func(contents string) {
		t.Helper()
		test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	}
	write(`{"robot": {"model": "track3r"}}`)

	w, err := NewWatcher(path, 20*time.Millisecond, logger)
	test.That(t, err, test.ShouldBeNil)
	defer func() {
		test.That(t, w.Close(), test.ShouldBeNil)
	}()

	write(`{"robot": {"model": "track3r"}, "remote_control": {"speed_mm_per_sec": 400}}`)
	select {
	case conf := <-w.Config():
		test.That(t, conf.RemoteControl.SpeedMMPerSec, test.ShouldResemble, lo.ToPtr(400.0))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config change")
	}

	// an invalid edit is logged and skipped
	write(`{"robot": {}}`)
	deadline := time.Now().Add(5 * time.Second)
	for logs.FilterMessage("ignoring invalid config change").Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for invalid config to be noticed")
		}
		time.Sleep(10 * time.Millisecond)
	}
	select {
	case conf := <-w.Config():
		t.Fatalf("unexpected config %+v", conf)
	default:
	}

	// unrelated files in the same directory are ignored
	test.That(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.json"), []byte("{}"), 0o600), test.ShouldBeNil)
	select {
	case conf := <-w.Config():
		t.Fatalf("unexpected config %+v", conf)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	logger := logging.NewTestLogger(t)
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "robot.json"), 0, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "watching directory")
}
