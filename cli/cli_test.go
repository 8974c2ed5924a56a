package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/samber/lo"
	"go.viam.com/test"

	"go.viam.com/beaconrc/components/beacon/replay"
	"go.viam.com/beaconrc/components/feedback"
	feedbackfake "go.viam.com/beaconrc/components/feedback/fake"
	"go.viam.com/beaconrc/components/feedback/soundfile"
	"go.viam.com/beaconrc/components/motor/sim"
	touchfake "go.viam.com/beaconrc/components/touch/fake"
	"go.viam.com/beaconrc/config"
	"go.viam.com/beaconrc/logging"
	"go.viam.com/beaconrc/robots"
	"go.viam.com/beaconrc/robots/ev3rstorm"
	rc "go.viam.com/beaconrc/services/beaconremotecontrol"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func TestDirectiveTable(t *testing.T) {
	out := DirectiveTable(1000, 90, true)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header with its borders plus 32 rows and the closing border
	test.That(t, len(lines), test.ShouldEqual, 3+32+1)
	test.That(t, out, test.ShouldContainSubstring, "arc_left_forward")
	test.That(t, out, test.ShouldContainSubstring, "{left_up,right_up}")
	test.That(t, out, test.ShouldContainSubstring, "action")

	driveOnly := DirectiveTable(1000, 90, false)
	test.That(t, driveOnly, test.ShouldNotContainSubstring, "| action")
}

func TestTableAndModelsCommands(t *testing.T) {
	var out bytes.Buffer
	app := NewApp(&out)
	test.That(t, app.Run([]string{"beaconrc", "table", "--speed", "500", "--turn-rate", "45"}), test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "-500")
	test.That(t, out.String(), test.ShouldContainSubstring, "-45")

	out.Reset()
	test.That(t, app.Run([]string{"beaconrc", "models"}), test.ShouldBeNil)
	for _, model := range []string{"ev3rstorm", "gripp3r", "r3ptar", "track3r"} {
		test.That(t, out.String(), test.ShouldContainSubstring, model)
	}
}

func TestRunCommand(t *testing.T) {
	configPath := writeFile(t, "robot.json", `{
		"robot": {"model": "ev3rstorm"},
		"remote_control": {"tick_interval": "1ms"},
		"log": {"level": "warn"}
	}`)
	scriptPath := writeFile(t, "presses.jsonl", strings.Join([]string{
		`# drive forward then turn`,
		`{"buttons": ["left_up", "right_up"], "repeat": 5}`,
		`{"channel": 1, "buttons": ["right_up"], "repeat": 2}`,
		`{"buttons": []}`,
	}, "\n"))

	var out bytes.Buffer
	app := NewApp(&out)
	err := app.Run([]string{"beaconrc", "run", "--no-watch", "--config", configPath, "--script", scriptPath})
	test.That(t, err, test.ShouldBeNil)

	err = app.Run([]string{"beaconrc", "run", "--no-watch", "--config", configPath, "--script", filepath.Join(t.TempDir(), "nope")})
	test.That(t, err, test.ShouldNotBeNil)

	badConfig := writeFile(t, "bad.json", `{"robot": {"model": "hovercraft"}}`)
	err = app.Run([]string{"beaconrc", "run", "--no-watch", "--config", badConfig, "--script", scriptPath})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown robot model "hovercraft"`)
}

func TestSimulateStopsOnContext(t *testing.T) {
	logger := logging.NewTestLogger(t)
	sensor, err := replay.NewSensor(strings.NewReader(`{"buttons": ["left_up"], "repeat": 100000}`))
	test.That(t, err, test.ShouldBeNil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Simulate(ctx, SimulateOptions{
		Config: &config.Config{Robot: config.Robot{Model: ev3rstorm.Model}},
		Sensor: sensor,
	}, logger)
	test.That(t, err, test.ShouldBeNil)
}

func TestSimulatedHardware(t *testing.T) {
	logger := logging.NewTestLogger(t)
	reg, ok := robots.Lookup(ev3rstorm.Model)
	test.That(t, ok, test.ShouldBeTrue)

	hw := SimulatedHardware(reg, nil, nil, nil, logger)
	for _, port := range []string{robots.PortA, robots.PortB, robots.PortC} {
		_, ok := hw[port].(*sim.Motor)
		test.That(t, ok, test.ShouldBeTrue)
	}
	_, ok = hw[robots.PortS1].(*touchfake.Sensor)
	test.That(t, ok, test.ShouldBeTrue)
	_, ok = hw[robots.PortS3].(*touchfake.ColorSensor)
	test.That(t, ok, test.ShouldBeTrue)
}

func TestApplyConfig(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	ctx := context.Background()
	sensor, err := replay.NewSensor(strings.NewReader(""))
	test.That(t, err, test.ShouldBeNil)

	cfg := &config.Config{Robot: config.Robot{Model: ev3rstorm.Model}}
	reg, _ := robots.Lookup(ev3rstorm.Model)
	hw := SimulatedHardware(reg, sensor, feedbackfake.NewDevice(nil), nil, logger)
	robot, err := robots.Build(ctx, ev3rstorm.Model, hw, nil, logger)
	test.That(t, err, test.ShouldBeNil)
	svc, err := rc.New(ctx, robot.Deps, robot.RemoteControlConfig(cfg.RemoteControl), logger)
	test.That(t, err, test.ShouldBeNil)

	changed := &config.Config{
		Robot:         config.Robot{Model: "track3r"},
		RemoteControl: rc.Config{SpeedMMPerSec: lo.ToPtr(300.0)},
	}
	applyConfig(ctx, svc, robot, cfg, changed, logger)
	test.That(t, logs.FilterMessage("changing the robot model needs a restart").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("applied config change").Len(), test.ShouldEqual, 1)

	// ev3rstorm has no beacon action to switch on
	changed.RemoteControl.Mode = "both"
	applyConfig(ctx, svc, robot, cfg, changed, logger)
	test.That(t, logs.FilterMessage("failed to apply config change").Len(), test.ShouldEqual, 1)
}

func TestNewSpeaker(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewTestLogger(t)

	speaker, err := newSpeaker(nil, logger)
	test.That(t, err, test.ShouldBeNil)
	_, ok := speaker.(*feedbackfake.Device)
	test.That(t, ok, test.ShouldBeTrue)

	dir := t.TempDir()
	tone := &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:   []float64{0.5, -0.5, 0.5, -0.5},
	}
	test.That(t, soundfile.WriteWAV(filepath.Join(dir, "laughing_1.wav"), tone, 16), test.ShouldBeNil)

	out := filepath.Join(t.TempDir(), "played")
	speaker, err = newSpeaker(&soundfile.Config{Dir: dir, OutDir: out}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, speaker.PlayCue(ctx, feedback.Laughing1), test.ShouldBeNil)
	_, err = os.Stat(filepath.Join(out, "001-laughing_1.wav"))
	test.That(t, err, test.ShouldBeNil)

	_, err = newSpeaker(&soundfile.Config{Dir: filepath.Join(dir, "missing")}, logger)
	test.That(t, err, test.ShouldNotBeNil)
}
