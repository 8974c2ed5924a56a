package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"go.viam.com/beaconrc/components/beacon"
	"go.viam.com/beaconrc/components/beacon/replay"
	"go.viam.com/beaconrc/components/feedback"
	feedbackfake "go.viam.com/beaconrc/components/feedback/fake"
	"go.viam.com/beaconrc/components/feedback/soundfile"
	"go.viam.com/beaconrc/components/motor/sim"
	touchfake "go.viam.com/beaconrc/components/touch/fake"
	"go.viam.com/beaconrc/config"
	"go.viam.com/beaconrc/logging"
	"go.viam.com/beaconrc/robots"
	// register robot models.
	_ "go.viam.com/beaconrc/robots/register"
	rc "go.viam.com/beaconrc/services/beaconremotecontrol"
)

// RunAction runs the configured model until the replay script ends or the process is interrupted.
func RunAction(c *cli.Context) error {
	logger := logging.NewLogger("beaconrc")
	if c.Bool(flagDebug) {
		logger = logging.NewDebugLogger("beaconrc")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Read(ctx, c.Path(flagConfig), logger)
	if err != nil {
		return err
	}
	if !c.Bool(flagDebug) {
		logger.SetLevel(cfg.Log.LogLevel())
	}
	sensor, err := replay.NewSensorFromFile(c.Path(flagScript))
	if err != nil {
		return err
	}

	var watcher *config.Watcher
	if !c.Bool(flagNoWatch) {
		watcher, err = config.NewWatcher(cfg.ConfigFilePath, 0, logger.Sublogger("config"))
		if err != nil {
			return err
		}
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Warnw("failed to stop config watcher", "error", err)
			}
		}()
	}
	return Simulate(ctx, SimulateOptions{Config: cfg, Sensor: sensor, Watcher: watcher}, logger)
}

// SimulateOptions is what Simulate needs besides a context and a logger.
type SimulateOptions struct {
	Config *config.Config
	Sensor beacon.Sensor
	// Watcher, when set, delivers config changes to apply while running.
	Watcher *config.Watcher
	// Clock drives the simulated motors and the loop. Defaults to the wall clock.
	Clock clock.Clock
}

// Simulate builds the configured model on simulated hardware and runs its control loop until ctx
// is done or the sensor reports the end of a replay script.
func Simulate(ctx context.Context, opts SimulateOptions, logger logging.Logger) (err error) {
	cfg := opts.Config
	reg, ok := robots.Lookup(cfg.Robot.Model)
	if !ok {
		return errors.Errorf("unknown robot model %q, known models are %v", cfg.Robot.Model, robots.Models())
	}
	speaker, err := newSpeaker(cfg.Feedback, logger.Sublogger("speaker"))
	if err != nil {
		return err
	}
	hw := SimulatedHardware(reg, opts.Sensor, speaker, opts.Clock, logger)
	robot, err := robots.Build(ctx, cfg.Robot.Model, hw, cfg.Robot.Attributes, logger.Sublogger(cfg.Robot.Model))
	if err != nil {
		return err
	}
	deps := robot.Deps
	deps.Clock = opts.Clock
	svc, err := rc.New(ctx, deps, robot.RemoteControlConfig(cfg.RemoteControl), logger.Sublogger("remote_control"))
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, svc.Close(context.Background()))
	}()

	if robot.Startup != nil {
		if err := robot.Startup.Run(ctx); err != nil {
			return errors.Wrap(err, "startup")
		}
	}
	logger.Infow("robot running", "model", robot.Model, "config", cfg.ConfigFilePath)

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, loopCtx := errgroup.WithContext(loopCtx)
	g.Go(func() error {
		defer cancel()
		err := svc.Run(loopCtx)
		if errors.Is(err, replay.ErrScriptDone) {
			logger.Infow("replay finished", "ticks", svc.Ticks())
			return nil
		}
		return err
	})
	if opts.Watcher != nil {
		g.Go(func() error {
			for {
				select {
				case <-loopCtx.Done():
					return nil
				case newCfg := <-opts.Watcher.Config():
					applyConfig(loopCtx, svc, robot, cfg, newCfg, logger)
				}
			}
		})
	}
	return g.Wait()
}

// applyConfig applies the parts of a changed config that can change while running.
func applyConfig(ctx context.Context, svc *rc.Service, robot *robots.Robot, old, newCfg *config.Config, logger logging.Logger) {
	if newCfg.Robot.Model != old.Robot.Model {
		logger.Warnw("changing the robot model needs a restart", "running", old.Robot.Model, "configured", newCfg.Robot.Model)
	}
	if err := svc.Reconfigure(ctx, robot.RemoteControlConfig(newCfg.RemoteControl)); err != nil {
		logger.Warnw("failed to apply config change", "error", err)
		return
	}
	logger.SetLevel(newCfg.Log.LogLevel())
	logger.Infow("applied config change")
}

// SimulatedHardware lays out simulated devices on the ports reg expects. The beacon sensor sits
// on S4.
func SimulatedHardware(
	reg robots.Registration,
	sensor beacon.Sensor,
	speaker feedback.Device,
	clk clock.Clock,
	logger logging.Logger,
) robots.Hardware {
	hw := robots.Hardware{
		robots.PortS4:  sensor,
		robots.Speaker: speaker,
	}
	for _, port := range reg.Motors {
		hw[port] = sim.NewMotor(port, sim.Config{}, clk, logger.Sublogger("motor_"+port))
	}
	for _, port := range reg.TouchSensors {
		hw[port] = &touchfake.Sensor{}
	}
	for _, port := range reg.ColorSensors {
		hw[port] = &touchfake.ColorSensor{}
	}
	return hw
}

func newSpeaker(conf *soundfile.Config, logger logging.Logger) (feedback.Device, error) {
	if conf == nil {
		return feedbackfake.NewDevice(logger), nil
	}
	lib, err := soundfile.LoadLibrary(conf.Dir)
	if err != nil {
		return nil, err
	}
	logger.Infow("loaded sounds", "dir", conf.Dir, "cues", len(lib.Cues()))
	sink, err := soundfile.NewSink(*conf, logger)
	if err != nil {
		return nil, err
	}
	return soundfile.NewDevice(lib, sink, *conf, logger)
}
