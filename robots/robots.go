// Package robots contains the registry of robot models the beacon remote control can drive. Each
// model lives in its own package and registers itself in init; import robots/register to get all
// of them.
package robots

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/beaconrc/components/motor"
	"go.viam.com/beaconrc/config"
	"go.viam.com/beaconrc/logging"
	"go.viam.com/beaconrc/services/beaconremotecontrol"
	"go.viam.com/beaconrc/utils"
)

// Port names used as Hardware keys. Motors are on A to D and sensors on S1 to S4.
const (
	PortA = "A"
	PortB = "B"
	PortC = "C"
	PortD = "D"

	PortS1 = "S1"
	PortS2 = "S2"
	PortS3 = "S3"
	PortS4 = "S4"

	// Speaker is where the feedback device lives.
	Speaker = "speaker"
)

// Hardware maps port names to the devices plugged into them.
type Hardware map[string]interface{}

// FromHardware returns the device on the given port as a T.
func FromHardware[T any](hw Hardware, port string) (T, error) {
	var zero T
	dev, ok := hw[port]
	if !ok || dev == nil {
		return zero, utils.DependencyNotFoundError(port)
	}
	typed, ok := dev.(T)
	if !ok {
		return zero, utils.DependencyTypeError(port, (*T)(nil), dev)
	}
	return typed, nil
}

// Motors returns the motors on the given ports, in order.
func Motors(hw Hardware, ports ...string) ([]motor.Motor, error) {
	motors := make([]motor.Motor, 0, len(ports))
	for _, port := range ports {
		m, err := FromHardware[motor.Motor](hw, port)
		if err != nil {
			return nil, err
		}
		motors = append(motors, m)
	}
	return motors, nil
}

// A Robot is a model assembled on some hardware, ready to be handed to the remote control service.
type Robot struct {
	Model string
	Deps  beaconremotecontrol.Dependencies
	// Defaults are the remote control settings the model was designed with.
	Defaults beaconremotecontrol.Config
	// Startup runs once before the control loop starts. May be nil.
	Startup beaconremotecontrol.Sequence
}

// RemoteControlConfig fills the fields conf leaves unset with the model's defaults.
func (r *Robot) RemoteControlConfig(conf beaconremotecontrol.Config) beaconremotecontrol.Config {
	if conf.Channel == 0 {
		conf.Channel = r.Defaults.Channel
	}
	if conf.SpeedMMPerSec == nil {
		conf.SpeedMMPerSec = r.Defaults.SpeedMMPerSec
	}
	if conf.TurnRateDegsPerSec == nil {
		conf.TurnRateDegsPerSec = r.Defaults.TurnRateDegsPerSec
	}
	if conf.TickInterval == "" {
		conf.TickInterval = r.Defaults.TickInterval
	}
	if conf.Mode == "" {
		conf.Mode = r.Defaults.Mode
	}
	return conf
}

// A Constructor builds a model on the given hardware.
type Constructor func(ctx context.Context, hw Hardware, attrs config.AttributeMap, logger logging.Logger) (*Robot, error)

// A Registration describes how to build a model.
type Registration struct {
	Constructor Constructor
	Description string

	// The ports the model expects devices on, so simulated hardware can be laid out for it.
	Motors       []string
	TouchSensors []string
	ColorSensors []string
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Registration{}
)

// Register registers a model. It panics if the model is registered twice or has no constructor.
func Register(model string, reg Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, old := registry[model]; old {
		panic(errors.Errorf("trying to register two robots with same model: %q", model))
	}
	if reg.Constructor == nil {
		panic(errors.Errorf("cannot register a nil constructor for model: %q", model))
	}
	registry[model] = reg
}

// Deregister removes a previously registered model.
func Deregister(model string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, model)
}

// Lookup looks up a registration by model.
func Lookup(model string) (Registration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	reg, ok := registry[model]
	return reg, ok
}

// Models returns the registered model names in order.
func Models() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	models := lo.Keys(registry)
	sort.Strings(models)
	return models
}

// Build builds the named model.
func Build(ctx context.Context, model string, hw Hardware, attrs config.AttributeMap, logger logging.Logger) (*Robot, error) {
	reg, ok := Lookup(model)
	if !ok {
		return nil, errors.Errorf("unknown robot model %q, known models are %v", model, Models())
	}
	r, err := reg.Constructor(ctx, hw, attrs, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s", model)
	}
	r.Model = model
	return r, nil
}
