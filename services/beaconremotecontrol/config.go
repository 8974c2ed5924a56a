package beaconremotecontrol

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"go.viam.com/beaconrc/components/beacon"
)

// Mode says which subsystems the beacon controls.
type Mode string

// The known modes.
const (
	// ModeDrive only drives; the Beacon button is ignored.
	ModeDrive Mode = "drive"
	// ModeAction only triggers the action.
	ModeAction Mode = "action"
	// ModeBoth drives and triggers the action.
	ModeBoth Mode = "both"
)

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(name)); m {
	case ModeDrive, ModeAction, ModeBoth:
		return m, nil
	}
	return "", errors.Errorf("unknown remote control mode %q", name)
}

// Drives reports whether the mode drives the base.
func (m Mode) Drives() bool {
	return m == ModeDrive || m == ModeBoth
}

// Acts reports whether the mode triggers the action.
func (m Mode) Acts() bool {
	return m == ModeAction || m == ModeBoth
}

// Defaults applied to unset config fields.
const (
	DefaultChannel      = 1
	DefaultSpeed        = 1000.0
	DefaultTurnRate     = 90.0
	DefaultTickInterval = time.Millisecond
	DefaultMode         = ModeBoth
)

// Config describes how to configure the service. Unset fields take the defaults above. Speed
// and turn rate are pointers so that an explicit 0 is kept: a turn rate of 0 only drives
// straight.
type Config struct {
	Channel            int      `json:"channel,omitempty"`
	SpeedMMPerSec      *float64 `json:"speed_mm_per_sec,omitempty"`
	TurnRateDegsPerSec *float64 `json:"turn_rate_degs_per_sec,omitempty"`
	TickInterval       string   `json:"tick_interval,omitempty"`
	Mode               string   `json:"mode,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if conf.Channel != 0 {
		if err := beacon.ValidateChannel(conf.Channel); err != nil {
			return goutils.NewConfigValidationError(path, err)
		}
	}
	if conf.SpeedMMPerSec != nil && *conf.SpeedMMPerSec < 0 {
		return goutils.NewConfigValidationError(path, errors.New("speed_mm_per_sec cannot be negative"))
	}
	if conf.TurnRateDegsPerSec != nil && *conf.TurnRateDegsPerSec < 0 {
		return goutils.NewConfigValidationError(path, errors.New("turn_rate_degs_per_sec cannot be negative"))
	}
	if conf.TickInterval != "" {
		d, err := time.ParseDuration(conf.TickInterval)
		if err != nil {
			return goutils.NewConfigValidationError(path, errors.Wrap(err, "tick_interval"))
		}
		if d < 0 {
			return goutils.NewConfigValidationError(path, errors.New("tick_interval cannot be negative"))
		}
	}
	if conf.Mode != "" {
		if _, err := ParseMode(conf.Mode); err != nil {
			return goutils.NewConfigValidationError(path, err)
		}
	}
	return nil
}

// settings is a validated Config with defaults filled in.
type settings struct {
	channel      int
	speed        float64
	turnRate     float64
	tickInterval time.Duration
	mode         Mode
}

func (conf *Config) settings() (settings, error) {
	if err := conf.Validate("remote_control"); err != nil {
		return settings{}, err
	}
	s := settings{
		channel:      conf.Channel,
		speed:        DefaultSpeed,
		turnRate:     DefaultTurnRate,
		tickInterval: DefaultTickInterval,
		mode:         DefaultMode,
	}
	if s.channel == 0 {
		s.channel = DefaultChannel
	}
	if conf.SpeedMMPerSec != nil {
		s.speed = *conf.SpeedMMPerSec
	}
	if conf.TurnRateDegsPerSec != nil {
		s.turnRate = *conf.TurnRateDegsPerSec
	}
	if conf.TickInterval != "" {
		// already checked by Validate
		s.tickInterval, _ = time.ParseDuration(conf.TickInterval)
	}
	if conf.Mode != "" {
		s.mode, _ = ParseMode(conf.Mode)
	}
	return s, nil
}
