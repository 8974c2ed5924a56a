// Package config defines the structures to configure a beacon remote controlled robot.
package config

import (
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"go.viam.com/beaconrc/components/feedback/soundfile"
	"go.viam.com/beaconrc/logging"
	"go.viam.com/beaconrc/services/beaconremotecontrol"
)

// A Config describes the configuration of a robot.
type Config struct {
	ConfigFilePath string                     `json:"-"`
	Robot          Robot                      `json:"robot"`
	RemoteControl  beaconremotecontrol.Config `json:"remote_control"`
	Feedback       *soundfile.Config          `json:"feedback,omitempty"`
	Log            Log                        `json:"log"`
}

// Robot names the robot variant to build and the variant's own settings.
type Robot struct {
	Model      string       `json:"model"`
	Attributes AttributeMap `json:"attributes,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (r *Robot) Validate(path string) error {
	if r.Model == "" {
		return goutils.NewConfigValidationFieldRequiredError(path, "model")
	}
	return nil
}

// Log configures the process logger.
type Log struct {
	Level string `json:"level,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (l *Log) Validate(path string) error {
	if l.Level == "" {
		return nil
	}
	if _, err := logging.LevelFromString(l.Level); err != nil {
		return goutils.NewConfigValidationError(path, err)
	}
	return nil
}

// LogLevel returns the configured level, INFO if unset.
func (l *Log) LogLevel() logging.Level {
	level, err := logging.LevelFromString(l.Level)
	if err != nil {
		return logging.INFO
	}
	return level
}

// Ensure ensures all parts of the config are valid.
func (c *Config) Ensure() error {
	if err := c.Robot.Validate("robot"); err != nil {
		return err
	}
	if err := c.RemoteControl.Validate("remote_control"); err != nil {
		return err
	}
	if c.Feedback != nil && c.Feedback.Dir == "" {
		return goutils.NewConfigValidationFieldRequiredError("feedback", "dir")
	}
	if c.Feedback != nil && (c.Feedback.Volume < 0 || c.Feedback.Volume > 1) {
		return goutils.NewConfigValidationError("feedback", errors.New("volume must be between 0 and 1"))
	}
	return c.Log.Validate("log")
}
