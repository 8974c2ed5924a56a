package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/beaconrc/logging"
)

// Read reads a config from the given file. Environment variables such as ${HOME} are expanded
// before the file is parsed.
func Read(
	ctx context.Context,
	filePath string,
	logger logging.Logger,
) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", filePath)
	}

	return FromReader(ctx, filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(
	ctx context.Context,
	originalPath string,
	r io.Reader,
	logger logging.Logger,
) (*Config, error) {
	cfg := Config{ConfigFilePath: originalPath}
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal config")
	}
	if err := cfg.Ensure(); err != nil {
		return nil, err
	}
	logger.CDebugw(ctx, "read config", "path", originalPath, "model", cfg.Robot.Model)
	return &cfg, nil
}
