package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/beaconrc/logging"
	"go.viam.com/beaconrc/utils"
)

// DefaultWatchDebounce is how long a config file must stay unchanged before it is re-read.
const DefaultWatchDebounce = 200 * time.Millisecond

// A Watcher watches a config file and emits the new config each time the file changes. Bursts of
// writes (editors often truncate, write and rename) are coalesced into a single read.
type Watcher struct {
	path     string
	logger   logging.Logger
	fsw      *fsnotify.Watcher
	debounce func(f func())
	configs  chan *Config
	workers  utils.StoppableWorkers
}

// NewWatcher starts watching the config file at path. A non-positive wait means DefaultWatchDebounce.
func NewWatcher(path string, wait time.Duration, logger logging.Logger) (*Watcher, error) {
	if wait <= 0 {
		wait = DefaultWatchDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating config file watcher")
	}
	// watch the directory so replacing the file by rename is still seen
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return nil, multierr.Combine(errors.Wrapf(err, "watching directory of config %s", path), fsw.Close())
	}
	w := &Watcher{
		path:     abs,
		logger:   logger,
		fsw:      fsw,
		debounce: debounce.New(wait),
		configs:  make(chan *Config, 1),
	}
	w.workers = utils.NewStoppableWorkers(w.watch)
	return w, nil
}

// Config returns the channel new configs are sent on.
func (w *Watcher) Config() <-chan *Config {
	return w.configs
}

func (w *Watcher) watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.debounce(func() { w.reload(ctx) })
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	cfg, err := Read(ctx, w.path, w.logger)
	if err != nil {
		w.logger.Warnw("ignoring invalid config change", "path", w.path, "error", err)
		return
	}
	w.logger.Infow("config changed", "path", w.path)
	select {
	case <-ctx.Done():
	case w.configs <- cfg:
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	w.workers.Stop()
	return err
}
