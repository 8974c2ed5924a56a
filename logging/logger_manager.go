package logging

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// loggerRegistry tracks every named logger so the level of a running service can be changed when
// its config is reloaded.
type loggerRegistry struct {
	mu      sync.RWMutex
	loggers map[string]Logger
}

var loggerManager = newLoggerManager()

func newLoggerManager() *loggerRegistry {
	return &loggerRegistry{loggers: make(map[string]Logger)}
}

func (lr *loggerRegistry) register(name string, logger Logger) {
	if name == "" {
		return
	}
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.loggers[name] = logger
}

func (lr *loggerRegistry) named(name string) (Logger, bool) {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	logger, ok := lr.loggers[name]
	return logger, ok
}

// updateLevel sets the level of `name` and every sublogger beneath it.
func (lr *loggerRegistry) updateLevel(name string, level Level) error {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	found := false
	for loggerName, logger := range lr.loggers {
		if loggerName == name || strings.HasPrefix(loggerName, name+".") {
			logger.SetLevel(level)
			found = true
		}
	}
	if !found {
		return fmt.Errorf("logger named %s not recognized", name)
	}
	return nil
}

func (lr *loggerRegistry) names() []string {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	names := make([]string, 0, len(lr.loggers))
	for name := range lr.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func registerLogger(name string, logger Logger) {
	loggerManager.register(name, logger)
}

// LoggerNamed returns the logger with the specified name if it exists.
func LoggerNamed(name string) (Logger, bool) {
	return loggerManager.named(name)
}

// UpdateLoggerLevel assigns the level to the named logger and its subloggers.
func UpdateLoggerLevel(name string, level Level) error {
	return loggerManager.updateLevel(name, level)
}

// RegisteredLoggerNames returns the sorted names of all loggers in the registry.
func RegisteredLoggerNames() []string {
	return loggerManager.names()
}
