package logging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	impl struct {
		name  string
		level AtomicLevel
		inUTC bool

		appenders []Appender
	}

	// LogEntry embeds a zapcore Entry and slice of Fields.
	LogEntry struct {
		zapcore.Entry
		fields []zapcore.Field
	}
)

// skipToLogCaller is the number of frames between `runtime.Caller` and the user code that called a
// public logging method: getCaller <- newLogEntry <- format* <- emit <- Info/Debugw/... <- user.
const skipToLogCaller = 5

func (imp *impl) newLogEntry(logLevel Level, msg string) *LogEntry {
	ret := &LogEntry{}
	ret.Time = time.Now()
	ret.LoggerName = imp.name
	ret.Caller = getCaller()
	ret.Level = logLevel.AsZap()
	ret.Message = msg
	return ret
}

func (imp *impl) AddAppender(appender Appender) {
	imp.appenders = append(imp.appenders, appender)
}

func (imp *impl) Desugar() *zap.Logger {
	return imp.AsZap().Desugar()
}

func (imp *impl) SetLevel(level Level) {
	imp.level.Set(level)
}

func (imp *impl) GetLevel() Level {
	return imp.level.Get()
}

func (imp *impl) Sublogger(subname string) Logger {
	newName := subname
	if imp.name != "" {
		newName = fmt.Sprintf("%s.%s", imp.name, subname)
	}

	sublogger := &impl{
		name:      newName,
		level:     NewAtomicLevelAt(imp.level.Get()),
		inUTC:     imp.inUTC,
		appenders: imp.appenders,
	}
	registerLogger(newName, sublogger)
	return sublogger
}

func (imp *impl) Sync() error {
	var err error
	for _, appender := range imp.appenders {
		err = multierr.Combine(err, appender.Sync())
	}
	return err
}

// AsZap builds a zap logger that writes to stdout plus every appender that is also a
// `zapcore.Core` (e.g. the observer used by tests). Some third party libraries want a zap logger.
func (imp *impl) AsZap() *zap.SugaredLogger {
	config := NewLoggerConfig()
	config.Level = GlobalLogLevel
	ret := zap.Must(config.Build()).Sugar().Named(imp.name)
	for _, appender := range imp.appenders {
		core, ok := appender.(zapcore.Core)
		if !ok {
			continue
		}
		ret = ret.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, core)
		}))
	}
	return ret
}

func (imp *impl) shouldLog(logLevel Level) bool {
	if GlobalLogLevel.Level() == zapcore.DebugLevel {
		return true
	}
	return logLevel >= imp.level.Get()
}

func (imp *impl) write(entry *LogEntry) {
	if imp.inUTC {
		entry.Time = entry.Time.UTC()
	}

	for _, appender := range imp.appenders {
		if err := appender.Write(entry.Entry, entry.fields); err != nil {
			fmt.Fprint(os.Stderr, err)
		}
	}
}

// emit is the single path every public method goes through so the caller frame depth is constant.
func (imp *impl) emit(force bool, logLevel Level, build func(Level) *LogEntry) {
	if force || imp.shouldLog(logLevel) {
		imp.write(build(logLevel))
	}
}

func (imp *impl) format(args ...interface{}) func(Level) *LogEntry {
	return func(logLevel Level) *LogEntry {
		return imp.newLogEntry(logLevel, fmt.Sprint(args...))
	}
}

func (imp *impl) formatf(template string, args ...interface{}) func(Level) *LogEntry {
	return func(logLevel Level) *LogEntry {
		return imp.newLogEntry(logLevel, fmt.Sprintf(template, args...))
	}
}

// formatw turns `keysAndValues` into structured fields where the odd elements are the keys and
// their following even counterpart is the value. Values are json serialized, so only public
// struct fields are included.
func (imp *impl) formatw(msg string, keysAndValues ...interface{}) func(Level) *LogEntry {
	return func(logLevel Level) *LogEntry {
		entry := imp.newLogEntry(logLevel, msg)
		entry.fields = make([]zapcore.Field, 0, len(keysAndValues)/2)
		for keyIdx := 0; keyIdx < len(keysAndValues); keyIdx += 2 {
			var keyStr string
			if stringer, ok := keysAndValues[keyIdx].(fmt.Stringer); ok {
				keyStr = stringer.String()
			} else {
				keyStr = fmt.Sprintf("%v", keysAndValues[keyIdx])
			}

			if keyIdx+1 < len(keysAndValues) {
				entry.fields = append(entry.fields, zap.Any(keyStr, keysAndValues[keyIdx+1]))
			} else {
				entry.fields = append(entry.fields, zap.Any(keyStr, errors.New("unpaired log key")))
			}
		}
		return entry
	}
}

func (imp *impl) CDebug(ctx context.Context, args ...interface{}) {
	imp.emit(IsDebugMode(ctx), DEBUG, imp.format(args...))
}

func (imp *impl) CDebugf(ctx context.Context, template string, args ...interface{}) {
	imp.emit(IsDebugMode(ctx), DEBUG, imp.formatf(template, args...))
}

func (imp *impl) CDebugw(ctx context.Context, msg string, keysAndValues ...interface{}) {
	imp.emit(IsDebugMode(ctx), DEBUG, imp.formatw(msg, keysAndValues...))
}

func (imp *impl) Debug(args ...interface{}) {
	imp.emit(false, DEBUG, imp.format(args...))
}

func (imp *impl) Debugf(template string, args ...interface{}) {
	imp.emit(false, DEBUG, imp.formatf(template, args...))
}

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.emit(false, DEBUG, imp.formatw(msg, keysAndValues...))
}

func (imp *impl) Info(args ...interface{}) {
	imp.emit(false, INFO, imp.format(args...))
}

func (imp *impl) Infof(template string, args ...interface{}) {
	imp.emit(false, INFO, imp.formatf(template, args...))
}

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	imp.emit(false, INFO, imp.formatw(msg, keysAndValues...))
}

func (imp *impl) Warn(args ...interface{}) {
	imp.emit(false, WARN, imp.format(args...))
}

func (imp *impl) Warnf(template string, args ...interface{}) {
	imp.emit(false, WARN, imp.formatf(template, args...))
}

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.emit(false, WARN, imp.formatw(msg, keysAndValues...))
}

func (imp *impl) Error(args ...interface{}) {
	imp.emit(false, ERROR, imp.format(args...))
}

func (imp *impl) Errorf(template string, args ...interface{}) {
	imp.emit(false, ERROR, imp.formatf(template, args...))
}

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.emit(false, ERROR, imp.formatw(msg, keysAndValues...))
}

// These Fatal* methods log as errors then exit the process.
func (imp *impl) Fatal(args ...interface{}) {
	imp.emit(true, ERROR, imp.format(args...))
	os.Exit(1)
}

func (imp *impl) Fatalf(template string, args ...interface{}) {
	imp.emit(true, ERROR, imp.formatf(template, args...))
	os.Exit(1)
}

func (imp *impl) Fatalw(msg string, keysAndValues ...interface{}) {
	imp.emit(true, ERROR, imp.formatw(msg, keysAndValues...))
	os.Exit(1)
}

// Return example: "logging/impl_test.go:36".
func getCaller() zapcore.EntryCaller {
	var ok bool
	var entryCaller zapcore.EntryCaller
	entryCaller.PC, entryCaller.File, entryCaller.Line, ok = runtime.Caller(skipToLogCaller)
	if !ok {
		return entryCaller
	}
	entryCaller.Defined = true

	if runtimeFunc := runtime.FuncForPC(entryCaller.PC); runtimeFunc != nil {
		entryCaller.Function = runtimeFunc.Name()
	}
	return entryCaller
}
