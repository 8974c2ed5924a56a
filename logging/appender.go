package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap/zapcore"
)

// DefaultTimeFormatStr is the default time format string for log appenders.
const DefaultTimeFormatStr = "2006-01-02T15:04:05.000Z0700"

// Appender is an output for log entries. This is a subset of the `zapcore.Core` interface, so a
// zap observer core can be used as an appender directly.
type Appender interface {
	// Write submits a structured log entry to the appender for logging.
	Write(zapcore.Entry, []zapcore.Field) error
	// Sync is for signaling that any buffered logs to `Write` should be flushed. E.g: at shutdown.
	Sync() error
}

// ConsoleAppender will create human readable logs that match the formatting expected of a
// `zap.NewDevelopmentConfig`, with tab separated time, level, caller, message and a json blob of
// the structured fields.
type ConsoleAppender struct {
	io.Writer
}

// NewStdoutAppender creates a new appender that outputs to stdout.
func NewStdoutAppender() ConsoleAppender {
	return ConsoleAppender{os.Stdout}
}

// NewWriterAppender creates a new appender that outputs to the input writer.
func NewWriterAppender(writer io.Writer) ConsoleAppender {
	return ConsoleAppender{writer}
}

func newConsoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(DefaultTimeFormatStr),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// Write outputs the log entry to the underlying stream.
func (appender ConsoleAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	encoder := zapcore.NewConsoleEncoder(newConsoleEncoderConfig())
	buf, err := encoder.EncodeEntry(entry, fields)
	if err != nil {
		// Fall back to at least getting the message out.
		fmt.Fprintln(appender.Writer, entry.Message)
		return err
	}
	defer buf.Free()

	_, err = appender.Writer.Write(buf.Bytes())
	return err
}

// Sync is a no-op.
func (appender ConsoleAppender) Sync() error {
	return nil
}

func callerToString(caller *zapcore.EntryCaller) string {
	return caller.TrimmedPath()
}
