package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type LogLevel int

const (
	LogLevelError LogLevel = 0
	LogLevelInfo  LogLevel = 1
	LogLevelDebug LogLevel = 2
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelInfo:
		return "info"
	case LogLevelDebug:
		return "debug"
	case LogLevelError:
		return "error"
	default:
		return ""
	}
}

func (l LogLevel) logrusLevel() logrus.Level {
	switch l {
	case LogLevelDebug:
		return logrus.DebugLevel
	case LogLevelInfo:
		return logrus.InfoLevel
	default:
		return logrus.ErrorLevel
	}
}

func ParseLogLevel(str string) (LogLevel, error) {
	var m = map[string]LogLevel{
		"error": LogLevelError,
		"info":  LogLevelInfo,
		"debug": LogLevelDebug,
	}
	if result, ok := m[str]; ok {
		return result, nil
	}
	return LogLevelError, fmt.Errorf("invalid log level: %q", str)
}

// LogOutput is a log destination: stdout when no file path is set.
type LogOutput struct {
	File     *os.File
	filePath string
}

func NewLogOutput(filePath string) LogOutput {
	return LogOutput{
		filePath: filePath,
	}
}

func (o *LogOutput) Start() error {
	if o.filePath == "" {
		o.File = os.Stdout
		return nil
	}

	var err error
	o.File, err = os.OpenFile(o.filePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("can't open log file %s: %s", o.filePath, err)
	}
	return nil
}

func (o *LogOutput) Shutdown() {
	if o.File != nil && o.File != os.Stdout {
		_ = o.File.Close()
	}
}

func (o LogOutput) Writer() io.Writer {
	if o.File == nil {
		return os.Stdout
	}
	return o.File
}

// Logger prefixes every message with the component it belongs to.
// Forked loggers share the parent's logrus instance.
type Logger struct {
	prefix string
	entry  *logrus.Logger
	output LogOutput
	Level  LogLevel
}

func NewLogger(prefix string, output LogOutput, level LogLevel) *Logger {
	l := logrus.New()
	l.SetOutput(output.Writer())
	l.SetLevel(level.logrusLevel())
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})

	return &Logger{
		prefix: prefix,
		entry:  l,
		output: output,
		Level:  level,
	}
}

func (l *Logger) Errorf(f string, args ...interface{}) {
	l.Logf(LogLevelError, f, args...)
}

func (l *Logger) Infof(f string, args ...interface{}) {
	l.Logf(LogLevelInfo, f, args...)
}

func (l *Logger) Debugf(f string, args ...interface{}) {
	l.Logf(LogLevelDebug, f, args...)
}

func (l *Logger) Logf(severity LogLevel, f string, args ...interface{}) {
	if l.Level < severity {
		return
	}
	l.entry.Logf(severity.logrusLevel(), l.prefix+": "+f, args...)
}

func (l *Logger) Fork(prefix string, args ...interface{}) *Logger {
	// slip the parent prefix at the front
	args = append([]interface{}{l.prefix}, args...)
	return &Logger{
		prefix: fmt.Sprintf("%s: "+prefix, args...),
		entry:  l.entry,
		output: l.output,
		Level:  l.Level,
	}
}

func (l *Logger) Prefix() string {
	return l.prefix
}

// Writer exposes the underlying destination, e.g. for request logs.
func (l *Logger) Writer() io.Writer {
	return l.output.Writer()
}
