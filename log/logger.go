package log

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// EnvLogLevel overrides the configured level when set.
const EnvLogLevel = "SKIRMISH_LOG_LEVEL"

type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var ErrInvalidLevel = errors.New("invalid log level")

func NewLevel(l string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case LevelTrace.String():
		return LevelTrace, nil
	case LevelDebug.String():
		return LevelDebug, nil
	case LevelInfo.String():
		return LevelInfo, nil
	case LevelWarn.String(), "warning":
		return LevelWarn, nil
	case LevelError.String():
		return LevelError, nil
	case LevelFatal.String():
		return LevelFatal, nil
	default:
		return LevelInfo, errors.Wrapf(ErrInvalidLevel, "%q", l)
	}
}

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		panic("invalid level")
	}
}

func (l Level) logrus() logrus.Level {
	switch l {
	case LevelTrace:
		return logrus.TraceLevel
	case LevelDebug:
		return logrus.DebugLevel
	case LevelInfo:
		return logrus.InfoLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.PanicLevel
	}
}

var currLevel = LevelWarn

var backend = newBackend()

var rootLogger = &logrusLogger{
	backend: logrus.NewEntry(backend),
}

type Logger interface {
	Trace(string, ...interface{})
	Debug(string, ...interface{})
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Fatal(string, ...interface{})
	Sub(...interface{}) Logger
}

func newBackend() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(currLevel.logrus())
	return l
}

func SetLevel(level Level) {
	currLevel = level
	backend.SetLevel(level.logrus())
}

func CurrentLevel() Level {
	return currLevel
}

// SetFormat switches between logrus' "text" and "json" formatters.
func SetFormat(format string) error {
	switch format {
	case "", "text":
		backend.SetFormatter(&logrus.TextFormatter{})
	case "json":
		backend.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Errorf("invalid log format %q", format)
	}
	return nil
}

func SetOutput(w io.Writer) {
	backend.SetOutput(w)
}

// Configure applies a level and format, letting EnvLogLevel take precedence
// over the supplied level.
func Configure(level string, format string) error {
	if env := os.Getenv(EnvLogLevel); env != "" {
		level = env
	}
	lvl, err := NewLevel(level)
	if err != nil {
		return err
	}
	SetLevel(lvl)
	return SetFormat(format)
}

func WithModule(name string) Logger {
	return rootLogger.Sub("module", name)
}

func init() {
	// set log level to trace by default in test
	if strings.HasSuffix(os.Args[0], ".test") {
		SetLevel(LevelTrace)
	}
}
