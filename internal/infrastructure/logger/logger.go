package logger

import (
	"io"
	"os"
	"strings"
	"time"

	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
	"github.com/sirupsen/logrus"
)

// AppLogger implements IAppLogger on top of logrus.
type AppLogger struct {
	entry *logrus.Entry
}

// Options configures NewAppLogger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json or text
	Out    io.Writer
}

// NewAppLogger creates a logger writing to opts.Out (stdout when nil).
func NewAppLogger(opts Options) usecasecontract.IAppLogger {
	l := logrus.New()
	l.Out = opts.Out
	if l.Out == nil {
		l.Out = os.Stdout
	}
	if strings.EqualFold(opts.Format, "text") {
		l.Formatter = &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339}
	} else {
		l.Formatter = &logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano}
	}
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return &AppLogger{entry: logrus.NewEntry(l)}
}

// NewNopLogger discards everything. Used by tests.
func NewNopLogger() usecasecontract.IAppLogger {
	return NewAppLogger(Options{Level: "panic", Out: io.Discard})
}

func (l *AppLogger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *AppLogger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *AppLogger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }

// Warningf is kept alongside Warnf since both spellings are used by callers.
func (l *AppLogger) Warningf(format string, args ...interface{}) { l.entry.Warningf(format, args...) }
func (l *AppLogger) Errorf(format string, args ...interface{})   { l.entry.Errorf(format, args...) }
func (l *AppLogger) Fatalf(format string, args ...interface{})   { l.entry.Fatalf(format, args...) }

func (l *AppLogger) WithField(key string, value interface{}) usecasecontract.IAppLogger {
	return &AppLogger{entry: l.entry.WithField(key, value)}
}
