package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Fields is an alias so callers don't need to import logrus.
type Fields = logrus.Fields

var base = logrus.New()

func init() {
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	base.SetLevel(logrus.InfoLevel)
}

// Configure sets level and format. Production logs are JSON.
func Configure(level string, production bool) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)

	if production {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// SetOutput redirects all log output, used by tests.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

func Logger() *logrus.Logger {
	return base
}

func Info(format string, v ...interface{}) {
	base.Infof(format, v...)
}

func Error(format string, v ...interface{}) {
	base.Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	base.Debugf(format, v...)
}

func Warn(format string, v ...interface{}) {
	base.Warnf(format, v...)
}

func Fatal(format string, v ...interface{}) {
	base.Fatalf(format, v...)
}

func WithFields(fields Fields) *logrus.Entry {
	return base.WithFields(fields)
}

// WithContext prefixes a message with the caller location and an optional context value.
func WithContext(ctx interface{}, format string, v ...interface{}) string {
	_, file, line, _ := runtime.Caller(1)
	contextStr := fmt.Sprintf("%v:%d", file, line)
	if ctx != nil {
		contextStr = fmt.Sprintf("%v - %v", contextStr, ctx)
	}
	return fmt.Sprintf("[%s] %s", contextStr, fmt.Sprintf(format, v...))
}

// LogMutationError records a failed store write without failing the caller.
func LogMutationError(resource, id, action string, err error) {
	base.WithFields(logrus.Fields{
		"resource": resource,
		"id":       id,
		"action":   action,
	}).Warnf("mutation failed: %v", err)
}
