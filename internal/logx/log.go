// Package logx provides the structured logger shared by every transport and
// command in this module.
package logx

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Log is the package-level logger. Callers that want request-scoped fields
// should derive an entry from it with WithField/WithFields rather than
// constructing their own logrus.Logger.
var Log = logrus.New()

func init() {
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Log.SetLevel(logrus.InfoLevel)
}

// SetLevel parses level (e.g. "debug", "info", "warn", "error") and applies
// it to the package logger. An unrecognized level is an error and the
// current level is left unchanged.
func SetLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Log.SetLevel(parsed)
	return nil
}

// SetOutput redirects the package logger's output.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}

// SetJSONFormat switches the package logger to JSON-formatted entries, for
// deployments that ship logs to a collector rather than a terminal.
func SetJSONFormat() {
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// WithField is a shorthand for Log.WithField.
func WithField(key string, value any) *logrus.Entry {
	return Log.WithField(key, value)
}

// WithFields is a shorthand for Log.WithFields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Log.WithFields(fields)
}

// WithDevice returns an entry tagged with the device serial under
// investigation, for correlating log lines across a read or write.
func WithDevice(serial string) *logrus.Entry {
	return Log.WithField("serial", serial)
}

// WithOperation returns an entry tagged with the high-level operation name
// (e.g. "read_runtime", "write_parameters").
func WithOperation(op string) *logrus.Entry {
	return Log.WithField("op", op)
}
