// Package applog sets up structured logging the way the teacher's
// application.go does it: a single *logrus.Logger, level selected by a
// verbose flag, logrus.Fields for structured context everywhere.
package applog

import "github.com/sirupsen/logrus"

// New constructs a logrus.Logger at Info level, or Debug level when
// verbose is set.
func New(verbose bool) *logrus.Logger {
	logger := logrus.New()
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
