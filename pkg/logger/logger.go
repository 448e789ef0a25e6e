package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a JSON logger at the requested level.
func New(logLevel string) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{})

	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // fall back when the level is unknown
	}
	log.SetLevel(level)
	return log
}
