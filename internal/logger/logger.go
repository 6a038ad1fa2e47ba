package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
	log.SetOutput(os.Stdout)
}

// Get returns the shared application logger.
func Get() *logrus.Logger {
	return log
}

// WithModule returns an entry tagged with the business module emitting it.
func WithModule(name string) *logrus.Entry {
	return log.WithField("module", name)
}
