package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. Format is "json" or "text"; unknown
// levels fall back to info.
func New(level, format string) *logrus.Logger {
	log := logrus.New()

	if lvl, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}
