package core

import (
	log "github.com/sirupsen/logrus"
)

// NewLogger returns the logger used by the volley engine, configured at
// the given logrus level. The engine is quiet at ErrorLevel; DebugLevel
// traces every discard decision in the receive loop.
func NewLogger(level uint32) *log.Logger {
	logger := log.New()

	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	logger.SetLevel(log.Level(level))

	return logger
}
