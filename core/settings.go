package core

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Settings contains all configurable properties of a volley.
type Settings struct {
	// Count is the number of echo requests sent in the volley.
	Count int

	// PayloadSize is the number of payload bytes carried by each echo request,
	// on top of the 8-byte ICMP header.
	PayloadSize int

	// Interval is the pause between two consecutive sends within the volley.
	Interval time.Duration

	// Timeout is the maximum time to wait for the reply of a single request.
	Timeout time.Duration

	// LoggingLevel is the logrus level used by the engine logger.
	LoggingLevel uint32
}

// DefaultSettings returns the default settings for a volley, change as you wish.
func DefaultSettings() *Settings {
	return &Settings{
		Count:        1000,
		PayloadSize:  64,
		Interval:     10 * time.Millisecond,
		Timeout:      time.Second,
		LoggingLevel: uint32(log.ErrorLevel),
	}
}

// validate returns an error describing the first invalid property, if any.
func (s *Settings) validate() error {
	if s.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", s.Count)
	}
	if s.Count > 0xffff+1 {
		return fmt.Errorf("count must fit in 16-bit sequence numbers, got %d", s.Count)
	}
	if s.PayloadSize < 0 {
		return fmt.Errorf("payload size must not be negative, got %d", s.PayloadSize)
	}
	if s.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %s", s.Interval)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	return nil
}
