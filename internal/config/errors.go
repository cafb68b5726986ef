package config

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested key does not exist in the config file.
var ErrNotFound = errors.New("not found")

// ConfigurationError is returned when a required setting cannot be determined
// from any configuration layer. Err aggregates every missing setting.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// InvalidHeaderError describes a header source that could not be normalized.
type InvalidHeaderError struct {
	Source string
	Entry  string
	Reason string
}

func (e *InvalidHeaderError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("invalid headers from %s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("invalid headers from %s: %s (entry %q)", e.Source, e.Reason, e.Entry)
}
