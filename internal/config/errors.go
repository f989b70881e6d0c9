package config

import (
	"fmt"
	"strings"
)

// ConfigurationError is returned when a required setting resolved to nothing.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("required setting %q is not defined", e.Key)
}

func (e *ConfigurationError) InvalidConfig() bool { return true }

// DecodeError is returned when a setting has the wrong type.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode settings: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error       { return e.Cause }
func (e *DecodeError) InvalidConfig() bool { return true }

// ValidationError lists every invalid setting found.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "config validation failed: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) InvalidConfig() bool { return true }

// ParseError is returned for a settings file that cannot be parsed.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid settings file %s: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error       { return e.Cause }
func (e *ParseError) InvalidConfig() bool { return true }
