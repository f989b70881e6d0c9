package config

import (
	"github.com/Cyclone1070/finditfaster/internal/search"
)

// Validate checks config values for correctness.
// Returns a ValidationError listing every problem found.
func (c *Config) Validate() error {
	var errs []string

	// Search policies
	if _, err := search.ParsePolicy(string(c.AdditionalSearchLocationsWhen)); err != nil {
		errs = append(errs, KeyAdditionalSearchLocationsWhen+": "+err.Error())
	}
	if _, err := search.ParsePolicy(string(c.SearchCurrentWorkingDirectory)); err != nil {
		errs = append(errs, KeySearchCurrentWorkingDirectory+": "+err.Error())
	}

	// Session
	if c.Shell == "" {
		errs = append(errs, KeyShell+" must not be empty")
	}
	if c.CanaryDebounceMs < 0 {
		errs = append(errs, KeyCanaryDebounceMs+" must be >= 0")
	}

	// Tools
	if c.MaxCommandOutputSize < 1 {
		errs = append(errs, KeyMaxCommandOutputSize+" must be >= 1")
	}
	if c.FlightCheckTimeoutMs < 1 {
		errs = append(errs, KeyFlightCheckTimeoutMs+" must be >= 1")
	}
	if c.GracefulShutdownMs < 1 {
		errs = append(errs, KeyGracefulShutdownMs+" must be >= 1")
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}

	return nil
}
