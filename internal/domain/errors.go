package domain

import "fmt"

// ConfigError reports invalid configuration: a missing root path, a
// malformed glob, or a filter expression referencing an undeclared
// marker. It is fatal and raised before any traversal starts.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Msg
}

// Configf builds a ConfigError from a format string.
func Configf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// StrictMarkerViolation reports a discovered test carrying a marker
// tag outside the declared set while strict-markers mode is on. The
// collection pass fails as a whole; no partial plan is returned.
type StrictMarkerViolation struct {
	TestID string
	Marker string
}

func (e *StrictMarkerViolation) Error() string {
	return fmt.Sprintf("strict markers: test %s uses undeclared marker %q", e.TestID, e.Marker)
}
