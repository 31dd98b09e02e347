package control

import "errors"

var (
	// ErrNonFiniteInput is returned by Step when the measurement or setpoint is NaN or infinite
	ErrNonFiniteInput = errors.New("non-finite controller input")

	// ErrInvalidGains is returned when a gain is negative or non-finite
	ErrInvalidGains = errors.New("invalid PID gains")
)
