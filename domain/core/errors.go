package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Trial errors
	ErrInvalidTrial  = errors.New("invalid trial")
	ErrInvalidChoice = fmt.Errorf("%w: choice must be 1 or 2", ErrInvalidTrial)
	ErrInvalidScore  = fmt.Errorf("%w: score must be finite", ErrInvalidTrial)

	// Analysis errors
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Export errors
	ErrUnknownFormat = errors.New("unknown export format")
)

// Error constructors with context
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidTrial, field, reason)
}

func NewUnknownFormatError(format string) error {
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTrial)
}
