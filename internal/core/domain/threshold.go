package domain

import "fmt"

// Threshold bounds. Scores and thresholds share the same 0-100 scale.
const (
	MinThreshold = 0
	MaxThreshold = 100
)

// ValidateThreshold rejects a threshold outside [MinThreshold, MaxThreshold].
func ValidateThreshold(threshold int) error {
	if threshold < MinThreshold || threshold > MaxThreshold {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	return nil
}
