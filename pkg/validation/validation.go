package validation

import (
	"fmt"
)

const (
	MinThreads = 1
	MaxThreads = 20
)

// ValidateThreadCount bounds the worker count for catalogue refresh fan-out.
func ValidateThreadCount(threads int) error {
	if threads < MinThreads || threads > MaxThreads {
		return fmt.Errorf("thread count must be between %d and %d, got %d", MinThreads, MaxThreads, threads)
	}
	return nil
}

// ValidateNonEmptyString rejects empty required fields.
func ValidateNonEmptyString(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateRoomStatus checks a status filter against the statuses the service knows.
func ValidateRoomStatus(status string) error {
	validStatuses := map[string]bool{
		"available":   true,
		"occupied":    true,
		"unavailable": true,
	}
	if !validStatuses[status] {
		return fmt.Errorf("invalid room status: %s (must be one of: available, occupied, unavailable)", status)
	}
	return nil
}

// ValidatePrice rejects negative money amounts.
func ValidatePrice(fieldName string, price int64) error {
	if price < 0 {
		return fmt.Errorf("%s must not be negative, got %d", fieldName, price)
	}
	return nil
}
