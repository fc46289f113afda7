// Package duration converts user-entered durations to whole seconds and back.
//
// Accepted input forms:
//
//	45      plain seconds
//	45s     seconds suffix
//	2m      minutes suffix
//	1:30    mm:ss
//	1:02:03 h:mm:ss
package duration

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned for blank input.
	ErrEmpty = errors.New("duration is empty")
	// ErrNegative is returned for a leading minus sign in any form.
	ErrNegative = errors.New("duration must not be negative")
	// ErrNotNumeric is returned when a number or suffix cannot be read.
	ErrNotNumeric = errors.New("duration must be numeric")
	// ErrMalformedClock is returned for clock input that is not mm:ss or
	// h:mm:ss, including parts after the first that reach 60.
	ErrMalformedClock = errors.New("use mm:ss or h:mm:ss")
)

// maxSeconds keeps parsed values well inside int range on 32-bit platforms.
const maxSeconds = 1<<31 - 1

// Parse returns the number of seconds described by value.
func Parse(value string) (int, error) {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	if cleaned == "" {
		return 0, ErrEmpty
	}
	if strings.HasPrefix(cleaned, "-") {
		return 0, fmt.Errorf("%q: %w", value, ErrNegative)
	}

	if strings.Contains(cleaned, ":") {
		seconds, err := parseClock(cleaned)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", value, err)
		}
		return seconds, nil
	}

	multiplier := 1
	switch {
	case strings.HasSuffix(cleaned, "m"):
		multiplier = 60
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "m"))
	case strings.HasSuffix(cleaned, "s"):
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "s"))
	}

	number, err := parseDigits(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", value, err)
	}
	if number > maxSeconds/multiplier {
		return 0, fmt.Errorf("%q: %w", value, ErrNotNumeric)
	}
	return number * multiplier, nil
}

// Format renders seconds as mm:ss, or hh:mm:ss from one hour up.
// Negative input renders as 00:00.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

func parseClock(cleaned string) (int, error) {
	if strings.HasSuffix(cleaned, "s") || strings.HasSuffix(cleaned, "m") {
		return 0, ErrMalformedClock
	}
	parts := strings.Split(cleaned, ":")
	if len(parts) > 3 {
		return 0, ErrMalformedClock
	}

	total := 0
	for index, part := range parts {
		value, err := parseDigits(strings.TrimSpace(part))
		if err != nil {
			return 0, ErrMalformedClock
		}
		if index > 0 && value >= 60 {
			return 0, ErrMalformedClock
		}
		if total > (maxSeconds-value)/60 {
			return 0, ErrMalformedClock
		}
		total = total*60 + value
	}
	return total, nil
}

func parseDigits(value string) (int, error) {
	if value == "" {
		return 0, ErrNotNumeric
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, ErrNotNumeric
		}
	}
	number, err := strconv.Atoi(value)
	if err != nil || number > maxSeconds {
		return 0, ErrNotNumeric
	}
	return number, nil
}
