package auth

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var ttlPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

var ttlUnits = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
}

// ParseTTL parses a server-supplied duration such as "15m" or "7d".
// Only a positive integer followed by one of s, m, h, d is accepted.
func ParseTTL(s string) (time.Duration, error) {
	match := ttlPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	value, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidDuration, s, err)
	}
	if value == 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidDuration, s)
	}

	unit := ttlUnits[match[2]]
	if value > int64(time.Duration(1<<63-1)/unit) {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidDuration, s)
	}

	return time.Duration(value) * unit, nil
}

// TTLMillis is ParseTTL expressed in milliseconds, the unit kept in the credential store.
func TTLMillis(s string) (int64, error) {
	d, err := ParseTTL(s)
	if err != nil {
		return 0, err
	}
	return d.Milliseconds(), nil
}
