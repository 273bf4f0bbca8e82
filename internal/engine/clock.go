package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock parses an HH:MM clock time. Hours 0-23, minutes 0-59.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time: %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("invalid clock time: %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid clock time: %q", s)
	}
	return h, m, nil
}

// isLateNight reports whether a bedtime counts as a late night: any time
// from midnight up to (not including) 05:00, or strictly after 23:30.
// Exactly 23:30 does not count.
func isLateNight(bedTime string) bool {
	h, m, err := ParseClock(bedTime)
	if err != nil {
		return false
	}
	if h >= 0 && h < 5 {
		return true
	}
	return h == 23 && m > 30
}
