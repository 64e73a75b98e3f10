package arlo

import (
	"strings"
	"time"
)

// CompareTimestamps orders two API timestamps. The empty string sorts before
// everything. Values that both parse as RFC 3339 are compared as instants,
// anything else falls back to a lexical comparison, which matches the API's
// fixed-width ISO 8601 output.
func CompareTimestamps(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return -1
	case b == "":
		return 1
	}

	ta, errA := time.Parse(time.RFC3339Nano, a)
	tb, errB := time.Parse(time.RFC3339Nano, b)
	if errA == nil && errB == nil {
		return ta.Compare(tb)
	}
	return strings.Compare(a, b)
}

// LaterTimestamp returns whichever of a and b is later
func LaterTimestamp(a, b string) string {
	if CompareTimestamps(b, a) > 0 {
		return b
	}
	return a
}
