package common

import "time"

// ISO8601 keeps the nanoseconds, so the formatted time parses back to the
// same instant.
const ISO8601 string = "2006-01-02T15:04:05.000000000Z07:00"

// FormatISO8601 writes t in UTC; timestamps from nodes in different zones
// compare as strings.
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(ISO8601)
}

func NowISO8601() string {
	return FormatISO8601(time.Now())
}

func ParseISO8601(s string) (time.Time, error) {
	return time.Parse(ISO8601, s)
}
