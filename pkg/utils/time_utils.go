package utils

import (
	"time"
)

// SigningDateLayout is the layout stamped into consent documents:
// day / month / year with spaced slashes, as printed on the signed form.
const SigningDateLayout = "02 / 01 / 2006"

// GetCurrentTimeMillis returns current time in milliseconds since epoch
func GetCurrentTimeMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// MillisToTime converts milliseconds since epoch to time.Time
func MillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}

// TimeToMillis converts time.Time to milliseconds since epoch
func TimeToMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}

// FormatSigningDate formats a time for substitution into a consent document
func FormatSigningDate(t time.Time) string {
	return t.Format(SigningDateLayout)
}

// FormatTime formats time in ISO 8601 format
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
