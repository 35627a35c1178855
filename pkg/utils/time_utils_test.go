package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMillisRoundTrip(t *testing.T) {
	original := time.Date(2025, 3, 15, 10, 30, 45, 0, time.UTC)

	millis := TimeToMillis(original)
	restored := MillisToTime(millis)

	assert.True(t, original.Equal(restored))
}

func TestFormatSigningDate(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected string
	}{
		{
			name:     "double digit day and month",
			time:     time.Date(2025, 11, 23, 9, 0, 0, 0, time.UTC),
			expected: "23 / 11 / 2025",
		},
		{
			name:     "single digit day and month are zero padded",
			time:     time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC),
			expected: "05 / 03 / 2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSigningDate(tt.time))
		})
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2025, 3, 15, 10, 30, 45, 0, time.UTC)
	assert.Equal(t, "2025-03-15T10:30:45Z", FormatTime(ts))
}

func TestGetCurrentTimeMillis(t *testing.T) {
	before := time.Now().UnixNano() / int64(time.Millisecond)
	millis := GetCurrentTimeMillis()
	after := time.Now().UnixNano() / int64(time.Millisecond)

	assert.GreaterOrEqual(t, millis, before)
	assert.LessOrEqual(t, millis, after)
}
