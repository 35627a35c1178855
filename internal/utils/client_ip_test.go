package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{
			name:     "first forwarded entry wins",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1, 10.0.0.2"},
			expected: "203.0.113.7",
		},
		{
			name:     "single forwarded entry",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7"},
			expected: "203.0.113.7",
		},
		{
			name:     "falls back to real ip",
			headers:  map[string]string{"X-Real-IP": "198.51.100.3"},
			expected: "198.51.100.3",
		},
		{
			name:     "forwarded beats real ip",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "198.51.100.3"},
			expected: "203.0.113.7",
		},
		{
			name:     "unknown without headers",
			headers:  nil,
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/consent", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tt.expected, ExtractClientIP(req))
		})
	}
}
