package ratelimit

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientKey(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "forwarded-for single hop",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:    "203.0.113.7",
		},
		{
			name:    "forwarded-for takes the first hop",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1, 10.0.0.2"},
			want:    "203.0.113.7",
		},
		{
			name: "forwarded-for wins over the other headers",
			headers: map[string]string{
				"X-Forwarded-For":  "203.0.113.7",
				"X-Real-IP":        "198.51.100.9",
				"CF-Connecting-IP": "192.0.2.3",
			},
			want: "203.0.113.7",
		},
		{
			name:    "real-ip fallback",
			headers: map[string]string{"X-Real-IP": "198.51.100.9"},
			want:    "198.51.100.9",
		},
		{
			name:    "edge proxy fallback",
			headers: map[string]string{"CF-Connecting-IP": "192.0.2.3"},
			want:    "192.0.2.3",
		},
		{
			name:    "empty first hop falls through",
			headers: map[string]string{"X-Forwarded-For": " , 10.0.0.1", "X-Real-IP": "198.51.100.9"},
			want:    "198.51.100.9",
		},
		{
			name:    "no headers",
			headers: map[string]string{},
			want:    "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/contact", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientKey(r))
		})
	}
}
