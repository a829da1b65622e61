package network

import (
	"net/http/httptest"
	"testing"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{"remote addr", "", "", "192.0.2.1:1234", "192.0.2.1"},
		{"ipv6 remote addr", "", "", "[2001:db8::1]:443", "2001:db8::1"},
		{"remote addr without port", "", "", "192.0.2.1", "192.0.2.1"},
		{"x-real-ip", "", "203.0.113.5", "10.0.0.1:80", "203.0.113.5"},
		{"x-forwarded-for single", "203.0.113.7", "", "10.0.0.1:80", "203.0.113.7"},
		{"x-forwarded-for chain", " 203.0.113.7 , 10.0.0.2, 10.0.0.3", "203.0.113.5", "10.0.0.1:80", "203.0.113.7"},
		{"empty first hop", " , 10.0.0.2", "203.0.113.5", "10.0.0.1:80", "203.0.113.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
