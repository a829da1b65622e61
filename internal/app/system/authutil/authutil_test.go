package authutil

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"scouts@example.com", true},
		{"a.b+c@sub.example.org", true},
		{"قائد@example.sa", true},
		{"no-at.example.com", false},
		{"missing@tld", false},
		{"two@@example.com", false},
		{"spa ce@example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}
