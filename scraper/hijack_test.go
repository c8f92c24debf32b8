package scraper

import "testing"

func TestIsTrackerDomain(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"google-analytics.com", true},
		{"www.google-analytics.com", true},
		{"api.segment.io", true},
		{"chatgpt.com", false},
		{"claude.ai", false},
		{"notsegment.io.example.com", false},
	}
	for _, tt := range tests {
		if got := isTrackerDomain(tt.host); got != tt.want {
			t.Errorf("isTrackerDomain(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}
