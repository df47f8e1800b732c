package database

import (
	"strings"
	"testing"
)

func TestAllowedOriginsSlice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty input", "", ""},
		{"single origin", "https://academy.example.com", "https://academy.example.com"},
		{"multiple origins", "https://a.com, https://b.com", "https://a.com|https://b.com"},
		{"duplicates collapsed", "x, x, y", "x|y"},
		{"whitespace trimmed", "  a  ,  b  ", "a|b"},
		{"empty segments skipped", "a,,b,", "a|b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := strings.Join(AllowedOriginsSlice(tt.raw), "|")
			if got != tt.want {
				t.Errorf("AllowedOriginsSlice(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
