package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatISO8601(t *testing.T) {
	tests := []struct {
		iso  string
		want string
	}{
		{"PT3M30S", "00:03:30"},
		{"PT1H2M3S", "01:02:03"},
		{"PT4M", "00:04:00"},
		{"PT45S", "00:00:45"},
		{"PT90S", "00:01:30"},
		{"P1DT2H", "26:00:00"},
		{"PT0S", "00:00:00"},
		{"", ""},
		{"garbage", ""},
		{"PT", "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.iso, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatISO8601(tt.iso))
		})
	}
}

func TestFormatDigitRuns(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1h2m3s", "01:02:03"},
		{"30m10s", "00:30:10"},
		{"45s", "00:00:45"},
		{"90", "00:01:30"},
		{"3600", "01:00:00"},
		{"", ""},
		{"live", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDigitRuns(tt.raw))
		})
	}
}
