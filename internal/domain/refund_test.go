package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRefund(t *testing.T) {
	now := time.Date(2025, 11, 4, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		start       time.Time
		price       int64
		wantAmount  int64
		wantPercent int
	}{
		{"30 hours ahead gives full refund", now.Add(30 * time.Hour), 100000, 100000, 100},
		{"exactly 24 hours ahead gives full refund", now.Add(24 * time.Hour), 100000, 100000, 100},
		{"18 hours ahead gives half refund", now.Add(18 * time.Hour), 100000, 50000, 50},
		{"exactly 12 hours ahead gives half refund", now.Add(12 * time.Hour), 100000, 50000, 50},
		{"6 hours ahead gives nothing", now.Add(6 * time.Hour), 100000, 0, 0},
		{"lesson already started gives nothing", now.Add(-time.Hour), 100000, 0, 0},
		{"lesson starting right now gives nothing", now, 100000, 0, 0},
		{"zero price gives nothing", now.Add(48 * time.Hour), 0, 0, 0},
		{"negative price gives nothing", now.Add(48 * time.Hour), -500, 0, 0},
		{"odd price rounds half-up", now.Add(18 * time.Hour), 99999, 50000, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, percent := CalculateRefund(tt.start, now, tt.price)
			assert.Equal(t, tt.wantAmount, amount)
			assert.Equal(t, tt.wantPercent, percent)
		})
	}
}

func TestCalculateRefundPercentMatchesAmount(t *testing.T) {
	now := time.Date(2025, 11, 4, 10, 0, 0, 0, time.UTC)

	// percentage is derived from the rounded amount, not the reverse
	for _, price := range []int64{1, 3, 99, 101, 99999, 100001} {
		amount, percent := CalculateRefund(now.Add(18*time.Hour), now, price)
		expected := int((amount*100 + price/2) / price)
		assert.Equal(t, expected, percent, "price=%d", price)
	}
}
