package utils_test

import (
	"testing"

	"github.com/SscSPs/buddy_tix_tracker/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "7.50", utils.FormatAmount(decimal.RequireFromString("7.5")))
	assert.Equal(t, "-3.00", utils.FormatAmount(decimal.NewFromInt(-3)))
	assert.Equal(t, "0.00", utils.FormatAmount(decimal.Zero))
}

func TestDescribeBalance(t *testing.T) {
	tests := []struct {
		balance   string
		direction string
		display   string
	}{
		{"60", utils.DirectionBuddyOwesYou, "60.00"},
		{"0", utils.DirectionBuddyOwesYou, "0.00"},
		{"-25.5", utils.DirectionYouOweBuddy, "25.50"},
	}

	for _, tt := range tests {
		t.Run(tt.balance, func(t *testing.T) {
			direction, display := utils.DescribeBalance(decimal.RequireFromString(tt.balance))
			assert.Equal(t, tt.direction, direction)
			assert.Equal(t, tt.display, display)
		})
	}
}
