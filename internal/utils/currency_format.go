package utils

import (
	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Balance directions shown next to the absolute balance.
const (
	DirectionBuddyOwesYou = "Buddy owes you"
	DirectionYouOweBuddy  = "You owe buddy"
)

// FormatAmount renders an amount with exactly two decimals.
// Example: 7.5 returns "7.50", -3 returns "-3.00"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(domain.AmountPlaces)
}

// DescribeBalance says who owes whom and by how much. A zero balance reads as
// the buddy owing nothing.
func DescribeBalance(balance decimal.Decimal) (direction string, display string) {
	if balance.IsNegative() {
		return DirectionYouOweBuddy, FormatAmount(balance.Abs())
	}
	return DirectionBuddyOwesYou, FormatAmount(balance)
}
