package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountInput is an amount as typed by a user. It accepts a JSON number or a
// JSON string, with "." or "," as decimal separator.
type AmountInput string

// UnmarshalJSON implements json.Unmarshaler.
func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number or a numeric string")
	}
	*a = AmountInput(n)
	return nil
}

// Decimal parses and rounds the input to cents.
func (a AmountInput) Decimal() (decimal.Decimal, error) {
	return domain.ParseAmount(string(a))
}
