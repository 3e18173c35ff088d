package amqp

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/ports/events"
)

// messageVersion is bumped whenever LedgerChangedMessage changes incompatibly.
const messageVersion = 1

// LedgerChangedMessage is the wire form of events.LedgerChanged.
type LedgerChangedMessage struct {
	Version       int       `json:"version"`
	Operation     string    `json:"operation"`
	TransactionID string    `json:"transactionId"`
	Balance       string    `json:"balance"`
	Count         int       `json:"count"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewLedgerChangedMessage converts an event, fixing the balance to cents.
func NewLedgerChangedMessage(evt events.LedgerChanged) *LedgerChangedMessage {
	return &LedgerChangedMessage{
		Version:       messageVersion,
		Operation:     evt.Operation,
		TransactionID: evt.TransactionID,
		Balance:       evt.Balance.StringFixed(domain.AmountPlaces),
		Count:         evt.Count,
		OccurredAt:    evt.OccurredAt.UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerChangedMessageFromJSON creates a message from JSON bytes
func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
