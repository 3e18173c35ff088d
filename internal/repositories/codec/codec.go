// Package codec converts a transaction list to and from the persisted blob.
//
// The blob is a JSON array of records shaped
//
//	{"id":"…","date":"2024-01-05","type":"ticket","amount":60,"timestamp":1704445200000}
//
// where timestamp is Unix milliseconds. Amounts are written as JSON numbers and
// accepted as numbers or numeric strings.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/buddy_tix_tracker/internal/apperrors"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

type record struct {
	ID        string      `json:"id"`
	Date      string      `json:"date"`
	Type      string      `json:"type"`
	Amount    json.Number `json:"amount"`
	Timestamp json.Number `json:"timestamp"`
}

// Encode serializes txns in list order.
func Encode(txns []domain.Transaction) ([]byte, error) {
	records := make([]record, len(txns))
	for i, txn := range txns {
		if err := txn.Validate(); err != nil {
			return nil, fmt.Errorf("encode entry %d: %w", i, err)
		}
		records[i] = record{
			ID:        txn.ID,
			Date:      txn.Date.String(),
			Type:      string(txn.Kind),
			Amount:    json.Number(txn.Amount.String()),
			Timestamp: json.Number(fmt.Sprint(txn.CreatedAt.UnixMilli())),
		}
	}
	return json.Marshal(records)
}

// Decode parses a blob. An empty blob, or a JSON null, is an empty ledger.
// Anything malformed, or any record breaking a transaction invariant, yields
// apperrors.ErrStorageCorrupt.
func Decode(data []byte) ([]domain.Transaction, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []domain.Transaction{}, nil
	}

	var records []record
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageCorrupt, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after ledger array", apperrors.ErrStorageCorrupt)
	}

	txns := make([]domain.Transaction, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		txn, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", apperrors.ErrStorageCorrupt, i, err)
		}
		if _, dup := seen[txn.ID]; dup {
			return nil, fmt.Errorf("%w: entry %d: duplicate id %q", apperrors.ErrStorageCorrupt, i, txn.ID)
		}
		seen[txn.ID] = struct{}{}
		txns = append(txns, txn)
	}
	return txns, nil
}

func (r record) toDomain() (domain.Transaction, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.Transaction{}, err
	}
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("amount %q: %w", r.Amount, err)
	}
	// Amounts written by floating point clients may carry noise past the cents.
	amount = domain.RoundAmount(amount)

	ms, err := decimal.NewFromString(r.Timestamp.String())
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("timestamp %q: %w", r.Timestamp, err)
	}

	txn := domain.Transaction{
		ID:        r.ID,
		Date:      date,
		Kind:      domain.TransactionKind(r.Type),
		Amount:    amount,
		CreatedAt: time.UnixMilli(ms.IntPart()).UTC(),
	}
	if err := txn.Validate(); err != nil {
		return domain.Transaction{}, err
	}
	return txn, nil
}
