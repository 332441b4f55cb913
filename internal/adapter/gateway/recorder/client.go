// Package recorder appends immutable transaction entries for individual
// money-movement legs. Append failures never affect transfer state; the
// orchestrator logs and continues.
package recorder

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const EntryTypeTransfer = "TRANSFER"

// Entry is one movement leg. Debit legs carry negative signed amounts,
// credit legs positive.
type Entry struct {
	AccountID             string          `json:"accountId"`
	CounterpartyAccountID string          `json:"counterpartyAccountId"`
	CounterpartyRef       string          `json:"counterpartyRef"`
	Amount                decimal.Decimal `json:"amount"`
	Type                  string          `json:"type"`
	Narrative             string          `json:"narrative"`
	Reference             string          `json:"reference"`
	Fee                   decimal.Decimal `json:"fee"`
	Total                 decimal.Decimal `json:"total"`
	Currency              string          `json:"currency"`
	CreatedAt             time.Time       `json:"createdAt"`
}

type Client interface {
	// CreateTransaction appends one entry and returns its transaction id.
	CreateTransaction(ctx context.Context, entry Entry) (string, error)
}
