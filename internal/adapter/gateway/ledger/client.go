// Package ledger is the client for the external system of record holding
// account balances. Calls are synchronous remote calls with a per-call
// timeout and no retries; retry is an orchestrator-level operation.
package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// Statuses on the ledger wire contract.
const (
	StatusCompleted   = "COMPLETED"
	StatusUnavailable = "UNAVAILABLE"
)

type Account struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	PhoneNumber   string          `json:"phoneNumber"`
	Status        string          `json:"status"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
}

// MovementRequest is the payload for debit and credit calls.
type MovementRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference"`
	Narrative string          `json:"narrative"`
}

type MovementResult struct {
	Status string `json:"status"`
}

type Client interface {
	GetAccountByNumber(ctx context.Context, accountNumber string) (Account, error)
	DebitAccount(ctx context.Context, accountNumber string, req MovementRequest) (MovementResult, error)
	CreditAccount(ctx context.Context, accountNumber string, req MovementRequest) (MovementResult, error)
}
