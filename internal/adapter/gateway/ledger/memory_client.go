package ledger

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// MemoryClient is an in-process ledger used in tests. Balances move the
// way the real ledger would; per-account failure statuses can be scripted
// to exercise the failure paths.
type MemoryClient struct {
	mu       sync.Mutex
	accounts map[string]Account

	// DebitStatus and CreditStatus, when set for an account number, are
	// returned instead of COMPLETED without moving the balance.
	DebitStatus  map[string]string
	CreditStatus map[string]string
	// Err, when set, is returned from every call.
	Err error
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		accounts:     make(map[string]Account),
		DebitStatus:  make(map[string]string),
		CreditStatus: make(map[string]string),
	}
}

func (c *MemoryClient) AddAccount(account Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if account.Status == "" {
		account.Status = "ACTIVE"
	}
	c.accounts[account.AccountNumber] = account
}

func (c *MemoryClient) Balance(accountNumber string) decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accounts[accountNumber].Balance
}

func (c *MemoryClient) GetAccountByNumber(_ context.Context, accountNumber string) (Account, error) {
	if c.Err != nil {
		return Account{}, c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	account, ok := c.accounts[accountNumber]
	if !ok {
		return Account{AccountNumber: accountNumber, Status: StatusUnavailable}, nil
	}
	return account, nil
}

func (c *MemoryClient) DebitAccount(_ context.Context, accountNumber string, req MovementRequest) (MovementResult, error) {
	if c.Err != nil {
		return MovementResult{}, c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if status, ok := c.DebitStatus[accountNumber]; ok {
		return MovementResult{Status: status}, nil
	}

	account, ok := c.accounts[accountNumber]
	if !ok {
		return MovementResult{Status: StatusUnavailable}, nil
	}
	account.Balance = account.Balance.Sub(req.Amount)
	c.accounts[accountNumber] = account
	return MovementResult{Status: StatusCompleted}, nil
}

func (c *MemoryClient) CreditAccount(_ context.Context, accountNumber string, req MovementRequest) (MovementResult, error) {
	if c.Err != nil {
		return MovementResult{}, c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if status, ok := c.CreditStatus[accountNumber]; ok {
		return MovementResult{Status: status}, nil
	}

	account, ok := c.accounts[accountNumber]
	if !ok {
		return MovementResult{Status: StatusUnavailable}, nil
	}
	account.Balance = account.Balance.Add(req.Amount)
	c.accounts[accountNumber] = account
	return MovementResult{Status: StatusCompleted}, nil
}
