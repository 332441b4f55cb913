package repo_interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/malcolmmaima/Telepesa-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrDuplicateReference signals a transfer reference collision on insert.
// The service retries creation with a fresh reference.
var ErrDuplicateReference = errors.New("transfer reference already exists")

type TransferRepository interface {
	Create(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error)
	Update(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error)
	GetByID(ctx context.Context, id string) (domain.Transfer, error)
	GetByReference(ctx context.Context, reference string) (domain.Transfer, error)
	// List* return pages ordered newest-first.
	ListByAccount(ctx context.Context, accountID string, page, size int) (domain.TransferPage, error)
	ListSent(ctx context.Context, senderAccountID string, page, size int) (domain.TransferPage, error)
	ListReceived(ctx context.Context, recipientAccountID string, page, size int) (domain.TransferPage, error)
	ListByStatus(ctx context.Context, status domain.TransferStatus, limit int) ([]domain.Transfer, error)
	// SentStats returns the count and summed amount of non-cancelled
	// transfers sent by the account since the given time.
	SentStats(ctx context.Context, accountID string, since time.Time) (int64, decimal.Decimal, error)
}
