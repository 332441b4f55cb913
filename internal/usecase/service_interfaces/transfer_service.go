package service_interfaces

import (
	"context"
	"time"

	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/http/models"
	"github.com/malcolmmaima/Telepesa-sub000/internal/commons"
	"github.com/malcolmmaima/Telepesa-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

type TransferService interface {
	CreateTransfer(ctx context.Context, senderAccountID string, req models.CreateTransferRequest) (commons.Response[models.TransferResponse], error)
	GetTransfer(ctx context.Context, id string) (commons.Response[models.TransferResponse], error)
	GetTransferByReference(ctx context.Context, reference string) (commons.Response[models.TransferResponse], error)
	GetTransfersByAccount(ctx context.Context, accountID string, page, size int) (commons.Response[models.TransferPageResponse], error)
	GetSentTransfers(ctx context.Context, senderAccountID string, page, size int) (commons.Response[models.TransferPageResponse], error)
	GetReceivedTransfers(ctx context.Context, recipientAccountID string, page, size int) (commons.Response[models.TransferPageResponse], error)
	GetTransfersByStatus(ctx context.Context, status domain.TransferStatus, limit int) (commons.Response[models.TransferListResponse], error)
	ProcessTransfer(ctx context.Context, id string) (commons.Response[models.TransferResponse], error)
	CancelTransfer(ctx context.Context, id, reason string) (commons.Response[models.TransferResponse], error)
	RetryTransfer(ctx context.Context, id string) (commons.Response[models.TransferResponse], error)
	GetTransferStats(ctx context.Context, accountID string, since time.Time) (commons.Response[models.TransferStatsResponse], error)
	CalculateTransferFee(ctx context.Context, amount decimal.Decimal, transferType domain.TransferType) (commons.Response[models.FeeResponse], error)
}
