// Package postgres persists transfers via database/sql and lib/pq.
//
// Expected schema (migrations are managed outside this service):
//
//	CREATE TABLE transfers (
//	    id                      UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//	    transfer_reference      TEXT NOT NULL UNIQUE,
//	    sender_account_id       TEXT NOT NULL,
//	    recipient_account_id    TEXT NOT NULL,
//	    sender_name             TEXT NOT NULL DEFAULT '',
//	    recipient_name          TEXT NOT NULL DEFAULT '',
//	    sender_phone_number     TEXT NOT NULL DEFAULT '',
//	    recipient_phone_number  TEXT NOT NULL DEFAULT '',
//	    amount                  NUMERIC(19,2) NOT NULL,
//	    transfer_fee            NUMERIC(19,2) NOT NULL,
//	    total_amount            NUMERIC(19,2) NOT NULL,
//	    currency                CHAR(3) NOT NULL,
//	    transfer_type           TEXT NOT NULL,
//	    description             TEXT NOT NULL DEFAULT '',
//	    swift_code              TEXT NOT NULL DEFAULT '',
//	    recipient_bank_name     TEXT NOT NULL DEFAULT '',
//	    recipient_bank_address  TEXT NOT NULL DEFAULT '',
//	    intermediary_bank_swift TEXT NOT NULL DEFAULT '',
//	    sort_code               TEXT NOT NULL DEFAULT '',
//	    pesalink_bank_code      TEXT NOT NULL DEFAULT '',
//	    mpesa_number            TEXT NOT NULL DEFAULT '',
//	    status                  TEXT NOT NULL,
//	    failure_reason          TEXT,
//	    processed_by            TEXT,
//	    created_at              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    updated_at              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    processed_at            TIMESTAMPTZ
//	);
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/repository/repo_interfaces"
	"github.com/malcolmmaima/Telepesa-sub000/internal/domain"
	"github.com/malcolmmaima/Telepesa-sub000/internal/logger"
	"github.com/shopspring/decimal"
)

const transferColumns = `
	id,
	transfer_reference,
	sender_account_id,
	recipient_account_id,
	sender_name,
	recipient_name,
	sender_phone_number,
	recipient_phone_number,
	amount,
	transfer_fee,
	total_amount,
	currency,
	transfer_type,
	description,
	swift_code,
	recipient_bank_name,
	recipient_bank_address,
	intermediary_bank_swift,
	sort_code,
	pesalink_bank_code,
	mpesa_number,
	status,
	failure_reason,
	processed_by,
	created_at,
	updated_at,
	processed_at`

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Create(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	logger.Info("transfer repository create", logger.Fields{
		"transferReference": transfer.TransferReference,
		"senderAccountId":   transfer.SenderAccountID,
		"transferType":      transfer.TransferType,
		"status":            transfer.Status,
	})

	const query = `
INSERT INTO transfers (
	transfer_reference,
	sender_account_id,
	recipient_account_id,
	sender_name,
	recipient_name,
	sender_phone_number,
	recipient_phone_number,
	amount,
	transfer_fee,
	total_amount,
	currency,
	transfer_type,
	description,
	swift_code,
	recipient_bank_name,
	recipient_bank_address,
	intermediary_bank_swift,
	sort_code,
	pesalink_bank_code,
	mpesa_number,
	status
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
)
RETURNING id, created_at, updated_at`

	var (
		id        string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := r.db.QueryRowContext(
		ctx,
		query,
		transfer.TransferReference,
		transfer.SenderAccountID,
		transfer.RecipientAccountID,
		transfer.SenderName,
		transfer.RecipientName,
		transfer.SenderPhoneNumber,
		transfer.RecipientPhoneNumber,
		transfer.Amount.StringFixed(2),
		transfer.TransferFee.StringFixed(2),
		transfer.TotalAmount.StringFixed(2),
		transfer.Currency,
		transfer.TransferType,
		transfer.Description,
		transfer.SwiftCode,
		transfer.RecipientBankName,
		transfer.RecipientBankAddress,
		transfer.IntermediaryBankSwift,
		transfer.SortCode,
		transfer.PesalinkBankCode,
		transfer.MpesaNumber,
		transfer.Status,
	).Scan(&id, &createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Transfer{}, repo_interfaces.ErrDuplicateReference
		}
		logger.Error("transfer repository create failed", err, logger.Fields{
			"transferReference": transfer.TransferReference,
		})
		return domain.Transfer{}, fmt.Errorf("create transfer: %w", err)
	}

	transfer.ID = id
	transfer.CreatedAt = createdAt
	transfer.UpdatedAt = updatedAt

	return transfer, nil
}

func (r *TransferRepository) Update(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	logger.Info("transfer repository update", logger.Fields{
		"transferId": transfer.ID,
		"status":     transfer.Status,
	})

	const query = `
UPDATE transfers
SET status = $2,
    failure_reason = $3,
    processed_by = $4,
    processed_at = $5,
    updated_at = NOW()
WHERE id = $1
RETURNING created_at, updated_at`

	var (
		createdAt time.Time
		updatedAt time.Time
	)

	if err := r.db.QueryRowContext(
		ctx,
		query,
		transfer.ID,
		transfer.Status,
		transfer.FailureReason,
		transfer.ProcessedBy,
		transfer.ProcessedAt,
	).Scan(&createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transfer{}, domain.ErrTransferNotFound
		}
		logger.Error("transfer repository update failed", err, logger.Fields{
			"transferId": transfer.ID,
		})
		return domain.Transfer{}, fmt.Errorf("update transfer: %w", err)
	}

	transfer.CreatedAt = createdAt
	transfer.UpdatedAt = updatedAt

	return transfer, nil
}

func (r *TransferRepository) GetByID(ctx context.Context, id string) (domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *TransferRepository) GetByReference(ctx context.Context, reference string) (domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE transfer_reference = $1`
	return r.getOne(ctx, query, reference)
}

func (r *TransferRepository) ListByAccount(ctx context.Context, accountID string, page, size int) (domain.TransferPage, error) {
	where := `WHERE sender_account_id = $1 OR recipient_account_id = $1`
	return r.listPage(ctx, where, accountID, page, size)
}

func (r *TransferRepository) ListSent(ctx context.Context, senderAccountID string, page, size int) (domain.TransferPage, error) {
	where := `WHERE sender_account_id = $1`
	return r.listPage(ctx, where, senderAccountID, page, size)
}

func (r *TransferRepository) ListReceived(ctx context.Context, recipientAccountID string, page, size int) (domain.TransferPage, error) {
	where := `WHERE recipient_account_id = $1`
	return r.listPage(ctx, where, recipientAccountID, page, size)
}

func (r *TransferRepository) ListByStatus(ctx context.Context, status domain.TransferStatus, limit int) ([]domain.Transfer, error) {
	query := `SELECT ` + transferColumns + `
FROM transfers
WHERE status = $1
ORDER BY created_at DESC
LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list transfers by status: %w", err)
	}
	defer rows.Close()

	return scanTransfers(rows)
}

func (r *TransferRepository) SentStats(ctx context.Context, accountID string, since time.Time) (int64, decimal.Decimal, error) {
	const query = `
SELECT COUNT(*), COALESCE(SUM(amount), 0)
FROM transfers
WHERE sender_account_id = $1
  AND created_at >= $2
  AND status <> 'CANCELLED'`

	var (
		count int64
		total string
	)
	if err := r.db.QueryRowContext(ctx, query, accountID, since).Scan(&count, &total); err != nil {
		return 0, decimal.Zero, fmt.Errorf("sent stats: %w", err)
	}

	totalValue, err := decimal.NewFromString(total)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("sent stats amount: %w", err)
	}
	return count, totalValue, nil
}

func (r *TransferRepository) getOne(ctx context.Context, query string, arg string) (domain.Transfer, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	transfer, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transfer{}, domain.ErrTransferNotFound
		}
		return domain.Transfer{}, fmt.Errorf("get transfer: %w", err)
	}
	return transfer, nil
}

func (r *TransferRepository) listPage(ctx context.Context, where string, accountID string, page, size int) (domain.TransferPage, error) {
	countQuery := `SELECT COUNT(*) FROM transfers ` + where

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, accountID).Scan(&total); err != nil {
		return domain.TransferPage{}, fmt.Errorf("count transfers: %w", err)
	}

	query := `SELECT ` + transferColumns + `
FROM transfers ` + where + `
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, accountID, size, page*size)
	if err != nil {
		return domain.TransferPage{}, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	items, err := scanTransfers(rows)
	if err != nil {
		return domain.TransferPage{}, err
	}

	return domain.TransferPage{
		Items:      items,
		Page:       page,
		Size:       size,
		TotalCount: total,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransfer(row rowScanner) (domain.Transfer, error) {
	var (
		transfer    domain.Transfer
		amount      string
		fee         string
		total       string
		reason      sql.NullString
		processedBy sql.NullString
		processedAt sql.NullTime
	)

	if err := row.Scan(
		&transfer.ID,
		&transfer.TransferReference,
		&transfer.SenderAccountID,
		&transfer.RecipientAccountID,
		&transfer.SenderName,
		&transfer.RecipientName,
		&transfer.SenderPhoneNumber,
		&transfer.RecipientPhoneNumber,
		&amount,
		&fee,
		&total,
		&transfer.Currency,
		&transfer.TransferType,
		&transfer.Description,
		&transfer.SwiftCode,
		&transfer.RecipientBankName,
		&transfer.RecipientBankAddress,
		&transfer.IntermediaryBankSwift,
		&transfer.SortCode,
		&transfer.PesalinkBankCode,
		&transfer.MpesaNumber,
		&transfer.Status,
		&reason,
		&processedBy,
		&transfer.CreatedAt,
		&transfer.UpdatedAt,
		&processedAt,
	); err != nil {
		return domain.Transfer{}, err
	}

	var err error
	if transfer.Amount, err = decimal.NewFromString(amount); err != nil {
		return domain.Transfer{}, fmt.Errorf("scan amount: %w", err)
	}
	if transfer.TransferFee, err = decimal.NewFromString(fee); err != nil {
		return domain.Transfer{}, fmt.Errorf("scan transfer_fee: %w", err)
	}
	if transfer.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return domain.Transfer{}, fmt.Errorf("scan total_amount: %w", err)
	}

	if reason.Valid {
		value := reason.String
		transfer.FailureReason = &value
	}
	if processedBy.Valid {
		value := processedBy.String
		transfer.ProcessedBy = &value
	}
	if processedAt.Valid {
		value := processedAt.Time
		transfer.ProcessedAt = &value
	}

	return transfer, nil
}

func scanTransfers(rows *sql.Rows) ([]domain.Transfer, error) {
	items := make([]domain.Transfer, 0)
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
