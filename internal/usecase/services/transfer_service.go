package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/gateway/ledger"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/gateway/recorder"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/http/models"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/repository/repo_interfaces"
	"github.com/malcolmmaima/Telepesa-sub000/internal/cache"
	"github.com/malcolmmaima/Telepesa-sub000/internal/commons"
	"github.com/malcolmmaima/Telepesa-sub000/internal/domain"
	"github.com/malcolmmaima/Telepesa-sub000/internal/events"
	"github.com/malcolmmaima/Telepesa-sub000/internal/logger"
	"github.com/malcolmmaima/Telepesa-sub000/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const defaultPageSize = 20
const defaultStatusListLimit = 50

// TransferService orchestrates the transfer lifecycle: validate against
// the ledger, price the rail, persist the PENDING record, dispatch to the
// rail workflow and expose the read/cancel/retry/stats operations.
type TransferService struct {
	transferRepo repo_interfaces.TransferRepository
	ledger       ledger.Client
	recorder     recorder.Client
	feeService   service_interfaces.FeeService
	cacheStore   cache.Store
	publisher    events.Publisher
	locks        *keyedMutex
	flight       singleflight.Group
	cacheTTL     time.Duration

	defaultCurrency        string
	reverseOnCreditFailure bool
}

func NewTransferService(
	transferRepo repo_interfaces.TransferRepository,
	ledgerClient ledger.Client,
	recorderClient recorder.Client,
	feeService service_interfaces.FeeService,
	cacheStore cache.Store,
	publisher events.Publisher,
	cacheTTL time.Duration,
	defaultCurrency string,
	reverseOnCreditFailure bool,
) *TransferService {
	return &TransferService{
		transferRepo:           transferRepo,
		ledger:                 ledgerClient,
		recorder:               recorderClient,
		feeService:             feeService,
		cacheStore:             cacheStore,
		publisher:              publisher,
		locks:                  newKeyedMutex(),
		cacheTTL:               cacheTTL,
		defaultCurrency:        strings.ToUpper(strings.TrimSpace(defaultCurrency)),
		reverseOnCreditFailure: reverseOnCreditFailure,
	}
}

func (s *TransferService) CreateTransfer(ctx context.Context, senderAccountID string, req models.CreateTransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service create transfer request", logger.Fields{
		"senderAccountId": senderAccountID,
		"payload":         logger.SanitizePayload(req),
	})

	senderAccountID = strings.TrimSpace(senderAccountID)
	if senderAccountID == "" {
		err := fmt.Errorf("senderAccountId is required")
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	transferType, _ := domain.ParseTransferType(strings.TrimSpace(req.TransferType))
	recipientAccountID := strings.TrimSpace(req.RecipientAccountID)

	if senderAccountID == recipientAccountID {
		err := fmt.Errorf("sender and recipient accounts cannot be the same")
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	sender, err := s.ledger.GetAccountByNumber(ctx, senderAccountID)
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}
	if sender.Status == ledger.StatusUnavailable {
		err := fmt.Errorf("%w: sender account %s", domain.ErrAccountUnavailable, senderAccountID)
		return commons.ErrorResponse[models.TransferResponse]("Sender account not found or unavailable", err.Error()), err
	}

	recipient, err := s.ledger.GetAccountByNumber(ctx, recipientAccountID)
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}
	if recipient.Status == ledger.StatusUnavailable {
		err := fmt.Errorf("%w: recipient account %s", domain.ErrAccountUnavailable, recipientAccountID)
		return commons.ErrorResponse[models.TransferResponse]("Recipient account not found or unavailable", err.Error()), err
	}

	fee := s.feeService.CalculateTransferFee(req.Amount, transferType)
	totalAmount := req.Amount.Add(fee)

	if sender.Balance.LessThan(totalAmount) {
		err := fmt.Errorf("%w. Required: %s, Available: %s",
			domain.ErrInsufficientBalance, totalAmount.StringFixed(2), sender.Balance.StringFixed(2))
		return commons.ErrorResponse[models.TransferResponse]("Insufficient balance", err.Error()), err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.defaultCurrency
	}

	senderName := strings.TrimSpace(sender.AccountName)
	if senderName == "" {
		senderName = "Account Holder"
	}

	transfer := domain.Transfer{
		SenderAccountID:       senderAccountID,
		RecipientAccountID:    recipientAccountID,
		SenderName:            senderName,
		RecipientName:         strings.TrimSpace(req.RecipientName),
		SenderPhoneNumber:     strings.TrimSpace(sender.PhoneNumber),
		RecipientPhoneNumber:  strings.TrimSpace(req.RecipientPhoneNumber),
		Amount:                req.Amount,
		TransferFee:           fee,
		TotalAmount:           totalAmount,
		Currency:              currency,
		TransferType:          transferType,
		Description:           strings.TrimSpace(req.Description),
		SwiftCode:             strings.TrimSpace(req.SwiftCode),
		RecipientBankName:     strings.TrimSpace(req.RecipientBankName),
		RecipientBankAddress:  strings.TrimSpace(req.RecipientBankAddress),
		IntermediaryBankSwift: strings.TrimSpace(req.IntermediaryBankSwift),
		SortCode:              strings.TrimSpace(req.SortCode),
		PesalinkBankCode:      strings.TrimSpace(req.PesalinkBankCode),
		MpesaNumber:           strings.TrimSpace(req.MpesaNumber),
		Status:                domain.TransferStatusPending,
	}

	var created domain.Transfer
	for attempt := 0; attempt < 5; attempt++ {
		transfer.TransferReference = generateTransferReference()
		created, err = s.transferRepo.Create(ctx, transfer)
		if err == nil {
			break
		}
		if !errors.Is(err, repo_interfaces.ErrDuplicateReference) {
			return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
		}
	}
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	s.invalidateTransferCaches(ctx, created)

	unlock := s.locks.lock(created.ID)
	defer unlock()

	processed, err := s.dispatch(ctx, created)
	if err != nil {
		response := mapTransferToResponse(processed)
		return responseFor(processed, response), err
	}

	response := mapTransferToResponse(processed)
	return responseFor(processed, response), nil
}

func (s *TransferService) GetTransfer(ctx context.Context, id string) (commons.Response[models.TransferResponse], error) {
	response, err := s.cachedTransfer(ctx, cacheKeyTransferID(id), func() (domain.Transfer, error) {
		return s.transferRepo.GetByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrTransferNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Transfer not found", fmt.Sprintf("Transfer not found: %s", id)), err
		}
		return commons.ErrorResponse[models.TransferResponse]("failed to get transfer", "Unable to fetch transfer right now"), err
	}
	return commons.SuccessResponse("transfer fetched successfully", response), nil
}

func (s *TransferService) GetTransferByReference(ctx context.Context, reference string) (commons.Response[models.TransferResponse], error) {
	response, err := s.cachedTransfer(ctx, cacheKeyTransferRef(reference), func() (domain.Transfer, error) {
		return s.transferRepo.GetByReference(ctx, reference)
	})
	if err != nil {
		if errors.Is(err, domain.ErrTransferNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Transfer not found", fmt.Sprintf("Transfer not found: %s", reference)), err
		}
		return commons.ErrorResponse[models.TransferResponse]("failed to get transfer", "Unable to fetch transfer right now"), err
	}
	return commons.SuccessResponse("transfer fetched successfully", response), nil
}

func (s *TransferService) GetTransfersByAccount(ctx context.Context, accountID string, page, size int) (commons.Response[models.TransferPageResponse], error) {
	return s.cachedPage(ctx, cacheKeyListing("account", accountID, page, size), func() (domain.TransferPage, error) {
		return s.transferRepo.ListByAccount(ctx, accountID, normalizePage(page), normalizeSize(size))
	})
}

func (s *TransferService) GetSentTransfers(ctx context.Context, senderAccountID string, page, size int) (commons.Response[models.TransferPageResponse], error) {
	return s.cachedPage(ctx, cacheKeyListing("sent", senderAccountID, page, size), func() (domain.TransferPage, error) {
		return s.transferRepo.ListSent(ctx, senderAccountID, normalizePage(page), normalizeSize(size))
	})
}

func (s *TransferService) GetReceivedTransfers(ctx context.Context, recipientAccountID string, page, size int) (commons.Response[models.TransferPageResponse], error) {
	return s.cachedPage(ctx, cacheKeyListing("received", recipientAccountID, page, size), func() (domain.TransferPage, error) {
		return s.transferRepo.ListReceived(ctx, recipientAccountID, normalizePage(page), normalizeSize(size))
	})
}

func (s *TransferService) GetTransfersByStatus(ctx context.Context, status domain.TransferStatus, limit int) (commons.Response[models.TransferListResponse], error) {
	if limit <= 0 {
		limit = defaultStatusListLimit
	}

	transfers, err := s.transferRepo.ListByStatus(ctx, status, limit)
	if err != nil {
		return commons.ErrorResponse[models.TransferListResponse]("failed to list transfers", "Unable to list transfers right now"), err
	}

	items := make([]models.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		items = append(items, mapTransferToResponse(t))
	}
	return commons.SuccessResponse("transfers fetched successfully", models.TransferListResponse{Transfers: items}), nil
}

// ProcessTransfer drives a PENDING transfer through its rail workflow.
func (s *TransferService) ProcessTransfer(ctx context.Context, id string) (commons.Response[models.TransferResponse], error) {
	unlock := s.locks.lock(id)
	defer unlock()

	transfer, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransferNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Transfer not found", fmt.Sprintf("Transfer not found: %s", id)), err
		}
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	if transfer.Status != domain.TransferStatusPending {
		err := fmt.Errorf("%w: can only process pending transfers, current status is %s", domain.ErrInvalidState, transfer.Status)
		return commons.ErrorResponse[models.TransferResponse]("invalid transfer state", err.Error()), err
	}

	processed, err := s.dispatch(ctx, transfer)
	if err != nil {
		return responseFor(processed, mapTransferToResponse(processed)), err
	}
	return responseFor(processed, mapTransferToResponse(processed)), nil
}

// CancelTransfer moves a PENDING or PROCESSING transfer to CANCELLED and
// records the supplied reason. Any other state is an invalid transition.
func (s *TransferService) CancelTransfer(ctx context.Context, id, reason string) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service cancel transfer request", logger.Fields{
		"transferId": id,
		"reason":     reason,
	})

	unlock := s.locks.lock(id)
	defer unlock()

	transfer, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransferNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Transfer not found", fmt.Sprintf("Transfer not found: %s", id)), err
		}
		return commons.ErrorResponse[models.TransferResponse]("failed to cancel transfer", "Unable to cancel transfer right now"), err
	}

	if transfer.Status != domain.TransferStatusPending && transfer.Status != domain.TransferStatusProcessing {
		err := fmt.Errorf("%w: cannot cancel transfer in status %s", domain.ErrInvalidState, transfer.Status)
		return commons.ErrorResponse[models.TransferResponse]("invalid transfer state", err.Error()), err
	}

	now := time.Now().UTC()
	transfer.Status = domain.TransferStatusCancelled
	transfer.FailureReason = stringPtr(reason)
	transfer.ProcessedAt = &now

	updated, err := s.transferRepo.Update(ctx, transfer)
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse]("failed to cancel transfer", "Unable to cancel transfer right now"), err
	}

	s.invalidateTransferCaches(ctx, updated)
	s.publishEvent(ctx, updated)

	return commons.SuccessResponse("transfer cancelled", mapTransferToResponse(updated)), nil
}

// RetryTransfer resets a FAILED transfer to PENDING, clearing the failure
// reason, and reprocesses it. Each retry is a fresh, independent attempt.
func (s *TransferService) RetryTransfer(ctx context.Context, id string) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service retry transfer request", logger.Fields{
		"transferId": id,
	})

	unlock := s.locks.lock(id)
	defer unlock()

	transfer, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransferNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Transfer not found", fmt.Sprintf("Transfer not found: %s", id)), err
		}
		return commons.ErrorResponse[models.TransferResponse]("failed to retry transfer", "Unable to retry transfer right now"), err
	}

	if transfer.Status != domain.TransferStatusFailed {
		err := fmt.Errorf("%w: can only retry failed transfers, current status is %s", domain.ErrInvalidState, transfer.Status)
		return commons.ErrorResponse[models.TransferResponse]("invalid transfer state", err.Error()), err
	}

	transfer.Status = domain.TransferStatusPending
	transfer.FailureReason = nil

	updated, err := s.transferRepo.Update(ctx, transfer)
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse]("failed to retry transfer", "Unable to retry transfer right now"), err
	}
	s.invalidateTransferCaches(ctx, updated)

	processed, err := s.dispatch(ctx, updated)
	if err != nil {
		return responseFor(processed, mapTransferToResponse(processed)), err
	}
	return responseFor(processed, mapTransferToResponse(processed)), nil
}

func (s *TransferService) GetTransferStats(ctx context.Context, accountID string, since time.Time) (commons.Response[models.TransferStatsResponse], error) {
	key := cacheKeyStats(accountID, since)
	if raw, ok := s.cacheStore.Get(ctx, key); ok {
		var cached models.TransferStatsResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return commons.SuccessResponse("transfer stats fetched successfully", cached), nil
		}
	}

	count, total, err := s.transferRepo.SentStats(ctx, accountID, since)
	if err != nil {
		return commons.ErrorResponse[models.TransferStatsResponse]("failed to get transfer stats", "Unable to fetch stats right now"), err
	}

	// Received-side aggregation is a known gap; reported as zero.
	response := models.TransferStatsResponse{
		AccountID:     accountID,
		SentCount:     count,
		TotalSent:     total,
		ReceivedCount: 0,
		TotalReceived: decimal.Zero,
		TotalFees:     decimal.Zero,
		Since:         since,
	}

	if raw, err := json.Marshal(response); err == nil {
		s.cacheStore.Set(ctx, key, raw, s.cacheTTL)
	}

	return commons.SuccessResponse("transfer stats fetched successfully", response), nil
}

// CalculateTransferFee prices a prospective transfer without creating one.
func (s *TransferService) CalculateTransferFee(ctx context.Context, amount decimal.Decimal, transferType domain.TransferType) (commons.Response[models.FeeResponse], error) {
	_ = ctx
	if amount.LessThanOrEqual(decimal.Zero) {
		err := fmt.Errorf("amount must be greater than zero")
		return commons.ErrorResponse[models.FeeResponse]("validation failed", err.Error()), err
	}

	fee := s.feeService.CalculateTransferFee(amount, transferType)
	response := models.FeeResponse{
		Amount:       amount,
		TransferType: string(transferType),
		TransferFee:  fee,
		TotalAmount:  amount.Add(fee),
	}
	return commons.SuccessResponse("transfer fee calculated", response), nil
}

// dispatch runs the rail workflow envelope for a transfer the caller has
// locked: move to PROCESSING, stamp processedAt, execute the rail, and on
// any failure durably mark FAILED with the failure reason before deciding
// whether to swallow or re-raise per the rail's policy. No error escapes
// a workflow without the record first reaching FAILED.
func (s *TransferService) dispatch(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	now := time.Now().UTC()
	transfer.Status = domain.TransferStatusProcessing
	transfer.ProcessedAt = &now

	updated, err := s.transferRepo.Update(ctx, transfer)
	if err != nil {
		return transfer, err
	}
	transfer = updated
	s.invalidateTransferCaches(ctx, transfer)

	workflow := railWorkflows[transfer.TransferType]
	if workflow.execute == nil {
		// Priced but not wired to a concrete rail yet: stays PROCESSING.
		return transfer, nil
	}

	execErr := workflow.execute(ctx, s, &transfer)
	if execErr != nil {
		reason := execErr.Error()
		if workflow.failurePrefix != "" {
			reason = workflow.failurePrefix + ": " + reason
		}

		transfer.Status = domain.TransferStatusFailed
		transfer.FailureReason = stringPtr(reason)

		failed, uerr := s.transferRepo.Update(ctx, transfer)
		if uerr != nil {
			logger.Error("transfer service persist failed state", uerr, logger.Fields{
				"transferId": transfer.ID,
			})
			failed = transfer
		}
		s.invalidateTransferCaches(ctx, failed)
		s.publishEvent(ctx, failed)

		if workflow.swallowFailure {
			return failed, nil
		}
		return failed, &domain.RailError{Rail: failed.TransferType, Reason: reason}
	}

	final, err := s.transferRepo.Update(ctx, transfer)
	if err != nil {
		return transfer, err
	}
	s.invalidateTransferCaches(ctx, final)

	if final.Status == domain.TransferStatusCompleted || final.Status == domain.TransferStatusFailed {
		s.publishEvent(ctx, final)
	}
	return final, nil
}

func (s *TransferService) cachedTransfer(ctx context.Context, key string, load func() (domain.Transfer, error)) (models.TransferResponse, error) {
	if raw, ok := s.cacheStore.Get(ctx, key); ok {
		var cached models.TransferResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		transfer, err := load()
		if err != nil {
			return nil, err
		}
		response := mapTransferToResponse(transfer)
		if raw, err := json.Marshal(response); err == nil {
			s.cacheStore.Set(ctx, key, raw, s.cacheTTL)
		}
		return response, nil
	})
	if err != nil {
		return models.TransferResponse{}, err
	}
	return value.(models.TransferResponse), nil
}

func (s *TransferService) cachedPage(ctx context.Context, key string, load func() (domain.TransferPage, error)) (commons.Response[models.TransferPageResponse], error) {
	if raw, ok := s.cacheStore.Get(ctx, key); ok {
		var cached models.TransferPageResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return commons.SuccessResponse("transfers fetched successfully", cached), nil
		}
	}

	page, err := load()
	if err != nil {
		return commons.ErrorResponse[models.TransferPageResponse]("failed to list transfers", "Unable to list transfers right now"), err
	}

	items := make([]models.TransferResponse, 0, len(page.Items))
	for _, t := range page.Items {
		items = append(items, mapTransferToResponse(t))
	}
	response := models.TransferPageResponse{
		Transfers:  items,
		Page:       page.Page,
		Size:       page.Size,
		TotalCount: page.TotalCount,
	}

	if raw, err := json.Marshal(response); err == nil {
		s.cacheStore.Set(ctx, key, raw, s.cacheTTL)
	}

	return commons.SuccessResponse("transfers fetched successfully", response), nil
}

// invalidateTransferCaches drops every cached projection a write to this
// transfer can affect: the id and reference lookups, both parties'
// listings and the sender's stats.
func (s *TransferService) invalidateTransferCaches(ctx context.Context, t domain.Transfer) {
	s.cacheStore.InvalidatePrefix(ctx,
		cacheKeyTransferID(t.ID),
		cacheKeyTransferRef(t.TransferReference),
		"transfers:account:"+t.SenderAccountID,
		"transfers:account:"+t.RecipientAccountID,
		"transfers:sent:"+t.SenderAccountID,
		"transfers:received:"+t.RecipientAccountID,
		"transfers:stats:"+t.SenderAccountID,
	)
}

func (s *TransferService) publishEvent(ctx context.Context, t domain.Transfer) {
	s.publisher.PublishTransferEvent(ctx, events.TransferEvent{
		TransferID:        t.ID,
		TransferReference: t.TransferReference,
		TransferType:      string(t.TransferType),
		Status:            string(t.Status),
		Amount:            t.Amount.StringFixed(2),
		Currency:          t.Currency,
		FailureReason:     valueOrEmpty(t.FailureReason),
		OccurredAt:        time.Now().UTC(),
	})
}

func cacheKeyTransferID(id string) string {
	return "transfer:id:" + id
}

func cacheKeyTransferRef(reference string) string {
	return "transfer:ref:" + reference
}

func cacheKeyListing(kind, accountID string, page, size int) string {
	return fmt.Sprintf("transfers:%s:%s:p%d:s%d", kind, accountID, normalizePage(page), normalizeSize(size))
}

func cacheKeyStats(accountID string, since time.Time) string {
	return fmt.Sprintf("transfers:stats:%s:%d", accountID, since.UTC().Unix())
}

func normalizePage(page int) int {
	if page < 0 {
		return 0
	}
	return page
}

func normalizeSize(size int) int {
	if size <= 0 {
		return defaultPageSize
	}
	return size
}

// responseFor wraps a transfer projection in an envelope matching its
// outcome. A FAILED transfer still returns its projection: the caller
// sees what failed and why, and may invoke retry.
func responseFor(t domain.Transfer, response models.TransferResponse) commons.Response[models.TransferResponse] {
	switch t.Status {
	case domain.TransferStatusCompleted:
		return commons.SuccessResponse("Transfer completed successfully", response)
	case domain.TransferStatusProcessing:
		return commons.SuccessResponse("Transfer is being processed", response)
	case domain.TransferStatusFailed:
		return commons.Response[models.TransferResponse]{
			Success: false,
			Message: "Transfer failed",
			Data:    &response,
			Errors:  []string{response.FailureReason},
		}
	default:
		return commons.SuccessResponse("Transfer created", response)
	}
}

func mapTransferToResponse(t domain.Transfer) models.TransferResponse {
	return models.TransferResponse{
		ID:                   t.ID,
		TransferReference:    t.TransferReference,
		SenderAccountID:      t.SenderAccountID,
		RecipientAccountID:   t.RecipientAccountID,
		SenderName:           t.SenderName,
		RecipientName:        t.RecipientName,
		SenderPhoneNumber:    t.SenderPhoneNumber,
		RecipientPhoneNumber: t.RecipientPhoneNumber,
		Amount:               t.Amount,
		TransferFee:          t.TransferFee,
		TotalAmount:          t.TotalAmount,
		Currency:             t.Currency,
		TransferType:         string(t.TransferType),
		Status:               string(t.Status),
		Description:          t.Description,
		FailureReason:        valueOrEmpty(t.FailureReason),
		ProcessedBy:          valueOrEmpty(t.ProcessedBy),
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
		ProcessedAt:          t.ProcessedAt,
	}
}

// generateTransferReference returns a human-shareable reference: TXN plus
// 12 uppercase hex characters.
func generateTransferReference() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "TXN" + time.Now().UTC().Format("060102150405")
	}
	return "TXN" + strings.ToUpper(hex.EncodeToString(buf))
}

func stringPtr(value string) *string {
	v := strings.TrimSpace(value)
	return &v
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
