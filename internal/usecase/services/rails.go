package services

import (
	"context"
	"fmt"
	"time"

	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/gateway/ledger"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/gateway/recorder"
	"github.com/malcolmmaima/Telepesa-sub000/internal/domain"
	"github.com/malcolmmaima/Telepesa-sub000/internal/logger"
)

const (
	processedBySystem          = "SYSTEM"
	processedByPesaLinkGateway = "PESALINK_GATEWAY"
	processedByMpesaGateway    = "MPESA_GATEWAY"
	processedBySwiftGateway    = "SWIFT_GATEWAY"
)

// railWorkflow drives one PENDING transfer over one rail. The caller has
// already moved the transfer to PROCESSING and stamped processedAt; the
// workflow performs the ledger movements and leaves the transfer in its
// success state. A returned error means the transfer must be marked
// FAILED with that error as reason.
//
// swallowFailure controls the propagation asymmetry between rails: the
// INTERNAL rail absorbs failures into the record and returns a normal
// result, every other concrete rail re-raises after marking FAILED.
// A nil execute marks a rail that is priced but not yet wired to a
// concrete implementation; such transfers stay PROCESSING.
type railWorkflow struct {
	failurePrefix  string
	swallowFailure bool
	execute        func(ctx context.Context, s *TransferService, t *domain.Transfer) error
}

var railWorkflows = map[domain.TransferType]railWorkflow{
	domain.TransferTypeInternal: {swallowFailure: true, execute: executeInternalTransfer},
	domain.TransferTypePesaLink: {failurePrefix: "PesaLink processing failed", execute: executePesaLinkTransfer},
	domain.TransferTypeMpesa:    {failurePrefix: "M-Pesa processing failed", execute: executeMpesaTransfer},
	domain.TransferTypeRTGS:     {failurePrefix: "RTGS processing failed", execute: executeRTGSTransfer},
	domain.TransferTypeSwift:    {failurePrefix: "SWIFT processing failed", execute: executeSwiftTransfer},

	domain.TransferTypeMobileMoney:  {},
	domain.TransferTypeBankTransfer: {},
	domain.TransferTypePeerToPeer:   {},
}

// executeInternalTransfer moves money inside the ledger: debit the sender
// for amount plus fee, credit the recipient for amount. When the credit
// fails after a successful debit the sender stays debited unless
// reverse_on_credit_failure is enabled, in which case a compensating
// credit is issued before the transfer is marked FAILED.
func executeInternalTransfer(ctx context.Context, s *TransferService, t *domain.Transfer) error {
	debit, err := s.ledger.DebitAccount(ctx, t.SenderAccountID, ledger.MovementRequest{
		Amount:    t.TotalAmount,
		Currency:  t.Currency,
		Reference: t.TransferReference,
		Narrative: "Transfer to " + t.RecipientAccountID,
	})
	if err != nil {
		return fmt.Errorf("Failed to debit sender account: %v", err)
	}
	if debit.Status != ledger.StatusCompleted {
		return fmt.Errorf("Failed to debit sender account: %s", debit.Status)
	}

	credit, err := s.ledger.CreditAccount(ctx, t.RecipientAccountID, ledger.MovementRequest{
		Amount:    t.Amount,
		Currency:  t.Currency,
		Reference: t.TransferReference,
		Narrative: "Transfer from " + t.SenderAccountID,
	})
	if err != nil || credit.Status != ledger.StatusCompleted {
		detail := credit.Status
		if err != nil {
			detail = err.Error()
		}
		reason := fmt.Sprintf("Failed to credit recipient account: %s", detail)

		if s.reverseOnCreditFailure {
			reversal, reverseErr := s.ledger.CreditAccount(ctx, t.SenderAccountID, ledger.MovementRequest{
				Amount:    t.TotalAmount,
				Currency:  t.Currency,
				Reference: t.TransferReference,
				Narrative: "Reversal of " + t.TransferReference,
			})
			if reverseErr != nil || reversal.Status != ledger.StatusCompleted {
				logger.Error("internal transfer debit reversal failed", reverseErr, logger.Fields{
					"transferId": t.ID,
					"status":     reversal.Status,
				})
				reason += "; debit reversal failed"
			} else {
				reason += "; debit reversed"
			}
		}

		return fmt.Errorf("%s", reason)
	}

	now := time.Now().UTC()
	t.Status = domain.TransferStatusCompleted
	t.ProcessedBy = stringPtr(processedBySystem)
	t.ProcessedAt = &now

	s.appendTransactionRecords(ctx, *t, true)
	return nil
}

// executePesaLinkTransfer debits the sender and hands off to the
// interbank switch. The switch leg is stubbed as always succeeding.
func executePesaLinkTransfer(ctx context.Context, s *TransferService, t *domain.Transfer) error {
	debit, err := s.ledger.DebitAccount(ctx, t.SenderAccountID, ledger.MovementRequest{
		Amount:    t.TotalAmount,
		Currency:  t.Currency,
		Reference: t.TransferReference,
		Narrative: "PesaLink transfer to " + t.RecipientName,
	})
	if err != nil {
		return err
	}
	if debit.Status != ledger.StatusCompleted {
		return fmt.Errorf("Failed to debit sender account: %s", debit.Status)
	}

	now := time.Now().UTC()
	t.Status = domain.TransferStatusCompleted
	t.ProcessedBy = stringPtr(processedByPesaLinkGateway)
	t.ProcessedAt = &now

	s.appendTransactionRecords(ctx, *t, false)
	return nil
}

// executeMpesaTransfer debits the sender and hands off to the mobile
// money gateway. The gateway leg is stubbed as always succeeding.
func executeMpesaTransfer(ctx context.Context, s *TransferService, t *domain.Transfer) error {
	debit, err := s.ledger.DebitAccount(ctx, t.SenderAccountID, ledger.MovementRequest{
		Amount:    t.TotalAmount,
		Currency:  t.Currency,
		Reference: t.TransferReference,
		Narrative: "M-Pesa transfer to " + t.MpesaNumber,
	})
	if err != nil {
		return err
	}
	if debit.Status != ledger.StatusCompleted {
		return fmt.Errorf("Failed to debit sender account: %s", debit.Status)
	}

	now := time.Now().UTC()
	t.Status = domain.TransferStatusCompleted
	t.ProcessedBy = stringPtr(processedByMpesaGateway)
	t.ProcessedAt = &now

	s.appendTransactionRecords(ctx, *t, false)
	return nil
}

// executeRTGSTransfer credits the recipient only; settlement of the
// sender side is assumed to have occurred upstream on this rail.
func executeRTGSTransfer(ctx context.Context, s *TransferService, t *domain.Transfer) error {
	credit, err := s.ledger.CreditAccount(ctx, t.RecipientAccountID, ledger.MovementRequest{
		Amount:    t.Amount,
		Currency:  t.Currency,
		Reference: t.TransferReference,
		Narrative: "Transfer from " + t.SenderName,
	})
	if err != nil {
		return err
	}
	if credit.Status != ledger.StatusCompleted {
		return fmt.Errorf("Failed to credit recipient account: %s", credit.Status)
	}

	now := time.Now().UTC()
	t.Status = domain.TransferStatusCompleted
	t.ProcessedAt = &now

	s.appendTransactionRecords(ctx, *t, true)
	return nil
}

// executeSwiftTransfer debits the sender and leaves the transfer in
// PROCESSING: cross-border settlement takes 1-3 business days, so from
// the dispatcher's perspective PROCESSING is this rail's final state.
func executeSwiftTransfer(ctx context.Context, s *TransferService, t *domain.Transfer) error {
	debit, err := s.ledger.DebitAccount(ctx, t.SenderAccountID, ledger.MovementRequest{
		Amount:    t.TotalAmount,
		Currency:  t.Currency,
		Reference: t.TransferReference,
		Narrative: "SWIFT transfer to " + t.RecipientBankName,
	})
	if err != nil {
		return err
	}
	if debit.Status != ledger.StatusCompleted {
		return fmt.Errorf("Failed to debit sender account: %s", debit.Status)
	}

	t.ProcessedBy = stringPtr(processedBySwiftGateway)

	s.appendTransactionRecords(ctx, *t, false)
	return nil
}

// appendTransactionRecords writes the movement legs to the transaction
// recorder. Debit legs carry negative signed amounts. Recorder failures
// are logged and swallowed; they never affect transfer state.
func (s *TransferService) appendTransactionRecords(ctx context.Context, t domain.Transfer, includeCredit bool) {
	_, err := s.recorder.CreateTransaction(ctx, recorder.Entry{
		AccountID:             t.SenderAccountID,
		CounterpartyAccountID: t.RecipientAccountID,
		CounterpartyRef:       t.RecipientName,
		Amount:                t.Amount.Neg(),
		Type:                  recorder.EntryTypeTransfer,
		Narrative:             "Transfer to " + t.RecipientAccountID,
		Reference:             t.TransferReference,
		Fee:                   t.TransferFee,
		Total:                 t.TotalAmount.Neg(),
		Currency:              t.Currency,
	})
	if err != nil {
		logger.Error("transaction record append failed for debit leg", err, logger.Fields{
			"transferId": t.ID,
			"reference":  t.TransferReference,
		})
	}

	if !includeCredit {
		return
	}

	_, err = s.recorder.CreateTransaction(ctx, recorder.Entry{
		AccountID:             t.RecipientAccountID,
		CounterpartyAccountID: t.SenderAccountID,
		CounterpartyRef:       t.SenderName,
		Amount:                t.Amount,
		Type:                  recorder.EntryTypeTransfer,
		Narrative:             "Transfer from " + t.SenderName,
		Reference:             t.TransferReference,
		Total:                 t.Amount,
		Currency:              t.Currency,
	})
	if err != nil {
		logger.Error("transaction record append failed for credit leg", err, logger.Fields{
			"transferId": t.ID,
			"reference":  t.TransferReference,
		})
	}
}
