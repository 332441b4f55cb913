package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/repository/memory"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/repository/repo_interfaces"
	"github.com/malcolmmaima/Telepesa-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

func seedTransfer(reference, sender, recipient string, amount string) domain.Transfer {
	value := decimal.RequireFromString(amount)
	return domain.Transfer{
		TransferReference:  reference,
		SenderAccountID:    sender,
		RecipientAccountID: recipient,
		Amount:             value,
		TotalAmount:        value,
		Currency:           "KES",
		TransferType:       domain.TransferTypeInternal,
		Status:             domain.TransferStatusPending,
	}
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	repo := memory.NewTransferRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, seedTransfer("TXNAAA000000001", "ACC001", "ACC002", "100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps set")
	}
}

func TestCreateRejectsDuplicateReference(t *testing.T) {
	repo := memory.NewTransferRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, seedTransfer("TXNDUP000000001", "ACC001", "ACC002", "100")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := repo.Create(ctx, seedTransfer("TXNDUP000000001", "ACC001", "ACC002", "200"))
	if !errors.Is(err, repo_interfaces.ErrDuplicateReference) {
		t.Fatalf("expected ErrDuplicateReference, got %v", err)
	}
}

func TestUpdateUnknownTransfer(t *testing.T) {
	repo := memory.NewTransferRepository()

	transfer := seedTransfer("TXNUPD000000001", "ACC001", "ACC002", "100")
	transfer.ID = "tr-999999"
	_, err := repo.Update(context.Background(), transfer)
	if !errors.Is(err, domain.ErrTransferNotFound) {
		t.Fatalf("expected ErrTransferNotFound, got %v", err)
	}
}

func TestGetByIDAndReference(t *testing.T) {
	repo := memory.NewTransferRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, seedTransfer("TXNGET000000001", "ACC001", "ACC002", "100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byRef, err := repo.GetByReference(ctx, "TXNGET000000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byID.ID != byRef.ID {
		t.Fatalf("lookups disagree: %s vs %s", byID.ID, byRef.ID)
	}

	if _, err := repo.GetByID(ctx, "tr-404404"); !errors.Is(err, domain.ErrTransferNotFound) {
		t.Fatalf("expected ErrTransferNotFound, got %v", err)
	}
}

func TestReturnedTransfersAreCopies(t *testing.T) {
	repo := memory.NewTransferRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, seedTransfer("TXNCOPY00000001", "ACC001", "ACC002", "100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fetched, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fetched.Status = domain.TransferStatusCancelled

	again, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Status != domain.TransferStatusPending {
		t.Fatal("mutating a returned transfer must not affect the store")
	}
}

func TestListingsFilterAndPaginate(t *testing.T) {
	repo := memory.NewTransferRepository()
	ctx := context.Background()

	refs := []struct {
		reference string
		sender    string
		recipient string
	}{
		{"TXNLST000000001", "ACC001", "ACC002"},
		{"TXNLST000000002", "ACC001", "ACC003"},
		{"TXNLST000000003", "ACC002", "ACC001"},
	}
	for _, r := range refs {
		if _, err := repo.Create(ctx, seedTransfer(r.reference, r.sender, r.recipient, "100")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	sent, err := repo.ListSent(ctx, "ACC001", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent.TotalCount != 2 {
		t.Fatalf("expected 2 sent, got %d", sent.TotalCount)
	}
	if sent.Items[0].TransferReference != "TXNLST000000002" {
		t.Fatalf("expected newest-first, got %s", sent.Items[0].TransferReference)
	}

	received, err := repo.ListReceived(ctx, "ACC001", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.TotalCount != 1 {
		t.Fatalf("expected 1 received, got %d", received.TotalCount)
	}

	all, err := repo.ListByAccount(ctx, "ACC001", 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all.TotalCount != 3 || len(all.Items) != 2 {
		t.Fatalf("expected total 3 with 2 items on page, got %+v", all)
	}

	secondPage, err := repo.ListByAccount(ctx, "ACC001", 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(secondPage.Items) != 1 {
		t.Fatalf("expected 1 item on second page, got %d", len(secondPage.Items))
	}
}

func TestListByStatusHonorsLimit(t *testing.T) {
	repo := memory.NewTransferRepository()
	ctx := context.Background()

	for _, ref := range []string{"TXNSTA000000001", "TXNSTA000000002", "TXNSTA000000003"} {
		if _, err := repo.Create(ctx, seedTransfer(ref, "ACC001", "ACC002", "100")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	pending, err := repo.ListByStatus(ctx, domain.TransferStatusPending, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 results, got %d", len(pending))
	}

	completed, err := repo.ListByStatus(ctx, domain.TransferStatusCompleted, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(completed) != 0 {
		t.Fatalf("expected no completed transfers, got %d", len(completed))
	}
}

func TestSentStatsWindowAndCancelledExclusion(t *testing.T) {
	repo := memory.NewTransferRepository()
	ctx := context.Background()

	kept, err := repo.Create(ctx, seedTransfer("TXNSTT000000001", "ACC001", "ACC002", "150"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancelled, err := repo.Create(ctx, seedTransfer("TXNSTT000000002", "ACC001", "ACC002", "999"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancelled.Status = domain.TransferStatusCancelled
	if _, err := repo.Update(ctx, cancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count, total, err := repo.SentStats(ctx, "ACC001", time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}
	if !total.Equal(kept.Amount) {
		t.Fatalf("expected total %s, got %s", kept.Amount, total)
	}

	count, _, err = repo.SentStats(ctx, "ACC001", time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no transfers inside a future window, got %d", count)
	}
}
