package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/repository/repo_interfaces"
	"github.com/malcolmmaima/Telepesa-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

type storedTransfer struct {
	transfer domain.Transfer
	seq      int64
}

// TransferRepository keeps transfers in memory. It backs tests and
// broker-less runs; semantics match the postgres repository.
type TransferRepository struct {
	mu        sync.RWMutex
	byID      map[string]*storedTransfer
	idsByRef  map[string]string
	nextID    int64
	insertSeq int64
}

func NewTransferRepository() *TransferRepository {
	return &TransferRepository{
		byID:     make(map[string]*storedTransfer),
		idsByRef: make(map[string]string),
	}
}

func (r *TransferRepository) Create(_ context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.idsByRef[transfer.TransferReference]; exists {
		return domain.Transfer{}, repo_interfaces.ErrDuplicateReference
	}

	r.nextID++
	r.insertSeq++
	transfer.ID = fmt.Sprintf("tr-%06d", r.nextID)
	now := time.Now().UTC()
	transfer.CreatedAt = now
	transfer.UpdatedAt = now

	r.byID[transfer.ID] = &storedTransfer{transfer: copyTransfer(transfer), seq: r.insertSeq}
	r.idsByRef[transfer.TransferReference] = transfer.ID

	return transfer, nil
}

func (r *TransferRepository) Update(_ context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[transfer.ID]
	if !ok {
		return domain.Transfer{}, domain.ErrTransferNotFound
	}

	transfer.CreatedAt = stored.transfer.CreatedAt
	transfer.UpdatedAt = time.Now().UTC()
	stored.transfer = copyTransfer(transfer)

	return transfer, nil
}

func (r *TransferRepository) GetByID(_ context.Context, id string) (domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return domain.Transfer{}, domain.ErrTransferNotFound
	}
	return copyTransfer(stored.transfer), nil
}

func (r *TransferRepository) GetByReference(_ context.Context, reference string) (domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idsByRef[reference]
	if !ok {
		return domain.Transfer{}, domain.ErrTransferNotFound
	}
	return copyTransfer(r.byID[id].transfer), nil
}

func (r *TransferRepository) ListByAccount(_ context.Context, accountID string, page, size int) (domain.TransferPage, error) {
	return r.listPage(func(t domain.Transfer) bool {
		return t.SenderAccountID == accountID || t.RecipientAccountID == accountID
	}, page, size), nil
}

func (r *TransferRepository) ListSent(_ context.Context, senderAccountID string, page, size int) (domain.TransferPage, error) {
	return r.listPage(func(t domain.Transfer) bool {
		return t.SenderAccountID == senderAccountID
	}, page, size), nil
}

func (r *TransferRepository) ListReceived(_ context.Context, recipientAccountID string, page, size int) (domain.TransferPage, error) {
	return r.listPage(func(t domain.Transfer) bool {
		return t.RecipientAccountID == recipientAccountID
	}, page, size), nil
}

func (r *TransferRepository) ListByStatus(_ context.Context, status domain.TransferStatus, limit int) ([]domain.Transfer, error) {
	matches := r.newestFirst(func(t domain.Transfer) bool {
		return t.Status == status
	})
	if limit >= 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *TransferRepository) SentStats(_ context.Context, accountID string, since time.Time) (int64, decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	total := decimal.Zero
	for _, stored := range r.byID {
		t := stored.transfer
		if t.SenderAccountID != accountID || t.Status == domain.TransferStatusCancelled {
			continue
		}
		if t.CreatedAt.Before(since) {
			continue
		}
		count++
		total = total.Add(t.Amount)
	}
	return count, total, nil
}

func (r *TransferRepository) listPage(match func(domain.Transfer) bool, page, size int) domain.TransferPage {
	matches := r.newestFirst(match)

	total := int64(len(matches))
	start := page * size
	if start > len(matches) {
		start = len(matches)
	}
	end := start + size
	if end > len(matches) {
		end = len(matches)
	}

	return domain.TransferPage{
		Items:      matches[start:end],
		Page:       page,
		Size:       size,
		TotalCount: total,
	}
}

func (r *TransferRepository) newestFirst(match func(domain.Transfer) bool) []domain.Transfer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type entry struct {
		transfer domain.Transfer
		seq      int64
	}
	entries := make([]entry, 0)
	for _, stored := range r.byID {
		if match(stored.transfer) {
			entries = append(entries, entry{transfer: copyTransfer(stored.transfer), seq: stored.seq})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].transfer.CreatedAt.Equal(entries[j].transfer.CreatedAt) {
			return entries[i].seq > entries[j].seq
		}
		return entries[i].transfer.CreatedAt.After(entries[j].transfer.CreatedAt)
	})

	out := make([]domain.Transfer, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.transfer)
	}
	return out
}

func copyTransfer(t domain.Transfer) domain.Transfer {
	if t.FailureReason != nil {
		value := *t.FailureReason
		t.FailureReason = &value
	}
	if t.ProcessedBy != nil {
		value := *t.ProcessedBy
		t.ProcessedBy = &value
	}
	if t.ProcessedAt != nil {
		value := *t.ProcessedAt
		t.ProcessedAt = &value
	}
	return t
}
