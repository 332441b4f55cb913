// Package events publishes transfer lifecycle events for downstream
// consumers (notifications, reconciliation). Publication is
// fire-and-forget: a broker outage never affects transfer processing.
package events

import (
	"context"
	"time"
)

type TransferEvent struct {
	TransferID        string    `json:"transfer_id"`
	TransferReference string    `json:"transfer_reference"`
	TransferType      string    `json:"transfer_type"`
	Status            string    `json:"status"`
	Amount            string    `json:"amount"`
	Currency          string    `json:"currency"`
	FailureReason     string    `json:"failure_reason,omitempty"`
	OccurredAt        time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishTransferEvent(ctx context.Context, event TransferEvent)
}

// NopPublisher is used when kafka is disabled and in tests.
type NopPublisher struct{}

func (NopPublisher) PublishTransferEvent(context.Context, TransferEvent) {}
