package service_interfaces

import (
	"github.com/malcolmmaima/Telepesa-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

type FeeService interface {
	// CalculateTransferFee is pure: identical inputs always yield the
	// identical fee, which makes retries safe to re-price.
	CalculateTransferFee(amount decimal.Decimal, transferType domain.TransferType) decimal.Decimal
}
