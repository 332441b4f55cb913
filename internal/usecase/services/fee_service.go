package services

import (
	"github.com/malcolmmaima/Telepesa-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// feePolicy prices one rail: either a flat fee, or a percentage of the
// amount clamped between floor and ceiling after rounding.
type feePolicy struct {
	fixed   decimal.Decimal
	percent decimal.Decimal
	floor   decimal.Decimal
	ceiling decimal.Decimal
}

var feePolicies = map[domain.TransferType]feePolicy{
	domain.TransferTypeInternal: {fixed: decimal.Zero},
	domain.TransferTypePesaLink: {fixed: decimal.RequireFromString("25.00")},
	domain.TransferTypeMpesa:    {fixed: decimal.RequireFromString("15.00")},
	domain.TransferTypeRTGS:     {fixed: decimal.RequireFromString("500.00")},
	domain.TransferTypeSwift:    {fixed: decimal.RequireFromString("25.00")},
	domain.TransferTypeMobileMoney: {
		percent: decimal.RequireFromString("0.01"),
		floor:   decimal.RequireFromString("10.00"),
		ceiling: decimal.RequireFromString("200.00"),
	},
	domain.TransferTypeBankTransfer: {
		percent: decimal.RequireFromString("0.005"),
		floor:   decimal.RequireFromString("20.00"),
		ceiling: decimal.RequireFromString("500.00"),
	},
	domain.TransferTypePeerToPeer: {
		percent: decimal.RequireFromString("0.002"),
		floor:   decimal.RequireFromString("5.00"),
		ceiling: decimal.RequireFromString("100.00"),
	},
}

type FeeService struct{}

func NewFeeService() *FeeService {
	return &FeeService{}
}

// CalculateTransferFee returns the fee for moving amount over the given
// rail. Percentage fees round half-up to 2 decimal places before the
// floor/ceiling clamp. Unknown rails price at zero.
func (s *FeeService) CalculateTransferFee(amount decimal.Decimal, transferType domain.TransferType) decimal.Decimal {
	policy, ok := feePolicies[transferType]
	if !ok {
		return decimal.Zero
	}

	if policy.percent.IsZero() {
		return policy.fixed
	}

	fee := amount.Mul(policy.percent).Round(2)
	if fee.LessThan(policy.floor) {
		return policy.floor
	}
	if fee.GreaterThan(policy.ceiling) {
		return policy.ceiling
	}
	return fee
}
