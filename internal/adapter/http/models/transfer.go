package models

import (
	"errors"
	"strings"
	"time"

	"github.com/malcolmmaima/Telepesa-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateTransferRequest struct {
	RecipientAccountID    string          `json:"recipientAccountId"`
	Amount                decimal.Decimal `json:"amount"`
	Currency              string          `json:"currency"`
	TransferType          string          `json:"transferType"`
	Description           string          `json:"description"`
	RecipientName         string          `json:"recipientName"`
	RecipientPhoneNumber  string          `json:"recipientPhoneNumber"`
	SwiftCode             string          `json:"swiftCode"`
	RecipientBankName     string          `json:"recipientBankName"`
	RecipientBankAddress  string          `json:"recipientBankAddress"`
	IntermediaryBankSwift string          `json:"intermediaryBankSwift"`
	SortCode              string          `json:"sortCode"`
	PesalinkBankCode      string          `json:"pesalinkBankCode"`
	MpesaNumber           string          `json:"mpesaNumber"`
}

func (r CreateTransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.RecipientAccountID) == "" {
		errs = append(errs, "recipientAccountId is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	transferType, ok := domain.ParseTransferType(strings.TrimSpace(r.TransferType))
	if !ok {
		errs = append(errs, "transferType is not supported")
	}

	currency := strings.ToUpper(strings.TrimSpace(r.Currency))
	if currency != "" && len(currency) != 3 {
		errs = append(errs, "currency must be 3 characters")
	}

	if ok {
		switch transferType {
		case domain.TransferTypeSwift:
			if strings.TrimSpace(r.SwiftCode) == "" {
				errs = append(errs, "swiftCode is required for SWIFT transfers")
			}
			if strings.TrimSpace(r.RecipientBankName) == "" {
				errs = append(errs, "recipientBankName is required for SWIFT transfers")
			}
		case domain.TransferTypePesaLink:
			if strings.TrimSpace(r.PesalinkBankCode) == "" {
				errs = append(errs, "pesalinkBankCode is required for PESALINK transfers")
			}
		case domain.TransferTypeMpesa:
			if strings.TrimSpace(r.MpesaNumber) == "" {
				errs = append(errs, "mpesaNumber is required for MPESA transfers")
			}
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type CancelTransferRequest struct {
	Reason string `json:"reason"`
}

func (r CancelTransferRequest) Validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return errors.New("reason is required")
	}
	return nil
}

type TransferResponse struct {
	ID                   string           `json:"id"`
	TransferReference    string           `json:"transferReference"`
	SenderAccountID      string           `json:"senderAccountId"`
	RecipientAccountID   string           `json:"recipientAccountId"`
	SenderName           string           `json:"senderName"`
	RecipientName        string           `json:"recipientName"`
	SenderPhoneNumber    string           `json:"senderPhoneNumber,omitempty"`
	RecipientPhoneNumber string           `json:"recipientPhoneNumber,omitempty"`
	Amount               decimal.Decimal  `json:"amount"`
	TransferFee          decimal.Decimal  `json:"transferFee"`
	TotalAmount          decimal.Decimal  `json:"totalAmount"`
	Currency             string           `json:"currency"`
	TransferType         string           `json:"transferType"`
	Status               string           `json:"status"`
	Description          string           `json:"description,omitempty"`
	FailureReason        string           `json:"failureReason,omitempty"`
	ProcessedBy          string           `json:"processedBy,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
	ProcessedAt          *time.Time       `json:"processedAt,omitempty"`
}

type TransferPageResponse struct {
	Transfers  []TransferResponse `json:"transfers"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
	TotalCount int64              `json:"totalCount"`
}

type TransferListResponse struct {
	Transfers []TransferResponse `json:"transfers"`
}

type TransferStatsResponse struct {
	AccountID     string          `json:"accountId"`
	SentCount     int64           `json:"sentCount"`
	TotalSent     decimal.Decimal `json:"totalSent"`
	ReceivedCount int64           `json:"receivedCount"`
	TotalReceived decimal.Decimal `json:"totalReceived"`
	TotalFees     decimal.Decimal `json:"totalFees"`
	Since         time.Time       `json:"since"`
}

type FeeResponse struct {
	Amount       decimal.Decimal `json:"amount"`
	TransferType string          `json:"transferType"`
	TransferFee  decimal.Decimal `json:"transferFee"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}
