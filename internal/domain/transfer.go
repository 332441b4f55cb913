package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransferStatus string

const (
	TransferStatusPending    TransferStatus = "PENDING"
	TransferStatusProcessing TransferStatus = "PROCESSING"
	TransferStatusCompleted  TransferStatus = "COMPLETED"
	TransferStatusFailed     TransferStatus = "FAILED"
	TransferStatusCancelled  TransferStatus = "CANCELLED"
)

type TransferType string

const (
	TransferTypeInternal     TransferType = "INTERNAL"
	TransferTypePesaLink     TransferType = "PESALINK"
	TransferTypeMpesa        TransferType = "MPESA"
	TransferTypeRTGS         TransferType = "RTGS"
	TransferTypeSwift        TransferType = "SWIFT"
	TransferTypeMobileMoney  TransferType = "MOBILE_MONEY"
	TransferTypeBankTransfer TransferType = "BANK_TRANSFER"
	TransferTypePeerToPeer   TransferType = "PEER_TO_PEER"
)

// TransferTypes lists every supported rail. The dispatcher and the fee
// policy table are keyed by these values.
var TransferTypes = []TransferType{
	TransferTypeInternal,
	TransferTypePesaLink,
	TransferTypeMpesa,
	TransferTypeRTGS,
	TransferTypeSwift,
	TransferTypeMobileMoney,
	TransferTypeBankTransfer,
	TransferTypePeerToPeer,
}

func ParseTransferType(value string) (TransferType, bool) {
	for _, t := range TransferTypes {
		if string(t) == value {
			return t, true
		}
	}
	return "", false
}

// Transfer is one transfer attempt. Identity, parties and rail are fixed at
// creation; only status, failure reason, processedBy and timestamps mutate
// afterwards. Records are never deleted.
type Transfer struct {
	ID                    string
	TransferReference     string
	SenderAccountID       string
	RecipientAccountID    string
	SenderName            string
	RecipientName         string
	SenderPhoneNumber     string
	RecipientPhoneNumber  string
	Amount                decimal.Decimal
	TransferFee           decimal.Decimal
	TotalAmount           decimal.Decimal
	Currency              string
	TransferType          TransferType
	Description           string
	SwiftCode             string
	RecipientBankName     string
	RecipientBankAddress  string
	IntermediaryBankSwift string
	SortCode              string
	PesalinkBankCode      string
	MpesaNumber           string
	Status                TransferStatus
	FailureReason         *string
	ProcessedBy           *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	ProcessedAt           *time.Time
}

// TransferStats aggregates the sent side of an account's transfers since a
// point in time. Received-side aggregation is not implemented; those fields
// are reported as zero.
type TransferStats struct {
	AccountID     string
	SentCount     int64
	TotalSent     decimal.Decimal
	ReceivedCount int64
	TotalReceived decimal.Decimal
	TotalFees     decimal.Decimal
	Since         time.Time
}

type TransferPage struct {
	Items      []Transfer
	Page       int
	Size       int
	TotalCount int64
}
