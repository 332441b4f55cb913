package domain

import (
	"errors"
	"fmt"
)

var ErrTransferNotFound = errors.New("Transfer not found")
var ErrAccountUnavailable = errors.New("Account not found or unavailable")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrInvalidState = errors.New("Operation not permitted in current transfer state")

// RailError is a rail execution failure that is re-raised to the caller
// after the transfer has been durably marked FAILED. The INTERNAL rail
// never produces one; it absorbs failures into the record.
type RailError struct {
	Rail   TransferType
	Reason string
}

func (e *RailError) Error() string {
	return fmt.Sprintf("%s transfer failed: %s", e.Rail, e.Reason)
}
