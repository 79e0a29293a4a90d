package models

import (
	"errors"
)

// Ledger error taxonomy. All of these are recoverable: the command layer
// renders them as replies and the process keeps running.
var (
	// ErrUserNotFound means the username has no ledger entry.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser means a ledger entry already exists for the
	// username. Creation paths treat it as a no-op.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInsufficientFunds means the balance cannot cover the debit.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
