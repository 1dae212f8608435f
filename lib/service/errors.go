package service

import "errors"

// Error kinds raised by the ledger core. They always propagate out of the
// surrounding database transaction, so a failed operation never leaves
// partial ledger state behind. The HTTP layer maps them with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrUnbalanced        = errors.New("transaction entries are not balanced")
	ErrInvalidState      = errors.New("invalid transaction state")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrConflict          = errors.New("conflict")
	ErrBadRequest        = errors.New("bad request")
)
