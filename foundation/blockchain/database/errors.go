package database

import "errors"

// Set of errors returned by the ledger. Every error is the result of bad
// caller input or a state precondition, so none of them are retried.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDuplicateWallet      = errors.New("duplicate wallet")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidPagination    = errors.New("invalid pagination")
	ErrEmptyPool            = errors.New("no transactions in mempool")
	ErrSelfTransfer         = errors.New("sending money to yourself")
	ErrInvalidEmail         = errors.New("invalid email")
	ErrSystemSender         = errors.New("system wallet can't send money")
)
