// Package v1 represents types used by the web application for v1.
package v1

import (
	"errors"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
)

// ErrorResponse is the form used for API responses from failures in the API.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RequestError is used to pass an error during the request through the
// application with web specific context.
type RequestError struct {
	Err    error
	Status int
}

// NewRequestError wraps a provided error with an HTTP status code. This
// function should be used when handlers encounter expected errors.
func NewRequestError(err error, status int) error {
	return &RequestError{err, status}
}

// Error implements the error interface. It uses the default message of the
// wrapped error. This is what will be shown in the services' logs.
func (re *RequestError) Error() string {
	return re.Err.Error()
}

// Unwrap provides access to the wrapped ledger error.
func (re *RequestError) Unwrap() error {
	return re.Err
}

// IsRequestError checks if an error of type RequestError exists.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

// GetRequestError returns a copy of the RequestError pointer.
func GetRequestError(err error) *RequestError {
	var re *RequestError
	if !errors.As(err, &re) {
		return nil
	}
	return re
}

// =============================================================================

// ledgerErrors maps the ledger's sentinel errors to the status they
// are reported with.
var ledgerErrors = []struct {
	err    error
	status int
}{
	{chain.ErrWalletNotFound, http.StatusNotFound},
	{chain.ErrTransactionNotFound, http.StatusNotFound},
	{chain.ErrDuplicateWallet, http.StatusConflict},
	{chain.ErrDuplicateTransaction, http.StatusConflict},
	{chain.ErrInsufficientBalance, http.StatusBadRequest},
	{chain.ErrInvalidAmount, http.StatusBadRequest},
	{chain.ErrInvalidPagination, http.StatusBadRequest},
	{chain.ErrInvalidConfiguration, http.StatusBadRequest},
	{chain.ErrEmptyPool, http.StatusBadRequest},
	{chain.ErrSelfTransfer, http.StatusBadRequest},
	{chain.ErrInvalidEmail, http.StatusBadRequest},
	{chain.ErrSystemSender, http.StatusBadRequest},
}

// LedgerStatus returns the HTTP status for an error produced by the ledger.
// The boolean is false when the error is not a known ledger error.
func LedgerStatus(err error) (int, bool) {
	for _, le := range ledgerErrors {
		if errors.Is(err, le.err) {
			return le.status, true
		}
	}
	return 0, false
}
