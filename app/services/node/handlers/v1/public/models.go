package public

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/shopspring/decimal"
)

// NewWallet is what we require from clients when registering a wallet.
type NewWallet struct {
	Email string `json:"email" validate:"required,email"`
}

// WalletCreated is returned after a wallet has been registered.
type WalletCreated struct {
	Address database.Address `json:"address"`
}

// NewTx is what we require from clients when submitting a transaction.
type NewTx struct {
	From   database.Address `json:"from" validate:"required"`
	To     database.Address `json:"to" validate:"required"`
	Amount decimal.Decimal  `json:"amount"`
}

// CheckTx is what we require from clients to check a transaction can be
// afforded without submitting it.
type CheckTx struct {
	From   database.Address `json:"from" validate:"required"`
	Amount decimal.Decimal  `json:"amount"`
}

// Status is returned by endpoints that have nothing else to report.
type Status struct {
	Status string `json:"status"`
}
