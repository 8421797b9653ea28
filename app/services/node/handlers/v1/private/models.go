package private

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/shopspring/decimal"
)

// Difficulty is the payload to change the mining difficulty.
type Difficulty struct {
	Difficulty float64 `json:"difficulty" validate:"required,gte=1"`
}

// Reward is the payload to change the mining reward.
type Reward struct {
	Reward decimal.Decimal `json:"reward"`
}

// Fee is the payload to change the fee rate.
type Fee struct {
	Fee decimal.Decimal `json:"fee"`
}

// Beneficiary is the payload to change the wallet receiving rewards and fees.
type Beneficiary struct {
	Beneficiary database.Address `json:"beneficiary" validate:"required"`
}
