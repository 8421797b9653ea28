package database

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/shopspring/decimal"
)

// Tx is the transactional information between two wallets.
type Tx struct {
	Hash      string          `json:"hash"`      // Hash over the remaining fields.
	From      Address         `json:"from"`      // Wallet paying the amount and fee.
	To        Address         `json:"to"`        // Wallet receiving the amount.
	Amount    decimal.Decimal `json:"amount"`    // Value moved between the wallets.
	Fee       decimal.Decimal `json:"fee"`       // Amount times the fee rate, paid to the block beneficiary.
	TimeStamp uint64          `json:"timestamp"` // Unix seconds when the transaction was accepted.
}

// txData is the canonical form of a transaction that is hashed.
type txData struct {
	From      Address         `json:"from"`
	To        Address         `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Fee       decimal.Decimal `json:"fee"`
	TimeStamp uint64          `json:"timestamp"`
}

// NewTx constructs a new transaction. The fee is derived from the amount
// and the fee rate, and the hash is computed over the result.
func NewTx(from Address, to Address, amount decimal.Decimal, feeRate decimal.Decimal, timeStamp uint64) Tx {
	tx := Tx{
		From:      from,
		To:        to,
		Amount:    amount,
		Fee:       amount.Mul(feeRate),
		TimeStamp: timeStamp,
	}
	tx.Hash = tx.computeHash()

	return tx
}

// Cost returns the total debited from the sender, the amount plus the fee.
func (tx Tx) Cost() decimal.Decimal {
	return tx.Amount.Add(tx.Fee)
}

// Validate checks the stored hash matches the transaction data and the
// amount is positive.
func (tx Tx) Validate() error {
	if !tx.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, tx.Amount)
	}

	if tx.Fee.IsNegative() {
		return fmt.Errorf("negative fee: %s", tx.Fee)
	}

	if exp := tx.computeHash(); tx.Hash != exp {
		return fmt.Errorf("transaction hash mismatch, got %s, exp %s", tx.Hash, exp)
	}

	return nil
}

// Involves reports whether the address is the sender or the receiver.
func (tx Tx) Involves(address Address) bool {
	return tx.From == address || tx.To == address
}

// HashBytes implements the merkle Hashable interface. The leaf of a
// transaction is its own hash.
func (tx Tx) HashBytes() ([]byte, error) {
	return digest.Decode(tx.Hash)
}

// Equals implements the merkle Hashable interface for providing an equality
// check between two transactions. Transactions with the same hash are the
// same transaction.
func (tx Tx) Equals(otherTx Tx) bool {
	return tx.Hash == otherTx.Hash
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s:%s->%s:%s", tx.Hash, tx.From, tx.To, tx.Amount)
}

// =============================================================================

// computeHash hashes the canonical form of the transaction.
func (tx Tx) computeHash() string {
	return digest.Hash(txData{
		From:      tx.From,
		To:        tx.To,
		Amount:    tx.Amount,
		Fee:       tx.Fee,
		TimeStamp: tx.TimeStamp,
	})
}
