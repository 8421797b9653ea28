package chain

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/shopspring/decimal"
)

// ValidateTransaction checks the sender can afford to send the amount with
// the current fee rate on top of what its pending transactions reserve.
func (c *Chain) ValidateTransaction(from database.Address, amount decimal.Decimal) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.validateTransaction(from, amount, c.settings.Fee)
}

// AddTransaction accepts a transaction from a wallet for inclusion in the
// next block.
func (c *Chain) AddTransaction(from database.Address, to database.Address, amount decimal.Decimal) (database.Tx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.validateTransaction(from, amount, c.settings.Fee); err != nil {
		return database.Tx{}, err
	}

	if !c.wallets.Exists(to) {
		return database.Tx{}, fmt.Errorf("to: %w: %s", ErrWalletNotFound, to)
	}

	if from == to {
		return database.Tx{}, fmt.Errorf("%w: %s", ErrSelfTransfer, from)
	}

	timeStamp := c.mempool.NextTimeStamp(c.now())
	tx := database.NewTx(from, to, amount, c.settings.Fee, timeStamp)

	if _, exists := c.txIndex[tx.Hash]; exists || c.mempool.Contains(tx.Hash) {
		return database.Tx{}, fmt.Errorf("%w: %s", ErrDuplicateTransaction, tx.Hash)
	}

	n, err := c.mempool.Add(tx)
	if err != nil {
		return database.Tx{}, err
	}

	c.evHandler("chain: AddTransaction: tx[%s]: mempool[%d]", tx, n)
	c.evHandler("viewer: tx: added: hash[%s]", tx.Hash)

	if c.Worker != nil {
		c.Worker.SignalStartMining()
	}

	return tx, nil
}

// =============================================================================

// validateTransaction performs the checks shared by validation and
// acceptance. The caller must hold the chain lock.
func (c *Chain) validateTransaction(from database.Address, amount decimal.Decimal, fee decimal.Decimal) error {
	if from == c.system {
		return fmt.Errorf("from: %w: %s", ErrSystemSender, from)
	}

	balance, err := c.wallets.Balance(from)
	if err != nil {
		return fmt.Errorf("from: %w", err)
	}

	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	cost := amount.Add(amount.Mul(fee))
	reserved := c.mempool.Pending(from)

	if balance.LessThan(cost.Add(reserved)) {
		return fmt.Errorf("%w: balance %s, pending %s, cost %s", ErrInsufficientBalance, balance, reserved, cost)
	}

	return nil
}
