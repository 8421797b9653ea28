package chain

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/shopspring/decimal"
)

// Config returns a copy of the current chain settings.
func (c *Chain) Config() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.settings
}

// UpdateDifficulty changes the difficulty used by blocks mined from now on.
func (c *Chain) UpdateDifficulty(difficulty float64) error {
	if err := validateDifficulty(difficulty); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings.Difficulty = difficulty
	c.evHandler("chain: UpdateDifficulty: difficulty[%v]", difficulty)

	return nil
}

// UpdateReward changes the mining reward of blocks mined from now on.
func (c *Chain) UpdateReward(reward decimal.Decimal) error {
	if err := validateReward(reward); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings.Reward = reward
	c.evHandler("chain: UpdateReward: reward[%s]", reward)

	return nil
}

// UpdateFee changes the fee rate of transactions added from now on.
func (c *Chain) UpdateFee(fee decimal.Decimal) error {
	if err := validateFee(fee); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings.Fee = fee
	c.evHandler("chain: UpdateFee: fee[%s]", fee)

	return nil
}

// UpdateBeneficiary changes the wallet receiving the reward and fees of
// blocks mined from now on.
func (c *Chain) UpdateBeneficiary(address database.Address) error {
	if !c.wallets.Exists(address) {
		return fmt.Errorf("beneficiary: %w: %s", ErrWalletNotFound, address)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings.Beneficiary = address
	c.evHandler("chain: UpdateBeneficiary: beneficiary[%s]", address)

	return nil
}

// Beneficiary returns the wallet receiving the reward and fees.
func (c *Chain) Beneficiary() database.Address {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.settings.Beneficiary
}
