package chain

import "github.com/ardanlabs/ledger/foundation/blockchain/database"

// CreateWallet registers a new wallet for the email and returns its address.
func (c *Chain) CreateWallet(email string) (database.Address, error) {
	wallet, err := c.wallets.Create(email)
	if err != nil {
		return "", err
	}

	c.evHandler("chain: CreateWallet: address[%s]", wallet.Address)

	return wallet.Address, nil
}
