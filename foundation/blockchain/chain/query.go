package chain

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/shopspring/decimal"
)

// QueryLatest represents to query the latest block in the chain.
const QueryLatest = ^uint64(0) >> 1

// =============================================================================

// GetLastHash returns the hash of the latest block. The chain always has a
// genesis block so there is always a hash.
func (c *Chain) GetLastHash() string {
	return c.LatestBlock().Hash()
}

// LatestBlock returns the current latest block.
func (c *Chain) LatestBlock() database.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.blocks[len(c.blocks)-1]
}

// Blocks returns the set of blocks between the block numbers inclusive.
// Use QueryLatest for either number to refer to the latest block.
func (c *Chain) Blocks(from uint64, to uint64) []database.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	latest := uint64(len(c.blocks) - 1)
	if from == QueryLatest {
		from = latest
		to = latest
	}
	if to == QueryLatest || to > latest {
		to = latest
	}

	if from > to {
		return nil
	}

	out := make([]database.Block, 0, to-from+1)
	out = append(out, c.blocks[from:to+1]...)

	return out
}

// GetWalletBalance returns the confirmed balance of the wallet. The readers
// below hold the chain lock so a block being committed is seen either fully
// applied or not at all.
func (c *Chain) GetWalletBalance(address database.Address) (decimal.Decimal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.wallets.Balance(address)
}

// Wallet returns a copy of the wallet.
func (c *Chain) Wallet(address database.Address) (database.Wallet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.wallets.Get(address)
}

// Wallets returns a copy of every wallet.
func (c *Chain) Wallets() map[database.Address]database.Wallet {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.wallets.Copy()
}

// GetWalletTransactions returns a page of the confirmed transactions sent or
// received by the wallet, most recent first.
func (c *Chain) GetWalletTransactions(address database.Address, page uint64, size uint64) ([]database.Tx, error) {
	if size == 0 {
		return nil, fmt.Errorf("%w: size must be greater than zero", ErrInvalidPagination)
	}

	if !c.wallets.Exists(address) {
		return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, address)
	}

	filter := func(tx database.Tx) bool {
		return tx.Involves(address)
	}

	return c.page(filter, page, size), nil
}

// GetTransactions returns a page of the confirmed transactions, most
// recent first.
func (c *Chain) GetTransactions(page uint64, size uint64) ([]database.Tx, error) {
	if size == 0 {
		return nil, fmt.Errorf("%w: size must be greater than zero", ErrInvalidPagination)
	}

	return c.page(nil, page, size), nil
}

// GetTransaction returns the confirmed transaction with the hash.
func (c *Chain) GetTransaction(hash string) (database.Tx, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tx, exists := c.txIndex[hash]
	if !exists {
		return database.Tx{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, hash)
	}

	return tx, nil
}

// Mempool returns a copy of the pending transactions in the order they
// were accepted.
func (c *Chain) Mempool() []database.Tx {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.mempool.Copy()
}

// MempoolLength returns the current length of the mempool.
func (c *Chain) MempoolLength() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.mempool.Count()
}

// =============================================================================

// page walks the confirmed transactions from the most recent and returns
// the requested page of the ones accepted by the filter.
func (c *Chain) page(filter func(tx database.Tx) bool, page uint64, size uint64) []database.Tx {
	c.mu.RLock()
	defer c.mu.RUnlock()

	skip := page * size
	if size != 0 && skip/size != page {
		return []database.Tx{}
	}

	out := []database.Tx{}
	for i := len(c.blocks) - 1; i >= 0; i-- {
		trans := c.blocks[i].Values()
		for j := len(trans) - 1; j >= 0; j-- {
			tx := trans[j]
			if filter != nil && !filter(tx) {
				continue
			}

			if skip > 0 {
				skip--
				continue
			}

			out = append(out, tx)
			if uint64(len(out)) == size {
				return out
			}
		}
	}

	return out
}
