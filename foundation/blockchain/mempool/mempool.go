// Package mempool maintains the pool of pending transactions for the ledger.
package mempool

import (
	"fmt"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool/selector"
	"github.com/shopspring/decimal"
)

// Mempool represents a cache of pending transactions kept in the order they
// were accepted, with a second key on the transaction hash.
type Mempool struct {
	mu       sync.RWMutex
	pool     []database.Tx
	hashes   map[string]struct{}
	lastTS   uint64
	selectFn selector.Func
}

// New constructs a new mempool using the default select strategy.
func New() (*Mempool, error) {
	return NewWithStrategy(selector.StrategyFIFO)
}

// NewWithStrategy constructs a new mempool with specified select strategy.
func NewWithStrategy(strategy string) (*Mempool, error) {
	selectFn, err := selector.Retrieve(strategy)
	if err != nil {
		return nil, err
	}

	mp := Mempool{
		hashes:   make(map[string]struct{}),
		selectFn: selectFn,
	}

	return &mp, nil
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transaction to the pool and returns the new pool size.
// Timestamps in the pool never go backwards.
func (mp *Mempool) Add(tx database.Tx) (int, error) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if _, exists := mp.hashes[tx.Hash]; exists {
		return 0, fmt.Errorf("%w: %s", database.ErrDuplicateTransaction, tx.Hash)
	}

	if tx.TimeStamp < mp.lastTS {
		return 0, fmt.Errorf("transaction timestamp %d is before the last accepted timestamp %d", tx.TimeStamp, mp.lastTS)
	}

	mp.pool = append(mp.pool, tx)
	mp.hashes[tx.Hash] = struct{}{}
	mp.lastTS = tx.TimeStamp

	return len(mp.pool), nil
}

// Contains reports whether a transaction with the hash is pending.
func (mp *Mempool) Contains(hash string) bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	_, exists := mp.hashes[hash]
	return exists
}

// NextTimeStamp returns the timestamp to use for a transaction created at
// now so the pool ordering is preserved.
func (mp *Mempool) NextTimeStamp(now uint64) uint64 {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return max(now, mp.lastTS)
}

// Pending returns the total amount plus fees reserved by the pending
// transactions sent from the address.
func (mp *Mempool) Pending(from database.Address) decimal.Decimal {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	total := decimal.Zero
	for _, tx := range mp.pool {
		if tx.From == from {
			total = total.Add(tx.Cost())
		}
	}

	return total
}

// Remove deletes the specified transactions from the pool. Transactions that
// are not in the pool are ignored.
func (mp *Mempool) Remove(txs []database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	drop := make(map[string]struct{}, len(txs))
	for _, tx := range txs {
		drop[tx.Hash] = struct{}{}
	}

	pool := make([]database.Tx, 0, len(mp.pool))
	for _, tx := range mp.pool {
		if _, exists := drop[tx.Hash]; exists {
			delete(mp.hashes, tx.Hash)
			continue
		}
		pool = append(pool, tx)
	}

	mp.pool = pool
}

// Copy returns a copy of the pending transactions in the order they were
// accepted.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	txs := make([]database.Tx, len(mp.pool))
	copy(txs, mp.pool)

	return txs
}

// PickBest uses the configured select strategy to return the next set
// of transactions for the next block. Pass -1 for all the transactions.
func (mp *Mempool) PickBest(howMany int) []database.Tx {
	return mp.selectFn(mp.Copy(), howMany)
}
