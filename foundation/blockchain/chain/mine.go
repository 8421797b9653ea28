package chain

import (
	"context"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/ardanlabs/ledger/foundation/blockchain/merkle"
	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
	"github.com/shopspring/decimal"
)

// GenerateNewBlock mines the pending transactions into a new block and
// appends it to the chain. A block is mined even when the pool is empty,
// in which case it only carries the mining reward.
func (c *Chain) GenerateNewBlock(ctx context.Context) (database.Block, error) {
	c.miningMu.Lock()
	defer c.miningMu.Unlock()

	return c.generate(ctx)
}

// MineNewBlock attempts to create a new block with a proper hash that can become
// the next block in the chain. It fails with ErrEmptyPool when there is
// nothing to mine.
func (c *Chain) MineNewBlock(ctx context.Context) (database.Block, error) {
	c.miningMu.Lock()
	defer c.miningMu.Unlock()

	c.evHandler("chain: MineNewBlock: MINING: check mempool count")

	// Are there enough transactions in the pool.
	if c.mempool.Count() == 0 {
		return database.Block{}, ErrEmptyPool
	}

	return c.generate(ctx)
}

// ProofOfWork searches for the nonce that solves the header at the
// difficulty recorded in the header. The nonce in the header is ignored.
func (c *Chain) ProofOfWork(ctx context.Context, header database.BlockHeader) (uint64, string, error) {
	hashFn := func(nonce uint64) [digest.Size]byte {
		header.Nonce = nonce
		return digest.Sum(header)
	}

	solution, err := pow.Search(ctx, header.Difficulty, hashFn, c.evHandler)
	if err != nil {
		return 0, "", err
	}

	return solution.Nonce, solution.Hash, nil
}

// GetMerkle returns the merkle root for the ordered set of transactions.
func (c *Chain) GetMerkle(trans []database.Tx) (string, error) {
	return merkle.RootHex(trans)
}

// =============================================================================

// generate performs the mining operation. The caller must hold the mining
// lock so only one block is being built at a time.
func (c *Chain) generate(ctx context.Context) (database.Block, error) {
	c.evHandler("chain: GenerateNewBlock: MINING: started")
	defer c.evHandler("chain: GenerateNewBlock: MINING: completed")

	// Snapshot what is needed to build the block under the read lock.
	c.mu.RLock()
	settings := c.settings
	tip := c.blocks[len(c.blocks)-1]
	c.mu.RUnlock()

	// Pick the transactions for this block from the mempool.
	trans := c.mempool.PickBest(c.transPerBlock)

	c.evHandler("chain: GenerateNewBlock: MINING: perform POW: trans[%d]", len(trans))

	// Attempt to create a new block by solving the POW puzzle. This can be cancelled.
	block, err := database.POW(ctx, database.POWArgs{
		BeneficiaryID: settings.Beneficiary,
		Difficulty:    settings.Difficulty,
		MiningReward:  settings.Reward,
		PrevBlock:     &tip,
		TimeStamp:     max(c.now(), tip.Header.TimeStamp),
		Trans:         trans,
		EvHandler:     c.evHandler,
	})
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	c.evHandler("chain: GenerateNewBlock: MINING: validate and update chain")

	if err := c.commit(block); err != nil {
		return database.Block{}, err
	}

	return block, nil
}

// mineGenesis mines the first block of the chain. It has no transactions
// and carries no reward.
func (c *Chain) mineGenesis() error {
	block, err := database.POW(context.Background(), database.POWArgs{
		BeneficiaryID: c.settings.Beneficiary,
		Difficulty:    c.settings.Difficulty,
		MiningReward:  decimal.Zero,
		TimeStamp:     c.now(),
		EvHandler:     c.evHandler,
	})
	if err != nil {
		return fmt.Errorf("mine genesis: %w", err)
	}

	if err := block.ValidateGenesis(c.evHandler); err != nil {
		return fmt.Errorf("validate genesis: %w", err)
	}

	// A new chain starts a new archive.
	if c.storage != nil {
		if err := c.storage.Reset(); err != nil {
			return fmt.Errorf("reset storage: %w", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.blocks = append(c.blocks, block)
	c.archive(block)

	return nil
}

// commit validates the block against the current tip and, when valid,
// applies it to the wallets, appends it to the chain, removes its
// transactions from the mempool and archives it.
func (c *Chain) commit(block database.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tip := c.blocks[len(c.blocks)-1]
	if err := block.ValidateBlock(tip, c.evHandler); err != nil {
		return err
	}

	c.evHandler("chain: commit: blk[%d]: update wallets", block.Header.Number)

	// Process the transactions and update the wallets. Nothing is changed
	// if any balance would go negative.
	if err := c.wallets.ApplyBlock(block); err != nil {
		return err
	}

	c.blocks = append(c.blocks, block)

	trans := block.Values()
	for _, tx := range trans {
		c.txIndex[tx.Hash] = tx
	}

	c.evHandler("chain: commit: blk[%d]: remove %d transactions from mempool", block.Header.Number, len(trans))

	c.mempool.Remove(trans)
	c.archive(block)

	c.evHandler("viewer: block: number[%d]: hash[%s]: trans[%d]", block.Header.Number, block.Hash(), len(trans))

	return nil
}

// archive writes the block to the storage when one is configured. The
// chain in memory is the source of truth, so a failed write is reported
// through the event handler and the block stays committed.
func (c *Chain) archive(block database.Block) {
	if c.storage == nil {
		return
	}

	if err := c.storage.Write(database.NewBlockData(block)); err != nil {
		c.evHandler("chain: archive: blk[%d]: ERROR: %s", block.Header.Number, err)
	}
}

// now returns the current time of the chain clock in unix seconds.
func (c *Chain) now() uint64 {
	return uint64(c.clock().UTC().Unix())
}
