package chain

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Verify revalidates every block in the chain: the genesis block, the link
// of each block to its parent, the merkle roots and the proof of work.
func (c *Chain) Verify() error {
	c.mu.RLock()
	blocks := make([]database.Block, len(c.blocks))
	copy(blocks, c.blocks)
	c.mu.RUnlock()

	return VerifyBlocks(blocks, c.evHandler)
}

// VerifyBlocks validates an ordered sequence of blocks starting with the
// genesis block.
func VerifyBlocks(blocks []database.Block, evHandler func(v string, args ...any)) error {
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}

	if len(blocks) == 0 {
		return errors.New("no genesis block")
	}

	if err := blocks[0].ValidateGenesis(evHandler); err != nil {
		return fmt.Errorf("blk[0]: %w", err)
	}

	for i := 1; i < len(blocks); i++ {
		if err := blocks[i].ValidateBlock(blocks[i-1], evHandler); err != nil {
			return fmt.Errorf("blk[%d]: %w", i, err)
		}
	}

	return nil
}

// ReadBlocks reads every block from the storage in order.
func ReadBlocks(serializer database.Serializer) ([]database.Block, error) {
	var blocks []database.Block

	iter := database.NewBlockIterator(serializer)
	for {
		block, err := iter.Next()
		if errors.Is(err, database.ErrEndOfChain) {
			break
		}
		if err != nil {
			return nil, err
		}

		blocks = append(blocks, block)
	}

	return blocks, nil
}
