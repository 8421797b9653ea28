// Package database handles the data model of the ledger: transactions,
// blocks and the in memory ledger of wallet balances. It also defines the
// behavior required from a package that archives blocks.
package database

import "errors"

// ErrEndOfChain is returned by an iterator when there are no more blocks.
var ErrEndOfChain = errors.New("end of chain")

// Serializer interface represents the behavior required to be implemented by any
// package providing support for storing and reading the blockchain.
type Serializer interface {
	Write(blockData BlockData) error
	GetBlock(num uint64) (BlockData, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by any
// package providing support to iterate over the blocks. Next returns
// ErrEndOfChain once every block has been read.
type Iterator interface {
	Next() (BlockData, error)
	Done() bool
}

// =============================================================================

// BlockIterator converts the block data returned by a storage iterator
// into blocks.
type BlockIterator struct {
	iterator Iterator
}

// NewBlockIterator constructs a block iterator over the specified storage.
func NewBlockIterator(serializer Serializer) *BlockIterator {
	return &BlockIterator{
		iterator: serializer.ForEach(),
	}
}

// Next retrieves the next block from storage.
func (bi *BlockIterator) Next() (Block, error) {
	blockData, err := bi.iterator.Next()
	if err != nil {
		return Block{}, err
	}

	return ToBlock(blockData)
}

// Done returns the end of chain value.
func (bi *BlockIterator) Done() bool {
	return bi.iterator.Done()
}
