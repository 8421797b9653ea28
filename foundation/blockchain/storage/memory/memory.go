// Package memory implements the ability to read and write blocks to memory
// using a slice.
package memory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// ErrNotFound is returned when a block number is not stored.
var ErrNotFound = errors.New("block does not exist")

// Memory represents the serialization implementation for reading and storing
// blocks in memory using a slice. This implements the database.Serializer
// interface.
type Memory struct {
	mu     sync.RWMutex
	blocks []database.BlockData
}

// New constructs a Memory value for use.
func New() *Memory {
	return &Memory{}
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Write takes the specified database blocks and stores it in memory.
func (m *Memory) Write(blockData database.BlockData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := uint64(len(m.blocks))
	if l != blockData.Header.Number {
		return fmt.Errorf("block is out of order, got %d, exp %d", blockData.Header.Number, l)
	}

	m.blocks = append(m.blocks, blockData)

	return nil
}

// GetBlock searches the blockchain to locate and return the contents of
// the specified block by number.
func (m *Memory) GetBlock(num uint64) (database.BlockData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if num >= uint64(len(m.blocks)) {
		return database.BlockData{}, fmt.Errorf("%w: %d", ErrNotFound, num)
	}

	return m.blocks[num], nil
}

// ForEach returns an iterator to walk through all the blocks
// starting with the genesis block.
func (m *Memory) ForEach() database.Iterator {
	return &memoryIterator{storage: m}
}

// Reset will clear out the blockchain in memory.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = nil
	return nil
}

// =============================================================================

// memoryIterator represents the iteration implementation for walking
// through and reading blocks in memory. This implements the database
// Iterator interface.
type memoryIterator struct {
	storage *Memory // Access to the storage API.
	current uint64  // Current block number being iterated over.
	eoc     bool    // Represents the iterator is at the end of the chain.
}

// Next retrieves the next block from memory.
func (mi *memoryIterator) Next() (database.BlockData, error) {
	if mi.eoc {
		return database.BlockData{}, database.ErrEndOfChain
	}

	blockData, err := mi.storage.GetBlock(mi.current)
	if err != nil {
		mi.eoc = true
		return database.BlockData{}, database.ErrEndOfChain
	}

	mi.current++

	return blockData, nil
}

// Done returns the end of chain value.
func (mi *memoryIterator) Done() bool {
	return mi.eoc
}
