// Package disk implements the ability to read and write blocks to disk
// writing each block to a separate block numbered file.
package disk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// previousPrefix names the directories Reset moves replaced chains into.
const previousPrefix = "previous-"

// Disk represents the serialization implementation for reading and storing
// blocks in their own separate files on disk. This implements the database.Serializer
// interface.
type Disk struct {
	dbPath string
}

// New constructs a Disk value for use.
func New(dbPath string) (*Disk, error) {
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, err
	}

	return &Disk{dbPath: dbPath}, nil
}

// Close in this implementation has nothing to do since a new file is
// written to disk for each new block and then immediately closed.
func (d *Disk) Close() error {
	return nil
}

// Write takes the specified database blocks and stores it on disk in a
// file labeled with the block number.
func (d *Disk) Write(blockData database.BlockData) error {

	// Marshal the block for writing to disk in a more human readable format.
	data, err := json.MarshalIndent(blockData, "", "  ")
	if err != nil {
		return err
	}

	// Create a new file for this block and name it based on the block number.
	f, err := os.OpenFile(d.getPath(blockData.Header.Number), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	// Write the new block to disk.
	if _, err := f.Write(data); err != nil {
		return err
	}

	return nil
}

// GetBlock searches the blockchain on disk to locate and return the
// contents of the specified block by number.
func (d *Disk) GetBlock(num uint64) (database.BlockData, error) {

	// Open the block file for the specified number.
	f, err := os.OpenFile(d.getPath(num), os.O_RDONLY, 0600)
	if err != nil {
		return database.BlockData{}, err
	}
	defer f.Close()

	// Decode the contents of the block.
	var blockData database.BlockData
	if err := json.NewDecoder(f).Decode(&blockData); err != nil {
		return database.BlockData{}, fmt.Errorf("decode block %d: %w", num, err)
	}

	return blockData, nil
}

// ForEach returns an iterator to walk through all the blocks
// starting with the genesis block.
func (d *Disk) ForEach() database.Iterator {
	return &diskIterator{disk: d}
}

// Reset clears out the blockchain on disk. The block files of the previous
// chain are moved into a new previous-* directory under the archive, so a
// restart never destroys an archive.
func (d *Disk) Reset() error {
	entries, err := os.ReadDir(d.dbPath)
	if err != nil {
		return err
	}

	var backup string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		if backup == "" {
			if backup, err = os.MkdirTemp(d.dbPath, previousPrefix); err != nil {
				return err
			}
		}

		if err := os.Rename(filepath.Join(d.dbPath, entry.Name()), filepath.Join(backup, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

// Previous returns the directories holding the chains replaced by Reset.
func (d *Disk) Previous() ([]string, error) {
	return filepath.Glob(filepath.Join(d.dbPath, previousPrefix+"*"))
}

// getPath forms the path to the specified block.
func (d *Disk) getPath(blockNum uint64) string {
	name := strconv.FormatUint(blockNum, 10)
	return filepath.Join(d.dbPath, fmt.Sprintf("%s.json", name))
}

// =============================================================================

// diskIterator represents the iteration implementation for walking
// through and reading blocks on disk. This implements the database
// Iterator interface.
type diskIterator struct {
	disk    *Disk  // Access to the storage API.
	current uint64 // Current block number being iterated over.
	eoc     bool   // Represents the iterator is at the end of the chain.
}

// Next retrieves the next block from disk.
func (di *diskIterator) Next() (database.BlockData, error) {
	if di.eoc {
		return database.BlockData{}, database.ErrEndOfChain
	}

	blockData, err := di.disk.GetBlock(di.current)
	if err != nil {
		di.eoc = true
		if errors.Is(err, fs.ErrNotExist) {
			return database.BlockData{}, database.ErrEndOfChain
		}
		return database.BlockData{}, err
	}

	di.current++

	return blockData, nil
}

// Done returns the end of chain value.
func (di *diskIterator) Done() bool {
	return di.eoc
}
