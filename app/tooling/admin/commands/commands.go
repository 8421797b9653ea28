// Package commands contains the admin tool commands.
package commands

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/storage/disk"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// New constructs the root command with every admin command registered.
func New(log *zap.SugaredLogger, build string) *cobra.Command {
	var dbPath string

	root := cobra.Command{
		Use:          "admin",
		Short:        "Administrative tasks for a ledger block archive",
		Version:      build,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&dbPath, "db-path", "d", "zblock/blocks.db", "Path to the block archive.")

	load := func() ([]database.Block, error) {
		return readArchive(log, dbPath)
	}

	root.AddCommand(
		verifyCmd(log, load),
		blocksCmd(load),
		balancesCmd(load),
		transactionsCmd(load),
	)

	return &root
}

// readArchive reads every block stored in the archive at the path.
func readArchive(log *zap.SugaredLogger, dbPath string) ([]database.Block, error) {
	storage, err := disk.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer storage.Close()

	blocks, err := chain.ReadBlocks(storage)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}

	if len(blocks) == 0 {
		return nil, fmt.Errorf("archive %s has no blocks", dbPath)
	}

	log.Infow("archive", "status", "blocks read", "path", dbPath, "blocks", len(blocks))

	return blocks, nil
}
