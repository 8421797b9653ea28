package cmd

import (
	"fmt"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var (
	page uint64
	size uint64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print your confirmed transactions, most recent first.",
	RunE:  historyRun,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Uint64VarP(&page, "page", "p", 0, "Page to show, starting at 0.")
	historyCmd.Flags().Uint64VarP(&size, "size", "s", 10, "Transactions per page.")
}

func historyRun(cmd *cobra.Command, args []string) error {
	if err := requireAddress(); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v1/wallets/%s/tx?page=%d&size=%d", nodeURL, address, page, size)

	var trans []database.Tx
	if err := call(http.MethodGet, url, nil, &trans); err != nil {
		return err
	}

	for _, tx := range trans {
		direction := "in "
		if tx.From == database.Address(address) {
			direction = "out"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s amount[%s] fee[%s] from[%s] to[%s]\n", direction, tx.Hash, tx.Amount, tx.Fee, tx.From, tx.To)
	}

	return nil
}
