package commands

import (
	"fmt"
	"strconv"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// transactionsCmd prints the archived transactions, optionally only those
// involving an address.
func transactionsCmd(load func() ([]database.Block, error)) *cobra.Command {
	cmd := cobra.Command{
		Use:   "trans [address]",
		Short: "List the archived transactions.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := load()
			if err != nil {
				return err
			}

			var onlyAddr database.Address
			if len(args) == 1 {
				onlyAddr = database.Address(args[0])
			}

			data := pterm.TableData{{"Block", "Hash", "From", "To", "Amount", "Fee"}}
			for _, block := range blocks {
				for _, tx := range block.Values() {
					if onlyAddr != "" && !tx.Involves(onlyAddr) {
						continue
					}
					data = append(data, []string{
						strconv.FormatUint(block.Header.Number, 10),
						short(tx.Hash),
						string(tx.From),
						string(tx.To),
						tx.Amount.String(),
						tx.Fee.String(),
					})
				}
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	return &cmd
}
