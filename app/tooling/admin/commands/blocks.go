package commands

import (
	"fmt"
	"strconv"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// blocksCmd prints a table of the archived blocks.
func blocksCmd(load func() ([]database.Block, error)) *cobra.Command {
	cmd := cobra.Command{
		Use:   "blocks",
		Short: "List the archived blocks.",
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := load()
			if err != nil {
				return err
			}

			data := pterm.TableData{
				{"Number", "Hash", "Prev", "Trans", "Reward", "Fees", "Beneficiary", "Nonce"},
			}
			for _, block := range blocks {
				data = append(data, []string{
					strconv.FormatUint(block.Header.Number, 10),
					short(block.Hash()),
					short(block.Header.PrevBlockHash),
					strconv.Itoa(len(block.Values())),
					block.Header.MiningReward.String(),
					block.Header.TotalFees.String(),
					string(block.Header.BeneficiaryID),
					strconv.FormatUint(block.Header.Nonce, 10),
				})
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

// short abbreviates a hash for display.
func short(hash string) string {
	if len(hash) <= 14 {
		return hash
	}
	return hash[:8] + ".." + hash[len(hash)-4:]
}
