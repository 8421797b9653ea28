package commands

import (
	"fmt"
	"sort"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// balancesCmd replays the archived blocks and prints the resulting balance
// of every address that appears in them.
func balancesCmd(load func() ([]database.Block, error)) *cobra.Command {
	cmd := cobra.Command{
		Use:   "balances [address]",
		Short: "Replay the archive and print the balances.",
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

			bals := replay(blocks)

			addrs := make([]database.Address, 0, len(bals))
			for addr := range bals {
				if onlyAddr != "" && addr != onlyAddr {
					continue
				}
				addrs = append(addrs, addr)
			}
			sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

			data := pterm.TableData{{"Address", "Balance"}}
			for _, addr := range addrs {
				data = append(data, []string{string(addr), bals[addr].String()})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "LatestBlockHash: %s\n\n", blocks[len(blocks)-1].Hash())

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

// replay computes the balances produced by the blocks. Senders pay the
// amount plus fee, receivers get the amount, and the beneficiary of each
// block gets the reward plus the fees.
func replay(blocks []database.Block) map[database.Address]decimal.Decimal {
	bals := make(map[database.Address]decimal.Decimal)

	for _, block := range blocks {
		for _, tx := range block.Values() {
			bals[tx.From] = bals[tx.From].Sub(tx.Cost())
			bals[tx.To] = bals[tx.To].Add(tx.Amount)
		}

		earned := block.Header.MiningReward.Add(block.Header.TotalFees)
		if !earned.IsZero() {
			bals[block.Header.BeneficiaryID] = bals[block.Header.BeneficiaryID].Add(earned)
		}
	}

	return bals
}
