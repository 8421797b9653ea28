package commands

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// verifyCmd revalidates the archived chain: genesis, parent links, merkle
// roots and proof of work.
func verifyCmd(log *zap.SugaredLogger, load func() ([]database.Block, error)) *cobra.Command {
	cmd := cobra.Command{
		Use:   "verify",
		Short: "Verify the integrity of the archived chain.",
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := load()
			if err != nil {
				return err
			}

			ev := func(v string, args ...any) {
				log.Debugw(fmt.Sprintf(v, args...))
			}

			if err := chain.VerifyBlocks(blocks, ev); err != nil {
				fmt.Fprint(cmd.OutOrStdout(), pterm.Error.Sprintln(err))
				return err
			}

			msg := fmt.Sprintf("chain verified: %d blocks, latest %s", len(blocks), blocks[len(blocks)-1].Hash())
			fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintln(msg))
			return nil
		},
	}

	return &cmd
}
