package cmd

import (
	"fmt"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print your balance.",
	RunE:  balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) error {
	if err := requireAddress(); err != nil {
		return err
	}

	var wallet database.Wallet
	if err := call(http.MethodGet, fmt.Sprintf("%s/v1/wallets/%s", nodeURL, address), nil, &wallet); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "For Wallet:", wallet.Address, wallet.Email)
	fmt.Fprintln(cmd.OutOrStdout(), wallet.Balance.String())
	return nil
}
