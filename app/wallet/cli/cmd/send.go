package cmd

import (
	"fmt"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	to     string
	amount string
)

// sendCmd represents the send command.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send an amount to another wallet.",
	RunE:  sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Address of the receiving wallet.")
	sendCmd.Flags().StringVarP(&amount, "amount", "v", "", "Amount to send.")
}

func sendRun(cmd *cobra.Command, args []string) error {
	if err := requireAddress(); err != nil {
		return err
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", amount, err)
	}

	req := struct {
		From   string          `json:"from"`
		To     string          `json:"to"`
		Amount decimal.Decimal `json:"amount"`
	}{
		From:   address,
		To:     to,
		Amount: value,
	}

	var tx database.Tx
	if err := call(http.MethodPost, nodeURL+"/v1/tx", req, &tx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s fee[%s]\n", tx.Hash, tx.Fee)
	return nil
}
