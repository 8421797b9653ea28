package cmd

import (
	"fmt"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Ask the node to mine the pending transactions.",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
}

func mineRun(cmd *cobra.Command, args []string) error {
	var bd database.BlockData
	if err := call(http.MethodPost, privateURL+"/v1/mining/mine", nil, &bd); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "block[%d] hash[%s] trans[%d] nonce[%d]\n", bd.Header.Number, bd.Hash, len(bd.Trans), bd.Header.Nonce)
	return nil
}
