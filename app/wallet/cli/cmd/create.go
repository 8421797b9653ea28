package cmd

import (
	"fmt"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var email string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new wallet.",
	RunE:  createRun,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&email, "email", "e", "", "Email of the wallet owner.")
}

func createRun(cmd *cobra.Command, args []string) error {
	req := struct {
		Email string `json:"email"`
	}{
		Email: email,
	}

	var resp struct {
		Address database.Address `json:"address"`
	}
	if err := call(http.MethodPost, nodeURL+"/v1/wallets", req, &resp); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Address)
	return nil
}
