// Package cmd contains the wallet commands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	nodeURL    string
	privateURL string
	address    string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&nodeURL, "url", "u", "http://localhost:8080", "Url of the node.")
	rootCmd.PersistentFlags().StringVarP(&privateURL, "private-url", "r", "http://localhost:9080", "Url of the node operator api.")
	rootCmd.PersistentFlags().StringVarP(&address, "address", "a", "", "Address of the wallet.")
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "wallet",
	Short:         "Your simple ledger wallet",
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// requireAddress reports an error when the wallet address flag is missing.
func requireAddress() error {
	if address == "" {
		return errMissingAddress
	}
	return nil
}
