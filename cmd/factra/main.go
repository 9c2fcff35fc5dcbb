package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "factra",
	Short: "Invoice factoring marketplace backend",
	Long: `factra mirrors the on-chain invoice ledger into PostgreSQL and serves
marketplace listings, portfolio statistics and invoice details over HTTP.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(newServeCmd(), newInspectCmd())
	if len(os.Args) < 2 || !isSubcommand(os.Args[1]) {
		// a bare invocation (or one starting with flags) runs the server
		rootCmd.SetArgs(append([]string{"serve"}, os.Args[1:]...))
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "factra: %v\n", err)
		os.Exit(1)
	}
}

func isSubcommand(name string) bool {
	if name == "help" || name == "completion" || name == "--help" || name == "-h" {
		return true
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == name {
			return true
		}
	}
	return false
}
