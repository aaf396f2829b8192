package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statePath string

var rootCmd = &cobra.Command{
	Use:   "swap-escrow",
	Short: "A CLI for two-party conditional token swaps with escrowed settlement",
	Long: `swap-escrow is a command-line escrow engine for two-party token swaps.
One party offers an asset and names a counterparty; the counterparty either
deposits the matching asset to settle both legs at once (minus the fee) or
declines. The offering party may cancel any time before the counterparty acts.

Examples:
  swap-escrow init --owner admin --treasury fees.treasury
  swap-escrow fund alice 1000 gold
  swap-escrow offer 1000 gold for 2000 silver --to bob --as alice
  swap-escrow approve 0 --as bob
  swap-escrow status 0`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "Path to the state file (default ~/.swap-escrow.json)")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}
