package cmd

import (
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	initOwner    string
	initTreasury string
	setFeeAs     string
	setTreasAs   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap the escrow engine",
	Long: `Initialize the escrow engine with an owner and a treasury account.
The default settlement fee is 5%. Initialization runs exactly once; running
it again fails.

Examples:
  swap-escrow init --owner admin --treasury fees.treasury`,
	Run: runInit,
}

var setFeeCmd = &cobra.Command{
	Use:   "set-fee <percent>",
	Short: "Set the settlement fee percentage (owner only)",
	Long: `Set the settlement fee as a whole percentage between 0 and 100.
The fee in force when a swap is approved applies, regardless of the fee at
the time the request was created.

Examples:
  swap-escrow set-fee 3 --as admin
  swap-escrow set-fee 0 --as admin`,
	Args: cobra.ExactArgs(1),
	Run:  runSetFee,
}

var setTreasuryCmd = &cobra.Command{
	Use:   "set-treasury <account>",
	Short: "Set the fee destination account (owner only)",
	Args:  cobra.ExactArgs(1),
	Run:   runSetTreasury,
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(setFeeCmd)
	rootCmd.AddCommand(setTreasuryCmd)

	initCmd.Flags().StringVar(&initOwner, "owner", "", "Account authorized to change fee and treasury (REQUIRED)")
	initCmd.Flags().StringVar(&initTreasury, "treasury", "", "Account that collects settlement fees (REQUIRED)")
	setFeeCmd.Flags().StringVar(&setFeeAs, "as", "", "Caller account (defaults to configured identity)")
	setTreasuryCmd.Flags().StringVar(&setTreasAs, "as", "", "Caller account (defaults to configured identity)")
}

func runInit(cmd *cobra.Command, args []string) {
	sys, err := openSystem(false)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if err := sys.engine.Init(initOwner, initTreasury); err != nil {
		printError(err)
		os.Exit(1)
	}
	if err := sys.save(); err != nil {
		printError(err)
		os.Exit(1)
	}

	admin := sys.engine.Admin()
	printSuccess(color.GreenString("Escrow engine initialized."))
	color.Cyan("  Owner:    %s", admin.Owner)
	color.Cyan("  Treasury: %s", admin.Treasury)
	color.Cyan("  Fee:      %d%%\n", admin.FeePercent)
}

func runSetFee(cmd *cobra.Command, args []string) {
	pct, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	sys, err := openSystem(false)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	caller, err := sys.caller(setFeeAs)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if err := sys.engine.SetFeePercent(caller, pct); err != nil {
		printError(err)
		os.Exit(1)
	}
	if err := sys.save(); err != nil {
		printError(err)
		os.Exit(1)
	}

	printSuccess(color.GreenString("Settlement fee set to %d%%.", pct))
}

func runSetTreasury(cmd *cobra.Command, args []string) {
	sys, err := openSystem(false)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	caller, err := sys.caller(setTreasAs)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if err := sys.engine.SetTreasury(caller, args[0]); err != nil {
		printError(err)
		os.Exit(1)
	}
	if err := sys.save(); err != nil {
		printError(err)
		os.Exit(1)
	}

	printSuccess(color.GreenString("Treasury set to %s.", args[0]))
}
