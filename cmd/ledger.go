package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap-escrow/pkg/parser"
)

var fundCmd = &cobra.Command{
	Use:   "fund <account> <amount> <asset>",
	Short: "Credit an account on the built-in ledger",
	Long: `Credit newly issued units of an asset to an account on the built-in
value-transfer ledger. Accounts must hold an asset before they can offer it
or approve a swap asking for it.

Examples:
  swap-escrow fund alice 1000 gold
  swap-escrow fund bob 2000 silver`,
	Args: cobra.ExactArgs(3),
	Run:  runFund,
}

var balanceCmd = &cobra.Command{
	Use:     "balance <account>",
	Aliases: []string{"balances"},
	Short:   "Show an account's ledger balances",
	Args:    cobra.ExactArgs(1),
	Run:     runBalance,
}

func init() {
	rootCmd.AddCommand(fundCmd)
	rootCmd.AddCommand(balanceCmd)
}

func runFund(cmd *cobra.Command, args []string) {
	account := args[0]
	amount, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil || amount == 0 {
		printError(fmt.Errorf("invalid amount %q", args[1]))
		os.Exit(1)
	}
	asset := parser.NormalizeAsset(args[2])

	sys, err := openSystem(false)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	sys.ledger.Mint(asset, account, amount)
	if err := sys.save(); err != nil {
		printError(err)
		os.Exit(1)
	}

	printSuccess(color.GreenString("Credited %d %s to %s.", amount, asset, account))
}

func runBalance(cmd *cobra.Command, args []string) {
	account := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	sys, err := openSystem(false)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	balances := sys.ledger.AccountBalances(account)

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(balances, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	if len(balances) == 0 {
		fmt.Printf("\n%s holds no assets.\n\n", account)
		return
	}

	assets := make([]string, 0, len(balances))
	for asset := range balances {
		assets = append(assets, asset)
	}
	sort.Strings(assets)

	fmt.Println("\n" + strings.Repeat("=", 40))
	color.Green("  BALANCES: %s", account)
	fmt.Println(strings.Repeat("=", 40))
	for _, asset := range assets {
		fmt.Printf("  %-20s %d\n", color.YellowString(asset), balances[asset])
	}
	fmt.Println(strings.Repeat("=", 40) + "\n")
}
