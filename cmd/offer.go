package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap-escrow/pkg/parser"
)

var (
	offerTo  string
	offerAs  string
	offerYes bool
)

var offerCmd = &cobra.Command{
	Use:   "offer <amount> <asset> for <amount> <asset>",
	Short: "Offer a swap to a counterparty",
	Long: `Create a swap request: the offered amount is taken into escrow custody
immediately, and the named counterparty may approve (depositing the matching
amount and settling both legs minus the fee), or reject. You may cancel the
request any time before the counterparty acts; rejection and cancellation
refund the full offered amount.

IMPORTANT:
  - You MUST specify --to (the counterparty who can approve or reject)
  - The caller must hold the offered amount; it is escrowed on creation

Examples:
  swap-escrow offer 1000 gold for 2000 silver --to bob --as alice
  swap-escrow offer 50 usdc.token for 1 wnear.token --to bob.near --as alice.near --yes`,
	Args: cobra.MinimumNArgs(1),
	Run:  runOffer,
}

func init() {
	rootCmd.AddCommand(offerCmd)

	offerCmd.Flags().StringVar(&offerTo, "to", "", "Counterparty account (REQUIRED - who can approve or reject)")
	offerCmd.Flags().StringVar(&offerAs, "as", "", "Caller account (defaults to configured identity)")
	offerCmd.Flags().BoolVarP(&offerYes, "yes", "y", false, "Skip confirmation prompt")
}

func runOffer(cmd *cobra.Command, args []string) {
	offer, err := parser.ParseOfferCommand(strings.Join(args, " "))
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")

	sys, err := openSystem(!jsonOutput)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	requester, err := sys.caller(offerAs)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if !jsonOutput {
		displayOffer(offer, requester, offerTo)
		if !offerYes && !confirmOffer() {
			fmt.Println("\nOffer cancelled.")
			os.Exit(0)
		}
	}

	id, err := sys.engine.Create(requester, offerTo, offer.OfferAsset, offer.OfferAmount, offer.ReceiveAsset, offer.ReceiveAmount)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if err := sys.save(); err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		output := map[string]interface{}{
			"id":             id,
			"requester":      requester,
			"recipient":      offerTo,
			"offer_asset":    offer.OfferAsset,
			"offer_amount":   offer.OfferAmount,
			"receive_asset":  offer.ReceiveAsset,
			"receive_amount": offer.ReceiveAmount,
			"status":         "pending",
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	printSuccess(color.GreenString("Swap request %d created. %d %s escrowed.", id, offer.OfferAmount, offer.OfferAsset))
	fmt.Println("The counterparty can respond with:")
	color.Cyan("  swap-escrow approve %d --as %s", id, offerTo)
	color.Cyan("  swap-escrow reject %d --as %s\n", id, offerTo)
}

func displayOffer(offer *parser.Offer, requester, recipient string) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     SWAP OFFER")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  From:     %s\n", color.CyanString(requester))
	fmt.Printf("  To:       %s\n", color.CyanString(recipient))
	fmt.Printf("  Offering: %d %s\n", offer.OfferAmount, color.YellowString(offer.OfferAsset))
	fmt.Printf("  Asking:   %d %s\n", offer.ReceiveAmount, color.YellowString(offer.ReceiveAsset))

	fmt.Println("\n" + strings.Repeat("=", 60))
}

func confirmOffer() bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("\nEscrow the offered amount and create this request? (y/N): ")

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
