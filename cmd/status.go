package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap-escrow/pkg/escrow"
)

var (
	watchStatus   bool
	watchInterval int
)

var statusCmd = &cobra.Command{
	Use:   "status [<id>]",
	Short: "Show a swap request, or all requests",
	Long: `Show the current state of a swap request by id, or list every recorded
request when no id is given. Requests are never deleted; settled, rejected
and cancelled requests remain visible as an audit trail.

Examples:
  swap-escrow status
  swap-escrow status 0
  swap-escrow status 0 --watch
  swap-escrow status 0 --watch --interval 10`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Wait until the request leaves the pending state")
	statusCmd.Flags().IntVar(&watchInterval, "interval", 5, "Polling interval in seconds (when watching)")
}

func runStatus(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if len(args) == 0 {
		listRequests(jsonOutput)
		return
	}

	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		printError(fmt.Errorf("invalid request id %q: %w", args[0], err))
		os.Exit(1)
	}

	if watchStatus {
		watchRequest(id, jsonOutput)
	} else {
		showRequest(id, jsonOutput)
	}
}

func showRequest(id uint64, jsonOutput bool) {
	sys, err := openSystem(false)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	req, err := sys.engine.Get(id)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		printRequestJSON(req)
	} else {
		displayRequest(req, sys.engine.Admin())
	}
}

// watchRequest polls the state file until the request leaves pending.
// Another invocation of the CLI (the counterparty's approve or reject) is
// what moves it.
func watchRequest(id uint64, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(`{"error": "watch mode not supported with JSON output"}`)
		os.Exit(1)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Waiting for request %d to settle...", id)
	s.Start()

	ticker := time.NewTicker(time.Duration(watchInterval) * time.Second)
	defer ticker.Stop()

	for {
		sys, err := openSystem(false)
		if err != nil {
			s.Stop()
			printError(err)
			os.Exit(1)
		}
		req, err := sys.engine.Get(id)
		if err != nil {
			s.Stop()
			printError(err)
			os.Exit(1)
		}
		if req.Status.Terminal() {
			s.Stop()
			displayRequest(req, sys.engine.Admin())
			return
		}
		<-ticker.C
	}
}

func listRequests(jsonOutput bool) {
	sys, err := openSystem(false)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	requests := sys.engine.Requests()

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(requests, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	if len(requests) == 0 {
		fmt.Println("\nNo swap requests recorded.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                        SWAP REQUESTS")
	fmt.Println(strings.Repeat("=", 70))
	for _, req := range requests {
		fmt.Printf("\n  [%d] %s: %s offers %d %s for %d %s from %s\n",
			req.ID, coloredStatus(req.Status), req.Requester,
			req.OfferAmount, req.OfferAsset,
			req.ReceiveAmount, req.ReceiveAsset, req.Recipient)
	}
	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}

func displayRequest(req escrow.SwapRequest, admin escrow.AdminConfig) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                        SWAP REQUEST")
	fmt.Println(strings.Repeat("=", 70))

	fmt.Printf("\n  ID:        %d\n", req.ID)
	fmt.Printf("  Status:    %s\n", coloredStatus(req.Status))
	fmt.Printf("  Requester: %s\n", color.CyanString(req.Requester))
	fmt.Printf("  Recipient: %s\n", color.CyanString(req.Recipient))
	fmt.Printf("  Offering:  %d %s\n", req.OfferAmount, color.YellowString(req.OfferAsset))
	fmt.Printf("  Asking:    %d %s\n", req.ReceiveAmount, color.YellowString(req.ReceiveAsset))
	fmt.Printf("  Created:   %s\n", req.Created.Format("2006-01-02 15:04:05"))

	if req.Status == escrow.StatusPending {
		fmt.Printf("  Fee:       %d%% per leg if approved now\n", admin.FeePercent)
	}

	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}

func printRequestJSON(req escrow.SwapRequest) {
	jsonData, _ := json.MarshalIndent(req, "", "  ")
	fmt.Println(string(jsonData))
}

func coloredStatus(status escrow.Status) string {
	label := strings.ToUpper(string(status))

	switch status {
	case escrow.StatusApproved:
		return color.GreenString(label)
	case escrow.StatusPending:
		return color.YellowString(label)
	case escrow.StatusRejected, escrow.StatusCancelled:
		return color.RedString(label)
	default:
		return label
	}
}
