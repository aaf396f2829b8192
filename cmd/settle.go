package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap-escrow/pkg/escrow"
)

var (
	approveAs string
	rejectAs  string
	cancelAs  string
)

var approveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a swap request and settle both legs",
	Long: `Approve a pending swap request. Only the counterparty the request was
offered to may approve. The matching amount is pulled from your balance and
both legs settle at once: each side receives the other's asset minus the
current settlement fee, which goes to the treasury.

Examples:
  swap-escrow approve 0 --as bob`,
	Args: cobra.ExactArgs(1),
	Run:  runApprove,
}

var rejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a swap request, refunding the requester in full",
	Args:  cobra.ExactArgs(1),
	Run:   runReject,
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel your own pending swap request, reclaiming the escrowed amount",
	Args:  cobra.ExactArgs(1),
	Run:   runCancel,
}

func init() {
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(rejectCmd)
	rootCmd.AddCommand(cancelCmd)

	approveCmd.Flags().StringVar(&approveAs, "as", "", "Caller account (defaults to configured identity)")
	rejectCmd.Flags().StringVar(&rejectAs, "as", "", "Caller account (defaults to configured identity)")
	cancelCmd.Flags().StringVar(&cancelAs, "as", "", "Caller account (defaults to configured identity)")
}

func runApprove(cmd *cobra.Command, args []string) {
	runTransition(cmd, args, approveAs, "approve", func(sys *system, id uint64, caller string) error {
		return sys.engine.Approve(id, caller)
	})
}

func runReject(cmd *cobra.Command, args []string) {
	runTransition(cmd, args, rejectAs, "reject", func(sys *system, id uint64, caller string) error {
		return sys.engine.Reject(id, caller)
	})
}

func runCancel(cmd *cobra.Command, args []string) {
	runTransition(cmd, args, cancelAs, "cancel", func(sys *system, id uint64, caller string) error {
		return sys.engine.Cancel(id, caller)
	})
}

func runTransition(cmd *cobra.Command, args []string, asFlag, verb string, op func(*system, uint64, string) error) {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		printError(fmt.Errorf("invalid request id %q: %w", args[0], err))
		os.Exit(1)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")

	sys, err := openSystem(!jsonOutput)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	caller, err := sys.caller(asFlag)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if err := op(sys, id, caller); err != nil {
		printError(fmt.Errorf("%s request %d: %w", verb, id, err))
		os.Exit(1)
	}
	if err := sys.save(); err != nil {
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
		return
	}

	switch req.Status {
	case escrow.StatusApproved:
		printSuccess(color.GreenString("Request %d settled.", id))
	case escrow.StatusRejected:
		printSuccess(color.YellowString("Request %d rejected. %d %s refunded to %s.", id, req.OfferAmount, req.OfferAsset, req.Requester))
	case escrow.StatusCancelled:
		printSuccess(color.YellowString("Request %d cancelled. %d %s refunded to %s.", id, req.OfferAmount, req.OfferAsset, req.Requester))
	}
	displayRequest(req, sys.engine.Admin())
}
