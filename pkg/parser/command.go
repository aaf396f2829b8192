package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Offer holds the terms parsed from an offer command.
type Offer struct {
	OfferAmount   uint64
	OfferAsset    string
	ReceiveAmount uint64
	ReceiveAsset  string
}

var offerPattern = regexp.MustCompile(`^(\d+)\s+([A-Z0-9._\-]+)\s+FOR\s+(\d+)\s+([A-Z0-9._\-]+)$`)

// ParseOfferCommand parses a natural language offer command
// Examples:
//   - "offer 100 GOLD for 250 SILVER"
//   - "1000 usdc.token for 1 wbtc.token"
func ParseOfferCommand(command string) (*Offer, error) {
	// Normalize the command
	command = strings.TrimSpace(strings.ToUpper(command))
	command = strings.TrimPrefix(command, "OFFER ")

	matches := offerPattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, fmt.Errorf("invalid offer format. Expected: 'offer <amount> <asset> for <amount> <asset>' (e.g., 'offer 100 GOLD for 250 SILVER')")
	}

	offerAmount, err := strconv.ParseUint(matches[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid offer amount %q: %w", matches[1], err)
	}
	receiveAmount, err := strconv.ParseUint(matches[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid receive amount %q: %w", matches[3], err)
	}

	return &Offer{
		OfferAmount:   offerAmount,
		OfferAsset:    NormalizeAsset(matches[2]),
		ReceiveAmount: receiveAmount,
		ReceiveAsset:  NormalizeAsset(matches[4]),
	}, nil
}

// NormalizeAsset normalizes asset identifiers to a standard format
func NormalizeAsset(asset string) string {
	return strings.ToLower(strings.TrimSpace(asset))
}
