package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swap-escrow/pkg/parser"
)

func TestParseOfferCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    parser.Offer
	}{
		{"plain", "100 GOLD for 250 SILVER", parser.Offer{OfferAmount: 100, OfferAsset: "gold", ReceiveAmount: 250, ReceiveAsset: "silver"}},
		{"offer prefix", "offer 100 gold for 250 silver", parser.Offer{OfferAmount: 100, OfferAsset: "gold", ReceiveAmount: 250, ReceiveAsset: "silver"}},
		{"dotted accounts", "1000 usdc.token for 1 wbtc.token", parser.Offer{OfferAmount: 1000, OfferAsset: "usdc.token", ReceiveAmount: 1, ReceiveAsset: "wbtc.token"}},
		{"extra whitespace", "  5 a1  for  7 b2 ", parser.Offer{OfferAmount: 5, OfferAsset: "a1", ReceiveAmount: 7, ReceiveAsset: "b2"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parser.ParseOfferCommand(tc.command)
			require.NoError(t, err)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestParseOfferCommandErrors(t *testing.T) {
	for _, command := range []string{
		"",
		"100 GOLD to 250 SILVER",
		"GOLD for SILVER",
		"1.5 GOLD for 2 SILVER",
		"100 GOLD for 250",
	} {
		_, err := parser.ParseOfferCommand(command)
		require.Error(t, err, "command %q", command)
	}
}

func TestNormalizeAsset(t *testing.T) {
	assert.Equal(t, "gold", parser.NormalizeAsset(" GOLD "))
	assert.Equal(t, "usdc.token", parser.NormalizeAsset("USDC.Token"))
}
