package escrow

import "time"

// Status defines the lifecycle state of a swap request
type Status string

const (
	StatusPending   Status = "pending"   // Awaiting recipient action
	StatusApproved  Status = "approved"  // Settled with fee split
	StatusRejected  Status = "rejected"  // Declined by recipient, offer refunded
	StatusCancelled Status = "cancelled" // Withdrawn by requester, offer refunded
)

// Terminal returns true once the request can no longer transition.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// SwapRequest is the central entity of the escrow: one party's offer of
// OfferAmount of OfferAsset in exchange for ReceiveAmount of ReceiveAsset
// from Recipient. While pending, the engine holds custody of exactly
// OfferAmount. Everything except Status is fixed at creation.
type SwapRequest struct {
	ID            uint64    `json:"id"`
	Requester     string    `json:"requester"`
	Recipient     string    `json:"recipient"`
	OfferAsset    string    `json:"offer_asset"`
	OfferAmount   uint64    `json:"offer_amount"`
	ReceiveAsset  string    `json:"receive_asset"`
	ReceiveAmount uint64    `json:"receive_amount"`
	Status        Status    `json:"status"`
	Created       time.Time `json:"created"`
}
