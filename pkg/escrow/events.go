package escrow

import "github.com/google/uuid"

// RequestCreatedEvent occurs when a request is recorded and custody of the
// offered asset has been taken.
type RequestCreatedEvent struct {
	ID            uint64 `json:"id"`
	Requester     string `json:"requester"`
	Recipient     string `json:"recipient"`
	OfferAsset    string `json:"offer_asset"`
	OfferAmount   uint64 `json:"offer_amount"`
	ReceiveAsset  string `json:"receive_asset"`
	ReceiveAmount uint64 `json:"receive_amount"`
}

// StatusChangedEvent occurs when a request leaves the pending state.
type StatusChangedEvent struct {
	ID        uint64 `json:"id"`
	NewStatus Status `json:"new_status"`
}

// Notification wraps an event with a unique id so external observers can
// deduplicate deliveries. Notifications are advisory; the engine's
// correctness does not depend on anyone consuming them.
type Notification struct {
	NotificationID uuid.UUID   `json:"notification_id"`
	Event          interface{} `json:"event"`
}

// EventSink receives notifications emitted by the engine. Sinks must not
// call back into the engine; the reentrancy guard rejects such calls.
type EventSink func(Notification)

func (e *Engine) emit(event interface{}) {
	if e.events == nil {
		return
	}
	e.events(Notification{NotificationID: uuid.New(), Event: event})
}
