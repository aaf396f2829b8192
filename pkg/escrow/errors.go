package escrow

import "errors"

// Sentinel errors returned by the engine. Callers match them with errors.Is;
// the engine wraps them with context where useful.
var (
	// ErrInvalidArgument indicates malformed input: an empty identity or
	// asset, a zero amount, or an out-of-range fee.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates an unknown request id.
	ErrNotFound = errors.New("request not found")

	// ErrUnauthorized indicates the caller is not the party the operation
	// requires.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidState indicates the request is not pending, or the engine
	// is not in the state the operation requires.
	ErrInvalidState = errors.New("invalid state")

	// ErrTransferFailure indicates the external value-transfer service
	// failed to move funds. The operation that triggered it has no effect.
	ErrTransferFailure = errors.New("transfer failed")

	// ErrReentrant indicates an operation attempted to enter the engine
	// while another operation was still in flight.
	ErrReentrant = errors.New("reentrant call")
)
