package escrow

// TransferService is the external value-transfer collaborator, one logical
// service for all asset types. The engine never touches balance or allowance
// mechanics itself; it only pulls assets into custody and pushes them out
// again. Both operations must be all-or-nothing: a failure leaves both
// parties' balances untouched.
type TransferService interface {
	// Pull debits amount of asset from the from account and credits the to
	// account. Fails if from lacks sufficient balance or authorization.
	Pull(asset, from, to string, amount uint64) error

	// Push credits amount of asset to the to account from the engine's own
	// custodial balance.
	Push(asset, to string, amount uint64) error
}
