package escrow

import "fmt"

// guard is a single precondition check against a swap request. Guards compose
// as an ordered chain; the first failure short-circuits with no side effects.
type guard func(req *SwapRequest) error

// pending fails unless the request can still transition.
func pending() guard {
	return func(req *SwapRequest) error {
		if req.Status != StatusPending {
			return fmt.Errorf("%w: request %d is %s", ErrInvalidState, req.ID, req.Status)
		}
		return nil
	}
}

// recipientOnly fails unless the caller is the request's recipient.
func recipientOnly(caller string) guard {
	return func(req *SwapRequest) error {
		if caller != req.Recipient {
			return fmt.Errorf("%w: %q is not the recipient of request %d", ErrUnauthorized, caller, req.ID)
		}
		return nil
	}
}

// requesterOnly fails unless the caller is the request's requester.
func requesterOnly(caller string) guard {
	return func(req *SwapRequest) error {
		if caller != req.Requester {
			return fmt.Errorf("%w: %q is not the requester of request %d", ErrUnauthorized, caller, req.ID)
		}
		return nil
	}
}

// authorize looks up the request (the existence check of the chain) and runs
// the remaining guards in order.
func (e *Engine) authorize(id uint64, checks ...guard) (*SwapRequest, error) {
	req, err := e.registry.Get(id)
	if err != nil {
		return nil, err
	}
	for _, check := range checks {
		if err := check(req); err != nil {
			return nil, err
		}
	}
	return req, nil
}
