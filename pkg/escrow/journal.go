package escrow

import "errors"

// journal records the transfers applied during a single settlement so a late
// failure can reverse every earlier movement. The engine holds the
// reentrancy guard for the whole settlement, so reversal pulls back into
// custody pass the receive gate.
type journal struct {
	transfer TransferService
	custody  string
	undo     []func() error
}

func newJournal(transfer TransferService, custody string) *journal {
	return &journal{transfer: transfer, custody: custody}
}

// pull moves amount of asset from the from account into custody and records
// the reversal.
func (j *journal) pull(asset, from string, amount uint64) error {
	if err := j.transfer.Pull(asset, from, j.custody, amount); err != nil {
		return err
	}
	j.undo = append(j.undo, func() error {
		return j.transfer.Push(asset, from, amount)
	})
	return nil
}

// push disburses amount of asset from custody to the to account and records
// the reversal. Zero-amount disbursements are skipped.
func (j *journal) push(asset, to string, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := j.transfer.Push(asset, to, amount); err != nil {
		return err
	}
	j.undo = append(j.undo, func() error {
		return j.transfer.Pull(asset, to, j.custody, amount)
	})
	return nil
}

// revert unwinds every recorded movement in reverse order.
func (j *journal) revert() error {
	var errs []error
	for i := len(j.undo) - 1; i >= 0; i-- {
		if err := j.undo[i](); err != nil {
			errs = append(errs, err)
		}
	}
	j.undo = nil
	return errors.Join(errs...)
}
