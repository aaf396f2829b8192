package ledger

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrInsufficientFunds indicates the debited account does not hold enough of
// the asset. The transfer has no effect.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ReceiveHook vetoes an incoming credit to an account. A non-nil error
// aborts the transfer before any balance changes.
type ReceiveHook func(asset, from string, amount uint64) error

// Ledger is a deterministic in-process value-transfer service: per-asset
// account balances with all-or-nothing transfers. It implements the escrow
// engine's TransferService with a designated custody account, and lets the
// engine veto direct credits to that account via a receive hook.
type Ledger struct {
	mu       sync.RWMutex
	custody  string
	balances map[string]map[string]uint64 // asset -> account -> amount
	hooks    map[string]ReceiveHook
}

// New creates an empty ledger whose Push operations debit the given custody
// account.
func New(custody string) *Ledger {
	return &Ledger{
		custody:  custody,
		balances: make(map[string]map[string]uint64),
		hooks:    make(map[string]ReceiveHook),
	}
}

// SetReceiveHook installs a veto on credits to the given account.
func (l *Ledger) SetReceiveHook(account string, hook ReceiveHook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks[account] = hook
}

// Mint credits newly issued units of asset to an account. Mint bypasses
// receive hooks; it is the faucet for seeding balances, not a transfer.
func (l *Ledger) Mint(asset, account string, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(asset, account, amount)
}

// Balance returns how much of asset the account holds.
func (l *Ledger) Balance(asset, account string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[asset][account]
}

// Pull debits amount of asset from the from account and credits the to
// account. Fails without effect on insufficient balance or a receive-hook
// veto.
func (l *Ledger) Pull(asset, from, to string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(asset, from, to, amount)
}

// Push credits amount of asset to the to account from the custody balance.
func (l *Ledger) Push(asset, to string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(asset, l.custody, to, amount)
}

// move performs the debit/credit pair. The hook runs before any balance
// change so a veto leaves both sides untouched. Callers hold l.mu; hooks
// must not call back into the ledger.
func (l *Ledger) move(asset, from, to string, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if have := l.balances[asset][from]; have < amount {
		return fmt.Errorf("%w: %q holds %d %s, needs %d", ErrInsufficientFunds, from, have, asset, amount)
	}
	if hook := l.hooks[to]; hook != nil {
		if err := hook(asset, from, amount); err != nil {
			return fmt.Errorf("transfer to %q refused: %w", to, err)
		}
	}
	l.balances[asset][from] -= amount
	l.credit(asset, to, amount)
	return nil
}

func (l *Ledger) credit(asset, account string, amount uint64) {
	if l.balances[asset] == nil {
		l.balances[asset] = make(map[string]uint64)
	}
	l.balances[asset][account] += amount
}

// AccountBalances returns every non-zero holding of the account, keyed by
// asset.
func (l *Ledger) AccountBalances(account string) map[string]uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]uint64)
	for asset, accounts := range l.balances {
		if amount := accounts[account]; amount > 0 {
			out[asset] = amount
		}
	}
	return out
}

// Assets returns every asset with at least one non-zero balance, sorted.
func (l *Ledger) Assets() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	assets := make([]string, 0, len(l.balances))
	for asset, accounts := range l.balances {
		for _, amount := range accounts {
			if amount > 0 {
				assets = append(assets, asset)
				break
			}
		}
	}
	sort.Strings(assets)
	return assets
}

// Snapshot returns a deep copy of all balances for persistence.
func (l *Ledger) Snapshot() map[string]map[string]uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]map[string]uint64, len(l.balances))
	for asset, accounts := range l.balances {
		out[asset] = make(map[string]uint64, len(accounts))
		for account, amount := range accounts {
			out[asset][account] = amount
		}
	}
	return out
}

// Restore replaces all balances with a previously snapshotted state.
func (l *Ledger) Restore(balances map[string]map[string]uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances = make(map[string]map[string]uint64, len(balances))
	for asset, accounts := range balances {
		l.balances[asset] = make(map[string]uint64, len(accounts))
		for account, amount := range accounts {
			l.balances[asset][account] = amount
		}
	}
}
