package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"

	"swap-escrow/config"
	"swap-escrow/pkg/escrow"
	"swap-escrow/pkg/ledger"
	"swap-escrow/pkg/store"
)

// system wires the persisted state into a live engine for one command
// invocation: load, operate, save.
type system struct {
	cfg    *config.Config
	store  *store.Store
	ledger *ledger.Ledger
	engine *escrow.Engine
}

func openSystem(printEvents bool) (*system, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	path := statePath
	if path == "" {
		path = cfg.StatePath
	}
	st, err := store.NewStore(path)
	if err != nil {
		return nil, err
	}
	state, err := st.Load()
	if err != nil {
		return nil, err
	}

	led := ledger.New(escrow.DefaultCustodyAccount)
	led.Restore(state.Balances)

	opts := []escrow.Option{escrow.WithState(state.Engine)}
	if printEvents {
		opts = append(opts, escrow.WithEvents(printNotification))
	}
	eng := escrow.NewEngine(led, opts...)
	led.SetReceiveHook(eng.CustodyAccount(), eng.OnReceive)

	return &system{cfg: cfg, store: st, ledger: led, engine: eng}, nil
}

// save persists the engine and ledger back to the state file.
func (s *system) save() error {
	return s.store.Save(&store.State{
		Engine:   s.engine.Snapshot(),
		Balances: s.ledger.Snapshot(),
	})
}

// caller resolves the identity a lifecycle command acts as: the --as flag
// first, the configured identity second.
func (s *system) caller(asFlag string) (string, error) {
	if asFlag != "" {
		return asFlag, nil
	}
	if s.cfg.Identity != "" {
		return s.cfg.Identity, nil
	}
	return "", fmt.Errorf("caller identity required: pass --as <account> or set SWAP_ESCROW_IDENTITY")
}

func printNotification(n escrow.Notification) {
	data, _ := json.Marshal(n.Event)
	fmt.Printf("  %s %s\n", color.HiBlackString("event"), color.HiBlackString(string(data)))
}
