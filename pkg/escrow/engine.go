package escrow

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultFeePercent is the settlement fee applied until the owner
	// changes it.
	DefaultFeePercent = 5

	// DefaultCustodyAccount is the account the engine holds escrowed
	// assets under.
	DefaultCustodyAccount = "escrow"
)

var errUnsolicited = errors.New("unsolicited transfers are not accepted")

// AdminConfig holds the mutable administrative parameters. Only the owner
// may change them; the fee in force at settlement time applies, not the fee
// at request-creation time.
type AdminConfig struct {
	Owner      string `json:"owner"`
	Treasury   string `json:"treasury"`
	FeePercent uint64 `json:"fee_percent"`
}

// State is the engine's persistable snapshot.
type State struct {
	Initialized bool          `json:"initialized"`
	Admin       AdminConfig   `json:"admin"`
	Requests    []SwapRequest `json:"requests"`
}

// Engine is the swap-request lifecycle state machine: it takes custody of
// offered assets at creation, gates every transition through the
// authorization guard chain, and settles approved swaps atomically with a
// fee split. The engine is a single-writer machine: the busy flag admits one
// state-changing operation at a time and rejects both reentrant callbacks
// and concurrent callers with ErrReentrant; callers resubmit.
type Engine struct {
	mu   sync.Mutex
	busy bool

	registry    *Registry
	transfer    TransferService
	admin       AdminConfig
	initialized bool
	custody     string
	events      EventSink
}

// Option configures an Engine.
type Option func(*Engine)

// WithEvents sets the notification sink.
func WithEvents(sink EventSink) Option {
	return func(e *Engine) { e.events = sink }
}

// WithCustodyAccount overrides the account escrowed assets are held under.
func WithCustodyAccount(account string) Option {
	return func(e *Engine) { e.custody = account }
}

// WithState restores a previously snapshotted engine state.
func WithState(st State) Option {
	return func(e *Engine) {
		e.initialized = st.Initialized
		e.admin = st.Admin
		for i := range st.Requests {
			req := st.Requests[i]
			e.registry.Append(&req)
		}
	}
}

// NewEngine creates an engine backed by the given value-transfer service.
// Init must be called before any other operation.
func NewEngine(transfer TransferService, opts ...Option) *Engine {
	e := &Engine{
		registry: NewRegistry(),
		transfer: transfer,
		custody:  DefaultCustodyAccount,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// enter acquires the non-reentrant guard. Every custody-mutating operation
// holds it for its full duration, external transfer calls included.
func (e *Engine) enter() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return ErrReentrant
	}
	e.busy = true
	return nil
}

func (e *Engine) exit() {
	e.mu.Lock()
	e.busy = false
	e.mu.Unlock()
}

func (e *Engine) requireInit() error {
	if !e.initialized {
		return fmt.Errorf("%w: engine not initialized", ErrInvalidState)
	}
	return nil
}

// Init performs the one-time bootstrap: it sets the owner and treasury and
// the default fee. Re-invocation fails.
func (e *Engine) Init(owner, treasury string) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	if e.initialized {
		return fmt.Errorf("%w: already initialized", ErrInvalidState)
	}
	if owner == "" || treasury == "" {
		return fmt.Errorf("%w: owner and treasury are required", ErrInvalidArgument)
	}

	e.admin = AdminConfig{Owner: owner, Treasury: treasury, FeePercent: DefaultFeePercent}
	e.initialized = true
	return nil
}

// Create records a new swap request. Custody of the offered asset is taken
// synchronously: if the pull fails, no request is recorded.
func (e *Engine) Create(requester, recipient, offerAsset string, offerAmount uint64, receiveAsset string, receiveAmount uint64) (uint64, error) {
	if err := e.enter(); err != nil {
		return 0, err
	}
	defer e.exit()

	if err := e.requireInit(); err != nil {
		return 0, err
	}
	if requester == "" || recipient == "" {
		return 0, fmt.Errorf("%w: requester and recipient are required", ErrInvalidArgument)
	}
	if offerAsset == "" || receiveAsset == "" {
		return 0, fmt.Errorf("%w: both asset identifiers are required", ErrInvalidArgument)
	}
	if offerAmount == 0 || receiveAmount == 0 {
		return 0, fmt.Errorf("%w: amounts must be greater than 0", ErrInvalidArgument)
	}

	if err := e.transfer.Pull(offerAsset, requester, e.custody, offerAmount); err != nil {
		return 0, fmt.Errorf("%w: taking custody of %d %s: %v", ErrTransferFailure, offerAmount, offerAsset, err)
	}

	req := &SwapRequest{
		Requester:     requester,
		Recipient:     recipient,
		OfferAsset:    offerAsset,
		OfferAmount:   offerAmount,
		ReceiveAsset:  receiveAsset,
		ReceiveAmount: receiveAmount,
		Status:        StatusPending,
		Created:       time.Now().UTC(),
	}
	id := e.registry.Append(req)

	e.emit(RequestCreatedEvent{
		ID:            id,
		Requester:     requester,
		Recipient:     recipient,
		OfferAsset:    offerAsset,
		OfferAmount:   offerAmount,
		ReceiveAsset:  receiveAsset,
		ReceiveAmount: receiveAmount,
	})
	return id, nil
}

// Approve settles the swap: the recipient's matching deposit is pulled into
// custody, then both legs are disbursed minus the fee, which goes to the
// treasury. The whole settlement is all-or-nothing: a failed transfer
// reverses every movement already applied and leaves the request pending.
// Fee rounding is floor division on both legs; the truncation residual stays
// with the payer's side.
func (e *Engine) Approve(id uint64, caller string) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	if err := e.requireInit(); err != nil {
		return err
	}
	req, err := e.authorize(id, pending(), recipientOnly(caller))
	if err != nil {
		return err
	}

	j := newJournal(e.transfer, e.custody)
	if err := j.pull(req.ReceiveAsset, caller, req.ReceiveAmount); err != nil {
		return fmt.Errorf("%w: matching deposit of %d %s: %v", ErrTransferFailure, req.ReceiveAmount, req.ReceiveAsset, err)
	}

	offerFee := req.OfferAmount * e.admin.FeePercent / 100
	receiveFee := req.ReceiveAmount * e.admin.FeePercent / 100

	disbursements := []struct {
		asset  string
		to     string
		amount uint64
	}{
		{req.OfferAsset, req.Recipient, req.OfferAmount - offerFee},
		{req.OfferAsset, e.admin.Treasury, offerFee},
		{req.ReceiveAsset, req.Requester, req.ReceiveAmount - receiveFee},
		{req.ReceiveAsset, e.admin.Treasury, receiveFee},
	}
	for _, d := range disbursements {
		if err := j.push(d.asset, d.to, d.amount); err != nil {
			if rerr := j.revert(); rerr != nil {
				return fmt.Errorf("%w: settling request %d: %v (revert: %v)", ErrTransferFailure, id, err, rerr)
			}
			return fmt.Errorf("%w: settling request %d: %v", ErrTransferFailure, id, err)
		}
	}

	req.Status = StatusApproved
	e.emit(StatusChangedEvent{ID: id, NewStatus: StatusApproved})
	return nil
}

// Reject declines the swap and refunds the full offered amount to the
// requester, fee-free.
func (e *Engine) Reject(id uint64, caller string) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	if err := e.requireInit(); err != nil {
		return err
	}
	req, err := e.authorize(id, pending(), recipientOnly(caller))
	if err != nil {
		return err
	}

	if err := e.transfer.Push(req.OfferAsset, req.Requester, req.OfferAmount); err != nil {
		return fmt.Errorf("%w: refunding %d %s: %v", ErrTransferFailure, req.OfferAmount, req.OfferAsset, err)
	}

	req.Status = StatusRejected
	e.emit(StatusChangedEvent{ID: id, NewStatus: StatusRejected})
	return nil
}

// Cancel withdraws a pending request. Only the requester may cancel; the
// full offered amount is refunded, fee-free.
func (e *Engine) Cancel(id uint64, caller string) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	if err := e.requireInit(); err != nil {
		return err
	}
	req, err := e.authorize(id, pending(), requesterOnly(caller))
	if err != nil {
		return err
	}

	if err := e.transfer.Push(req.OfferAsset, req.Requester, req.OfferAmount); err != nil {
		return fmt.Errorf("%w: refunding %d %s: %v", ErrTransferFailure, req.OfferAmount, req.OfferAsset, err)
	}

	req.Status = StatusCancelled
	e.emit(StatusChangedEvent{ID: id, NewStatus: StatusCancelled})
	return nil
}

// Get returns a copy of the request with the given id. No authorization is
// required; requests are public audit records.
func (e *Engine) Get(id uint64) (SwapRequest, error) {
	req, err := e.registry.Get(id)
	if err != nil {
		return SwapRequest{}, err
	}
	return *req, nil
}

// Requests returns copies of every recorded request in id order.
func (e *Engine) Requests() []SwapRequest {
	all := e.registry.All()
	out := make([]SwapRequest, len(all))
	for i, req := range all {
		out[i] = *req
	}
	return out
}

// Len returns the number of recorded requests.
func (e *Engine) Len() int {
	return e.registry.Len()
}

// Admin returns the current administrative parameters.
func (e *Engine) Admin() AdminConfig {
	return e.admin
}

// Initialized reports whether the one-time bootstrap has run.
func (e *Engine) Initialized() bool {
	return e.initialized
}

// SetFeePercent updates the settlement fee. Owner only; the fee is a whole
// percentage between 0 and 100.
func (e *Engine) SetFeePercent(caller string, pct uint64) error {
	if err := e.requireInit(); err != nil {
		return err
	}
	if caller != e.admin.Owner {
		return fmt.Errorf("%w: %q is not the owner", ErrUnauthorized, caller)
	}
	if pct > 100 {
		return fmt.Errorf("%w: fee percent %d exceeds 100", ErrInvalidArgument, pct)
	}
	e.admin.FeePercent = pct
	return nil
}

// SetTreasury updates the fee destination. Owner only.
func (e *Engine) SetTreasury(caller, treasury string) error {
	if err := e.requireInit(); err != nil {
		return err
	}
	if caller != e.admin.Owner {
		return fmt.Errorf("%w: %q is not the owner", ErrUnauthorized, caller)
	}
	if treasury == "" {
		return fmt.Errorf("%w: treasury is required", ErrInvalidArgument)
	}
	e.admin.Treasury = treasury
	return nil
}

// OnReceive gates direct credits to the engine's custody account. Credits
// are accepted only while the engine itself is mid-operation (its own custody
// pulls); anything else is an unsolicited inflow and is refused.
func (e *Engine) OnReceive(asset, from string, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.busy {
		return errUnsolicited
	}
	return nil
}

// CustodyAccount returns the account escrowed assets are held under.
func (e *Engine) CustodyAccount() string {
	return e.custody
}

// Snapshot returns the engine's persistable state.
func (e *Engine) Snapshot() State {
	return State{
		Initialized: e.initialized,
		Admin:       e.admin,
		Requests:    e.Requests(),
	}
}
