package engine

import (
	"errors"
	"log"
	"sync"

	"VaultSentinel/internal/model"
	"VaultSentinel/internal/recorder"
	"VaultSentinel/internal/registry"
	"VaultSentinel/internal/requests"
	"VaultSentinel/internal/treasury"
)

var (
	// ErrZeroAmountTransfer is returned when a transfer request asks for nothing.
	ErrZeroAmountTransfer = errors.New("transfer amount must be positive")
	// ErrQuorumNotReached is returned when retrying a request below threshold.
	ErrQuorumNotReached = errors.New("quorum not reached")
)

// ApprovalResult reports the outcome of a recorded approval.
type ApprovalResult struct {
	Approvals int
	Required  int
	Executed  bool
}

// RequestView is the read-only projection of a transfer request.
type RequestView struct {
	ID        uint64
	Amount    uint64
	Recipient model.Identity
	Approvals int
	Required  int
	Status    model.RequestStatus
}

// VaultStatus is a read-only snapshot for the ops channel.
type VaultStatus struct {
	Owner          model.Identity
	Balance        uint64
	Administrators int
	Pending        int
	Required       int
}

// Engine orchestrates request creation, approval counting, threshold
// evaluation and execution. All mutating operations are funneled through a
// single mutex, so every operation applies all of its state changes or none
// and the affordability check inside Withdraw can never race a concurrent
// mutation.
type Engine struct {
	mu        sync.Mutex
	registry  *registry.Registry
	treasury  *treasury.Treasury
	ledger    *requests.Ledger
	recorder  recorder.Recorder
	required  int
	stateFile string
}

// New creates an Engine, loading persisted vault state from stateFile or
// seeding a fresh vault from the given owner, threshold and initial
// administrator set.
func New(stateFile string, owner model.Identity, required int, admins []model.Identity, payer treasury.Payer, rec recorder.Recorder) (*Engine, error) {
	state, err := LoadState(stateFile)
	if err != nil {
		return nil, err
	}

	// Initialize if fresh state
	if state.Owner == "" {
		state.Owner = owner
		state.RequiredApprovals = required
		state.Administrators = admins
	}

	e := &Engine{
		registry:  registry.New(state.Owner, state.Administrators),
		treasury:  treasury.New(state.Balance, payer),
		ledger:    requests.NewLedger(state.Requests),
		recorder:  rec,
		required:  state.RequiredApprovals,
		stateFile: stateFile,
	}
	if err := SaveState(stateFile, e.snapshot()); err != nil {
		return nil, err
	}
	return e, nil
}

// Deposit adds funds to the vault. Any identity may deposit; it fails only
// when the amount would overflow the balance.
func (e *Engine) Deposit(from model.Identity, amount uint64) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	balance, err := e.treasury.Deposit(amount)
	if err != nil {
		return balance, err
	}

	if err := e.recorder.RecordDeposit(&recorder.DepositEvent{
		From: string(from), Amount: amount, BalanceAfter: balance,
	}); err != nil {
		log.Printf("[ERROR] record deposit: %v", err)
	}
	e.save()
	return balance, nil
}

// RegisterAdministrator adds identity to the administrator set. Owner only;
// re-adding an existing administrator is a no-op.
func (e *Engine) RegisterAdministrator(caller, identity model.Identity) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.registry.Register(caller, identity); err != nil {
		return err
	}

	if err := e.recorder.RecordAdminChange(&recorder.AdminEvent{
		Caller: string(caller), Identity: string(identity),
	}); err != nil {
		log.Printf("[ERROR] record admin change: %v", err)
	}
	e.save()
	return nil
}

// RequestTransfer creates a Pending transfer request and returns its id.
// The affordability check here is advisory: the balance may change before
// quorum, so the authoritative check happens again at execution.
func (e *Engine) RequestTransfer(caller model.Identity, amount uint64, recipient model.Identity) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.registry.IsAdministrator(caller) {
		return 0, registry.ErrNotAuthorized
	}
	if amount == 0 {
		return 0, ErrZeroAmountTransfer
	}
	if !e.treasury.CanAfford(amount) {
		return 0, treasury.ErrInsufficientFunds
	}

	id := e.ledger.Create(amount, recipient)
	log.Printf("[INFO] transfer request %d created: %d to %s", id, amount, recipient)

	if err := e.recorder.RecordRequest(&recorder.RequestEvent{
		RequestID: id, Caller: string(caller), Amount: amount, Recipient: string(recipient),
	}); err != nil {
		log.Printf("[ERROR] record request: %v", err)
	}
	e.save()
	return id, nil
}

// ApproveTransfer records caller's approval of the request. When the
// approval count reaches the threshold and the vault can still afford the
// amount, the request executes immediately. An underfunded quorum keeps the
// approval and leaves the request Pending; a later deposit plus the sweep
// (or RetryExecution) completes it.
func (e *Engine) ApproveTransfer(caller model.Identity, id uint64) (*ApprovalResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.registry.IsAdministrator(caller) {
		return nil, registry.ErrNotAuthorized
	}

	count, err := e.ledger.RecordApproval(id, caller)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] request %d approved by %s (%d/%d)", id, caller, count, e.required)

	if err := e.recorder.RecordApproval(&recorder.ApprovalEvent{
		RequestID: id, Approver: string(caller), Approvals: count, Required: e.required,
	}); err != nil {
		log.Printf("[ERROR] record approval: %v", err)
	}

	result := &ApprovalResult{Approvals: count, Required: e.required}
	if count >= e.required {
		if err := e.execute(id, "APPROVAL"); err != nil {
			// Quorum reached but the vault cannot cover the amount yet.
			// The approval stands; execution waits for funds.
			log.Printf("[WARN] request %d reached quorum but did not execute: %v", id, err)
		} else {
			result.Executed = true
		}
	}
	e.save()
	return result, nil
}

// RetryExecution re-runs the funds check on a quorum-met Pending request.
// Administrators use it after a deposit has covered a previously underfunded
// request.
func (e *Engine) RetryExecution(caller model.Identity, id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.registry.IsAdministrator(caller) {
		return registry.ErrNotAuthorized
	}
	req, err := e.ledger.Get(id)
	if err != nil {
		return err
	}
	if req.Status != model.StatusPending {
		return requests.ErrInvalidRequestID
	}
	if req.Approvals() < e.required {
		return ErrQuorumNotReached
	}

	if err := e.execute(id, "RETRY"); err != nil {
		return err
	}
	e.save()
	return nil
}

// SweepFunded executes every quorum-met Pending request the balance can
// cover, in id order. Called periodically by the scheduler so that a deposit
// alone eventually unblocks execution. Returns executed request ids.
func (e *Engine) SweepFunded() []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var executed []uint64
	for _, id := range e.ledger.QuorumPending(e.required) {
		if err := e.execute(id, "SWEEP"); err != nil {
			continue
		}
		executed = append(executed, id)
	}
	if len(executed) > 0 {
		e.save()
	}
	return executed
}

// ViewRequest returns a read-only projection of the request. Administrators only.
func (e *Engine) ViewRequest(caller model.Identity, id uint64) (*RequestView, error) {
	if !e.registry.IsAdministrator(caller) {
		return nil, registry.ErrNotAuthorized
	}
	req, err := e.ledger.Get(id)
	if err != nil {
		return nil, err
	}
	return &RequestView{
		ID:        req.ID,
		Amount:    req.Amount,
		Recipient: req.Recipient,
		Approvals: req.Approvals(),
		Required:  e.required,
		Status:    req.Status,
	}, nil
}

// Status returns a read-only snapshot of the vault.
func (e *Engine) Status() VaultStatus {
	return VaultStatus{
		Owner:          e.registry.Owner(),
		Balance:        e.treasury.Balance(),
		Administrators: e.registry.Count(),
		Pending:        len(e.ledger.Pending()),
		Required:       e.required,
	}
}

// PendingRequests returns copies of all Pending requests in id order.
func (e *Engine) PendingRequests() []model.TransferRequest {
	return e.ledger.Pending()
}

// execute withdraws the request amount and marks the request Executed.
// Caller must hold e.mu.
func (e *Engine) execute(id uint64, trigger string) error {
	req, err := e.ledger.Get(id)
	if err != nil {
		return err
	}
	if err := e.treasury.Withdraw(req.Recipient, req.Amount); err != nil {
		return err
	}
	if err := e.ledger.MarkExecuted(id); err != nil {
		return err
	}
	balance := e.treasury.Balance()
	log.Printf("[INFO] request %d executed: %d to %s (balance %d)", id, req.Amount, req.Recipient, balance)

	if err := e.recorder.RecordExecution(&recorder.ExecutionEvent{
		RequestID: id, Amount: req.Amount, Recipient: string(req.Recipient),
		Approvals: req.Approvals(), BalanceAfter: balance, Trigger: trigger,
	}); err != nil {
		log.Printf("[ERROR] record execution: %v", err)
	}
	return nil
}

func (e *Engine) save() {
	if err := SaveState(e.stateFile, e.snapshot()); err != nil {
		log.Printf("[ERROR] failed to save vault state: %v", err)
	}
}

func (e *Engine) snapshot() *model.VaultState {
	return &model.VaultState{
		Owner:             e.registry.Owner(),
		RequiredApprovals: e.required,
		Balance:           e.treasury.Balance(),
		Administrators:    e.registry.Members(),
		Requests:          e.ledger.Snapshot(),
	}
}
