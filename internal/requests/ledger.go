package requests

import (
	"errors"
	"sync"
	"time"

	"VaultSentinel/internal/model"
)

var (
	// ErrInvalidRequestID is returned when an id is out of range or refers
	// to a request that is no longer approvable.
	ErrInvalidRequestID = errors.New("invalid request id")
	// ErrAlreadyApproved is returned when an administrator approves the
	// same request twice.
	ErrAlreadyApproved = errors.New("already approved by this administrator")
	// ErrAlreadyExecuted is returned when marking an executed request again.
	ErrAlreadyExecuted = errors.New("request already executed")
)

// Ledger owns the collection of transfer requests and assigns monotonically
// increasing ids. Ids are never reused; executed requests stay readable with
// an explicit Executed status rather than being zeroed out.
type Ledger struct {
	mu    sync.RWMutex
	items []model.TransferRequest
}

// NewLedger creates a Ledger, optionally restoring persisted requests.
// Restored requests must be in creation order; ids are their positions.
func NewLedger(restored []model.TransferRequest) *Ledger {
	l := &Ledger{items: make([]model.TransferRequest, 0, len(restored))}
	for _, r := range restored {
		l.items = append(l.items, r.Clone())
	}
	return l
}

// Create allocates the next sequential id and stores a new Pending request
// with no approvals. Authorization is the caller's responsibility.
func (l *Ledger) Create(amount uint64, recipient model.Identity) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := uint64(len(l.items))
	l.items = append(l.items, model.TransferRequest{
		ID:        id,
		Amount:    amount,
		Recipient: recipient,
		Status:    model.StatusPending,
		CreatedAt: time.Now(),
	})
	return id
}

// Get returns a copy of the request with the given id.
func (l *Ledger) Get(id uint64) (model.TransferRequest, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if id >= uint64(len(l.items)) {
		return model.TransferRequest{}, ErrInvalidRequestID
	}
	return l.items[id].Clone(), nil
}

// RecordApproval adds approver to the request's approver set and returns the
// new approval count. Approving a missing or already-executed request fails
// with ErrInvalidRequestID; a repeat approval fails with ErrAlreadyApproved.
func (l *Ledger) RecordApproval(id uint64, approver model.Identity) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if id >= uint64(len(l.items)) {
		return 0, ErrInvalidRequestID
	}
	r := &l.items[id]
	if r.Status != model.StatusPending {
		return r.Approvals(), ErrInvalidRequestID
	}
	if r.HasApproved(approver) {
		return r.Approvals(), ErrAlreadyApproved
	}
	r.Approvers = append(r.Approvers, approver)
	return r.Approvals(), nil
}

// MarkExecuted transitions a Pending request to Executed. Executed is
// terminal: no further approvals or transitions are accepted.
func (l *Ledger) MarkExecuted(id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if id >= uint64(len(l.items)) {
		return ErrInvalidRequestID
	}
	if l.items[id].Status == model.StatusExecuted {
		return ErrAlreadyExecuted
	}
	l.items[id].Status = model.StatusExecuted
	return nil
}

// Pending returns copies of all Pending requests in id order.
func (l *Ledger) Pending() []model.TransferRequest {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []model.TransferRequest
	for i := range l.items {
		if l.items[i].Status == model.StatusPending {
			out = append(out, l.items[i].Clone())
		}
	}
	return out
}

// QuorumPending returns ids of Pending requests whose approval count has
// reached the threshold, in id order.
func (l *Ledger) QuorumPending(required int) []uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var ids []uint64
	for i := range l.items {
		if l.items[i].Status == model.StatusPending && l.items[i].Approvals() >= required {
			ids = append(ids, l.items[i].ID)
		}
	}
	return ids
}

// Snapshot returns a deep copy of all requests for persistence.
func (l *Ledger) Snapshot() []model.TransferRequest {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.TransferRequest, 0, len(l.items))
	for i := range l.items {
		out = append(out, l.items[i].Clone())
	}
	return out
}
