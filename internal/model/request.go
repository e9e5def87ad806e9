package model

import "time"

// Identity is an opaque, comparable caller identity. Authentication happens
// upstream; the engine only ever compares identities for equality.
type Identity string

// RequestStatus marks the lifecycle stage of a transfer request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusExecuted RequestStatus = "EXECUTED"
)

// TransferRequest is a proposed movement of vault funds awaiting quorum.
// Approvals are tracked as a set of identities so the same administrator
// can never be counted twice.
type TransferRequest struct {
	ID        uint64        `json:"id"`
	Amount    uint64        `json:"amount"`
	Recipient Identity      `json:"recipient"`
	Approvers []Identity    `json:"approvers"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// Approvals returns the number of distinct approving administrators.
func (r *TransferRequest) Approvals() int {
	return len(r.Approvers)
}

// HasApproved reports whether identity has already approved this request.
func (r *TransferRequest) HasApproved(identity Identity) bool {
	for _, a := range r.Approvers {
		if a == identity {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand to callers.
func (r *TransferRequest) Clone() TransferRequest {
	cp := *r
	cp.Approvers = append([]Identity(nil), r.Approvers...)
	return cp
}
