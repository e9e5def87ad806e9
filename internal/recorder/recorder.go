package recorder

// DepositEvent records funds entering the vault.
type DepositEvent struct {
	From         string
	Amount       uint64
	BalanceAfter uint64
}

// AdminEvent records an administrator set change.
type AdminEvent struct {
	Caller   string
	Identity string
}

// RequestEvent records the creation of a transfer request.
type RequestEvent struct {
	RequestID uint64
	Caller    string
	Amount    uint64
	Recipient string
}

// ApprovalEvent records a single administrator approval.
type ApprovalEvent struct {
	RequestID uint64
	Approver  string
	Approvals int
	Required  int
}

// ExecutionEvent records a withdrawal triggered by quorum.
type ExecutionEvent struct {
	RequestID    uint64
	Amount       uint64
	Recipient    string
	Approvals    int
	BalanceAfter uint64
	Trigger      string // "APPROVAL", "RETRY" or "SWEEP"
}

// Recorder is the append-only audit trail consumed by reporting tools.
// The vault writes events here; it never reads them back.
type Recorder interface {
	RecordDeposit(evt *DepositEvent) error
	RecordAdminChange(evt *AdminEvent) error
	RecordRequest(evt *RequestEvent) error
	RecordApproval(evt *ApprovalEvent) error
	RecordExecution(evt *ExecutionEvent) error
	Close() error
}
