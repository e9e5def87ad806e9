package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordDeposit(_ *DepositEvent) error     { return nil }
func (n *NoopRecorder) RecordAdminChange(_ *AdminEvent) error   { return nil }
func (n *NoopRecorder) RecordRequest(_ *RequestEvent) error     { return nil }
func (n *NoopRecorder) RecordApproval(_ *ApprovalEvent) error   { return nil }
func (n *NoopRecorder) RecordExecution(_ *ExecutionEvent) error { return nil }
func (n *NoopRecorder) Close() error                            { return nil }
