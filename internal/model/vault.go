package model

import "time"

// VaultState is the full persisted state of the vault.
type VaultState struct {
	Owner             Identity          `json:"owner"`
	RequiredApprovals int               `json:"required_approvals"`
	Balance           uint64            `json:"balance"`
	Administrators    []Identity        `json:"administrators"`
	Requests          []TransferRequest `json:"requests"`
	UpdatedAt         time.Time         `json:"updated_at"`
}
