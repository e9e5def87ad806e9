package treasury

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"VaultSentinel/internal/model"
)

var (
	// ErrInsufficientFunds is returned when the balance cannot cover a withdrawal.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrBalanceOverflow is returned when a deposit would wrap the balance.
	ErrBalanceOverflow = errors.New("deposit would overflow balance")
)

// Payer is the external capability that physically moves value out of the
// vault once a withdrawal is authorized. Implementations are injected; the
// treasury never knows how funds actually move.
type Payer interface {
	Pay(recipient model.Identity, amount uint64) error
}

// Treasury tracks the guarded balance. The balance is mutated only through
// Deposit and Withdraw, never directly.
type Treasury struct {
	mu      sync.RWMutex
	balance uint64
	payer   Payer
}

// New creates a Treasury with an opening balance and a payer capability.
func New(balance uint64, payer Payer) *Treasury {
	return &Treasury{balance: balance, payer: payer}
}

// Balance returns the current guarded balance.
func (t *Treasury) Balance() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.balance
}

// Deposit increases the balance unconditionally. It fails only when the
// amount would overflow the balance representation.
func (t *Treasury) Deposit(amount uint64) (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if amount > math.MaxUint64-t.balance {
		return t.balance, ErrBalanceOverflow
	}
	t.balance += amount
	return t.balance, nil
}

// CanAfford reports whether the balance covers amount.
func (t *Treasury) CanAfford(amount uint64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.balance >= amount
}

// Withdraw debits amount and sends it to recipient through the payer.
// The debit and the send happen together or not at all: a payer failure
// leaves the balance untouched.
func (t *Treasury) Withdraw(recipient model.Identity, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.balance < amount {
		return ErrInsufficientFunds
	}
	if err := t.payer.Pay(recipient, amount); err != nil {
		return fmt.Errorf("pay %s: %w", recipient, err)
	}
	t.balance -= amount
	return nil
}

// LogPayer is a placeholder payer that only logs the outbound transfer.
// Used until a real settlement backend is wired in deployment.
type LogPayer struct{}

func NewLogPayer() *LogPayer { return &LogPayer{} }

func (p *LogPayer) Pay(recipient model.Identity, amount uint64) error {
	log.Printf("[INFO] paying %d to %s", amount, recipient)
	return nil
}
