package treasury

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"VaultSentinel/internal/model"
)

type fakePayer struct {
	paid []uint64
	fail bool
}

func (p *fakePayer) Pay(_ model.Identity, amount uint64) error {
	if p.fail {
		return fmt.Errorf("backend refused")
	}
	p.paid = append(p.paid, amount)
	return nil
}

func TestDepositCanAffordRoundTrip(t *testing.T) {
	tr := New(0, &fakePayer{})

	balance, err := tr.Deposit(100)
	if err != nil || balance != 100 {
		t.Fatalf("deposit: balance=%d err=%v", balance, err)
	}
	if !tr.CanAfford(100) {
		t.Error("expected CanAfford(100) after Deposit(100)")
	}
	if tr.CanAfford(101) {
		t.Error("CanAfford(101) must be false at balance 100")
	}
}

func TestDepositOverflow(t *testing.T) {
	tr := New(math.MaxUint64-5, &fakePayer{})

	if _, err := tr.Deposit(5); err != nil {
		t.Fatalf("deposit up to max: %v", err)
	}
	if _, err := tr.Deposit(1); !errors.Is(err, ErrBalanceOverflow) {
		t.Errorf("expected ErrBalanceOverflow, got %v", err)
	}
	if got := tr.Balance(); got != math.MaxUint64 {
		t.Errorf("balance must be unchanged after overflow, got %d", got)
	}
}

func TestWithdraw(t *testing.T) {
	payer := &fakePayer{}
	tr := New(100, payer)

	if err := tr.Withdraw("R", 60); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if got := tr.Balance(); got != 40 {
		t.Errorf("expected balance 40, got %d", got)
	}
	if tr.CanAfford(41) {
		t.Error("CanAfford must reflect the reduced balance exactly")
	}
	if len(payer.paid) != 1 || payer.paid[0] != 60 {
		t.Errorf("expected one payment of 60, got %v", payer.paid)
	}

	if err := tr.Withdraw("R", 41); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := tr.Balance(); got != 40 {
		t.Errorf("failed withdrawal must not move the balance, got %d", got)
	}
}

func TestWithdrawPayerFailureIsAtomic(t *testing.T) {
	payer := &fakePayer{fail: true}
	tr := New(100, payer)

	if err := tr.Withdraw("R", 60); err == nil {
		t.Fatal("expected error from failing payer")
	}
	if got := tr.Balance(); got != 100 {
		t.Errorf("payer failure must leave balance untouched, got %d", got)
	}
}
