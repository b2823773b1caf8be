package bounty_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/roothash-pay/auditBounty/native/bounty"
)

func TestWithdrawSurplusBoundedByUnassignedCustody(t *testing.T) {
	h := newTestEngine(t)
	h.registerAsset(t, "BTY", 1000)
	user := addr(0x01)
	treasury := addr(0x77)

	if err := h.engine.BatchAdd(h.rewarder, "BTY", [][20]byte{user}, amounts(400)); err != nil {
		t.Fatalf("batch add: %v", err)
	}

	// Surplus is 600; 700 must be rejected without touching anything.
	err := h.engine.WithdrawSurplus(h.admin, "BTY", treasury, big.NewInt(700))
	if !errors.Is(err, bounty.ErrExceedsSurplus) {
		t.Fatalf("expected ErrExceedsSurplus, got %v", err)
	}
	if got := h.vault.AccountBalance("BTY", treasury); got.Sign() != 0 {
		t.Fatalf("expected treasury untouched, got %s", got)
	}

	if err := h.engine.WithdrawSurplus(h.admin, "BTY", treasury, big.NewInt(600)); err != nil {
		t.Fatalf("withdraw full surplus: %v", err)
	}
	if got := h.vault.AccountBalance("BTY", treasury); got.Cmp(big.NewInt(600)) != 0 {
		t.Fatalf("expected treasury credited 600, got %s", got)
	}

	stats, err := h.engine.TokenStats("BTY")
	if err != nil {
		t.Fatalf("token stats: %v", err)
	}
	if stats.Funded.Cmp(big.NewInt(400)) != 0 {
		t.Fatalf("expected net funded 400, got %s", stats.Funded)
	}
	if stats.Balance.Cmp(big.NewInt(400)) != 0 {
		t.Fatalf("expected custody 400, got %s", stats.Balance)
	}

	// The remaining custody exactly covers pending: no surplus left.
	err = h.engine.WithdrawSurplus(h.admin, "BTY", treasury, big.NewInt(1))
	if !errors.Is(err, bounty.ErrNoSurplus) {
		t.Fatalf("expected ErrNoSurplus, got %v", err)
	}
}

func TestWithdrawSurplusRequiresFundRole(t *testing.T) {
	h := newTestEngine(t)
	h.registerAsset(t, "BTY", 1000)
	fundManager := addr(0x55)

	err := h.engine.WithdrawSurplus(fundManager, "BTY", addr(0x77), big.NewInt(10))
	if !errors.Is(err, bounty.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := h.manager.GrantRole(bounty.RoleFundManager, fundManager[:]); err != nil {
		t.Fatalf("grant fund manager: %v", err)
	}
	if err := h.engine.WithdrawSurplus(fundManager, "BTY", addr(0x77), big.NewInt(10)); err != nil {
		t.Fatalf("fund manager withdraw: %v", err)
	}
}

func TestWithdrawSurplusValidation(t *testing.T) {
	h := newTestEngine(t)
	h.registerAsset(t, "BTY", 1000)

	if err := h.engine.WithdrawSurplus(h.admin, "BTY", [20]byte{}, big.NewInt(10)); !errors.Is(err, bounty.ErrInvalidAccount) {
		t.Fatalf("expected ErrInvalidAccount, got %v", err)
	}
	if err := h.engine.WithdrawSurplus(h.admin, "BTY", addr(0x77), big.NewInt(0)); !errors.Is(err, bounty.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := h.engine.WithdrawSurplus(h.admin, "  ", addr(0x77), big.NewInt(10)); !errors.Is(err, bounty.ErrInvalidAsset) {
		t.Fatalf("expected ErrInvalidAsset, got %v", err)
	}
}

func TestWithdrawSurplusFromExternalTopUpFloorsNetFunded(t *testing.T) {
	h := newTestEngine(t)
	h.registerAsset(t, "BTY", 0)

	// Custody arrives entirely outside the funding ledger.
	h.vault.CreditReserve("BTY", big.NewInt(500))

	if err := h.engine.WithdrawSurplus(h.admin, "BTY", addr(0x77), big.NewInt(300)); err != nil {
		t.Fatalf("withdraw external surplus: %v", err)
	}
	stats, err := h.engine.TokenStats("BTY")
	if err != nil {
		t.Fatalf("token stats: %v", err)
	}
	if stats.Funded.Sign() != 0 {
		t.Fatalf("expected net funded floored at zero, got %s", stats.Funded)
	}
}

func TestSurplusView(t *testing.T) {
	h := newTestEngine(t)
	h.registerAsset(t, "BTY", 1000)
	if err := h.engine.BatchAdd(h.rewarder, "BTY", [][20]byte{addr(0x01)}, amounts(400)); err != nil {
		t.Fatalf("batch add: %v", err)
	}
	surplus, err := h.engine.Surplus("BTY")
	if err != nil {
		t.Fatalf("surplus: %v", err)
	}
	if surplus.Cmp(big.NewInt(600)) != 0 {
		t.Fatalf("expected surplus 600, got %s", surplus)
	}
}
