package custody_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/roothash-pay/auditBounty/custody"
)

func testAddr(b byte) [20]byte {
	var a [20]byte
	a[0] = b
	return a
}

func TestTransferInAndOutConserveBalances(t *testing.T) {
	v := custody.NewMemoryVault()
	alice := testAddr(1)
	bob := testAddr(2)
	v.Mint("BTY", alice, big.NewInt(1000))

	if err := v.TransferIn("BTY", alice, big.NewInt(600)); err != nil {
		t.Fatalf("transfer in: %v", err)
	}
	reserve, err := v.BalanceOf("BTY")
	if err != nil {
		t.Fatalf("balance of: %v", err)
	}
	if reserve.Cmp(big.NewInt(600)) != 0 {
		t.Fatalf("expected reserve 600, got %s", reserve)
	}
	if got := v.AccountBalance("BTY", alice); got.Cmp(big.NewInt(400)) != 0 {
		t.Fatalf("expected alice 400, got %s", got)
	}

	if err := v.TransferOut("BTY", bob, big.NewInt(250)); err != nil {
		t.Fatalf("transfer out: %v", err)
	}
	if got := v.AccountBalance("BTY", bob); got.Cmp(big.NewInt(250)) != 0 {
		t.Fatalf("expected bob 250, got %s", got)
	}
	reserve, _ = v.BalanceOf("BTY")
	if reserve.Cmp(big.NewInt(350)) != 0 {
		t.Fatalf("expected reserve 350, got %s", reserve)
	}
}

func TestTransferInOverdraftRejected(t *testing.T) {
	v := custody.NewMemoryVault()
	alice := testAddr(1)
	v.Mint("BTY", alice, big.NewInt(10))

	err := v.TransferIn("BTY", alice, big.NewInt(11))
	if !errors.Is(err, custody.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := v.AccountBalance("BTY", alice); got.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("expected balance untouched, got %s", got)
	}
}

func TestTransferOutOverdraftRejected(t *testing.T) {
	v := custody.NewMemoryVault()
	v.CreditReserve("BTY", big.NewInt(5))

	err := v.TransferOut("BTY", testAddr(1), big.NewInt(6))
	if !errors.Is(err, custody.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestInvalidAmountsRejected(t *testing.T) {
	v := custody.NewMemoryVault()
	if err := v.TransferIn("BTY", testAddr(1), nil); !errors.Is(err, custody.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := v.TransferOut("BTY", testAddr(1), big.NewInt(0)); !errors.Is(err, custody.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestAssetsAreIsolated(t *testing.T) {
	v := custody.NewMemoryVault()
	v.CreditReserve("AAA", big.NewInt(100))

	reserve, _ := v.BalanceOf("BBB")
	if reserve.Sign() != 0 {
		t.Fatalf("expected empty BBB reserve, got %s", reserve)
	}
}
