// Package custody abstracts the external transfer collaborator that actually
// holds asset balances. The ledger core only ever observes custody through
// the Vault interface; a production deployment binds it to the settlement
// backend while tests and local nodes use MemoryVault.
package custody

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
)

var (
	// ErrInsufficientFunds is reported when a transfer would overdraw the
	// source balance.
	ErrInsufficientFunds = errors.New("custody: insufficient funds")
	// ErrInvalidAmount is reported for nil or non-positive transfer amounts.
	ErrInvalidAmount = errors.New("custody: amount must be positive")
)

// Vault is the custody/transfer service backing the ledger. BalanceOf reports
// the quantity of an asset currently held in system custody. TransferIn moves
// funds from an external account into custody; TransferOut releases custody
// back to an external account. Both must either fully apply or fully fail.
type Vault interface {
	BalanceOf(asset string) (*big.Int, error)
	TransferIn(asset string, from [20]byte, amount *big.Int) error
	TransferOut(asset string, to [20]byte, amount *big.Int) error
}

// MemoryVault implements Vault with in-process balances. External account
// balances are tracked alongside the custody reserve so round trips through
// fund/claim remain conserved.
type MemoryVault struct {
	mu       sync.Mutex
	reserve  map[string]*big.Int
	accounts map[string]map[[20]byte]*big.Int
}

func NewMemoryVault() *MemoryVault {
	return &MemoryVault{
		reserve:  make(map[string]*big.Int),
		accounts: make(map[string]map[[20]byte]*big.Int),
	}
}

func (v *MemoryVault) BalanceOf(asset string) (*big.Int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return cloneOrZero(v.reserve[asset]), nil
}

func (v *MemoryVault) TransferIn(asset string, from [20]byte, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	balance := v.accountBalance(asset, from)
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: account holds %s of %s", ErrInsufficientFunds, balance, asset)
	}
	v.setAccountBalance(asset, from, new(big.Int).Sub(balance, amount))
	v.reserve[asset] = new(big.Int).Add(cloneOrZero(v.reserve[asset]), amount)
	return nil
}

func (v *MemoryVault) TransferOut(asset string, to [20]byte, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	reserve := cloneOrZero(v.reserve[asset])
	if reserve.Cmp(amount) < 0 {
		return fmt.Errorf("%w: custody holds %s of %s", ErrInsufficientFunds, reserve, asset)
	}
	v.reserve[asset] = reserve.Sub(reserve, amount)
	v.setAccountBalance(asset, to, new(big.Int).Add(v.accountBalance(asset, to), amount))
	return nil
}

// Mint credits an external account out of thin air. Local development and
// test seeding only.
func (v *MemoryVault) Mint(asset string, addr [20]byte, amount *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setAccountBalance(asset, addr, new(big.Int).Add(v.accountBalance(asset, addr), amount))
}

// CreditReserve tops up custody directly, bypassing any account. It models
// external transfers that land in custody outside the funding ledger, which
// is how unattributed surplus arises.
func (v *MemoryVault) CreditReserve(asset string, amount *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reserve[asset] = new(big.Int).Add(cloneOrZero(v.reserve[asset]), amount)
}

// AccountBalance reports an external account's holdings of an asset.
func (v *MemoryVault) AccountBalance(asset string, addr [20]byte) *big.Int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return cloneOrZero(v.accounts[asset][addr])
}

func (v *MemoryVault) accountBalance(asset string, addr [20]byte) *big.Int {
	return cloneOrZero(v.accounts[asset][addr])
}

func (v *MemoryVault) setAccountBalance(asset string, addr [20]byte, amount *big.Int) {
	book, ok := v.accounts[asset]
	if !ok {
		book = make(map[[20]byte]*big.Int)
		v.accounts[asset] = book
	}
	book[addr] = amount
}

func cloneOrZero(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}
