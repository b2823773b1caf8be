package bounty

import (
	"fmt"
	"math/big"

	"github.com/roothash-pay/auditBounty/core/events"
)

// Surplus reports the provably-unassigned custody of an asset: the custody
// balance minus the outstanding pending total. Zero when custody does not
// exceed pending.
func (e *Engine) Surplus(asset string) (*big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	symbol := NormalizeAsset(asset)
	if symbol == "" {
		return nil, ErrInvalidAsset
	}
	custodyBalance, err := e.vault.BalanceOf(symbol)
	if err != nil {
		return nil, fmt.Errorf("bounty: read custody balance: %w", err)
	}
	stats, err := e.loadStats(symbol)
	if err != nil {
		return nil, err
	}
	surplus := new(big.Int).Sub(custodyBalance, stats.Pending)
	if surplus.Sign() < 0 {
		return big.NewInt(0), nil
	}
	return surplus, nil
}

// WithdrawSurplus extracts amount of the asset's unassigned surplus to the
// given address. Only custody beyond the outstanding pending total is ever
// eligible, so promised rewards can never be drained. The net-funded counter
// is reduced by the withdrawal; it floors at zero when surplus from external
// top-ups exceeds historical funding, and the event carries the resulting
// net-funded value so downstream accounting can observe the drift.
func (e *Engine) WithdrawSurplus(operator [20]byte, asset string, to [20]byte, amount *big.Int) error {
	if err := e.ready(); err != nil {
		return err
	}
	symbol := NormalizeAsset(asset)
	if symbol == "" {
		return ErrInvalidAsset
	}
	if err := e.requireRole(operator, RoleAdmin, RoleFundManager); err != nil {
		return err
	}
	if isZeroAddress(to) {
		return ErrInvalidAccount
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	lock := e.assetLock(symbol)
	lock.Lock()
	defer lock.Unlock()

	custodyBalance, err := e.vault.BalanceOf(symbol)
	if err != nil {
		return fmt.Errorf("bounty: read custody balance: %w", err)
	}
	stats, err := e.loadStats(symbol)
	if err != nil {
		return err
	}
	if custodyBalance.Cmp(stats.Pending) <= 0 {
		return ErrNoSurplus
	}
	surplus := new(big.Int).Sub(custodyBalance, stats.Pending)
	if amount.Cmp(surplus) > 0 {
		return fmt.Errorf("%w: surplus is %s", ErrExceedsSurplus, surplus)
	}
	if err := e.vault.TransferOut(symbol, to, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	stats.Funded = new(big.Int).Sub(stats.Funded, amount)
	if stats.Funded.Sign() < 0 {
		stats.Funded = big.NewInt(0)
	}
	if err := e.writeStats(symbol, stats); err != nil {
		return err
	}
	e.emit(events.SurplusWithdrawn{
		Asset:     symbol,
		To:        to,
		Amount:    cloneBigInt(amount),
		Operator:  operator,
		NetFunded: cloneBigInt(stats.Funded),
	})
	e.telemetry.ObserveSurplusWithdrawn(symbol)
	return nil
}
