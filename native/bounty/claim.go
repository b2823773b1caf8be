package bounty

import (
	"fmt"
	"math/big"

	"github.com/roothash-pay/auditBounty/core/events"
	nativecommon "github.com/roothash-pay/auditBounty/native/common"
)

// Claim zeroes the account's pending balance for the asset and releases that
// amount from custody to the account. Anyone may trigger a claim; the payout
// always goes to the named account. The pending entry, the aggregate
// counters and the custody transfer move together: a failed transfer leaves
// the ledger untouched.
//
// The asset's support flag is deliberately not consulted here, so balances
// accrued before an asset was disabled remain claimable.
func (e *Engine) Claim(asset string, account [20]byte) error {
	if err := e.ready(); err != nil {
		return err
	}
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return ErrSystemPaused
	}
	symbol := NormalizeAsset(asset)
	if symbol == "" {
		return ErrInvalidAsset
	}
	if isZeroAddress(account) {
		return ErrInvalidAccount
	}

	lock := e.assetLock(symbol)
	lock.Lock()
	defer lock.Unlock()

	pending, err := e.loadPending(symbol, account)
	if err != nil {
		return err
	}
	if pending.Sign() == 0 {
		return ErrNoPendingReward
	}
	custodyBalance, err := e.vault.BalanceOf(symbol)
	if err != nil {
		return fmt.Errorf("bounty: read custody balance: %w", err)
	}
	// The capacity check on credit should make this impossible, but custody
	// can move underneath the ledger through external channels.
	if custodyBalance.Cmp(pending) < 0 {
		return fmt.Errorf("%w: custody %s below pending %s", ErrInsufficientBalance, custodyBalance, pending)
	}
	if err := e.vault.TransferOut(symbol, account, pending); err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	stats, err := e.loadStats(symbol)
	if err != nil {
		return err
	}
	if err := e.writePending(symbol, account, big.NewInt(0)); err != nil {
		return err
	}
	stats.Pending = new(big.Int).Sub(stats.Pending, pending)
	if stats.Pending.Sign() < 0 {
		stats.Pending = big.NewInt(0)
	}
	stats.Claimed = new(big.Int).Add(stats.Claimed, pending)
	if err := e.writeStats(symbol, stats); err != nil {
		return err
	}
	e.emit(events.Claimed{Asset: symbol, Account: account, Amount: pending})
	e.telemetry.ObserveClaim(symbol)
	return nil
}
