package bounty

import (
	"fmt"
	"math/big"

	"github.com/roothash-pay/auditBounty/core/events"
	nativecommon "github.com/roothash-pay/auditBounty/native/common"
)

// Fund moves amount of asset from the payer's external balance into system
// custody and bumps the asset's total-funded counter. The custody transfer
// and the counter update are all-or-nothing: a failed transfer leaves the
// ledger untouched. For the native symbol the attached value must equal the
// declared amount; other assets must not carry an attached value.
func (e *Engine) Fund(payer [20]byte, asset string, amount, attachedValue *big.Int) error {
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
	supported, err := e.isSupported(symbol)
	if err != nil {
		return err
	}
	if !supported {
		return fmt.Errorf("%w: %s", ErrUnsupportedAsset, symbol)
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if symbol == e.nativeSymbol {
		if attachedValue == nil || attachedValue.Cmp(amount) != 0 {
			return ErrAmountMismatch
		}
	} else if attachedValue != nil && attachedValue.Sign() != 0 {
		return ErrAmountMismatch
	}

	lock := e.assetLock(symbol)
	lock.Lock()
	defer lock.Unlock()

	if err := e.vault.TransferIn(symbol, payer, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	stats, err := e.loadStats(symbol)
	if err != nil {
		return err
	}
	stats.Funded = new(big.Int).Add(stats.Funded, amount)
	if err := e.writeStats(symbol, stats); err != nil {
		return err
	}
	e.emit(events.Funded{Asset: symbol, Payer: payer, Amount: cloneBigInt(amount)})
	e.telemetry.ObserveFunded(symbol)
	return nil
}
