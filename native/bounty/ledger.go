package bounty

import (
	"fmt"
	"math/big"

	"github.com/roothash-pay/auditBounty/core/events"
)

// pendingDraft stages batch mutations against an in-memory view of the
// pending table so a batch either applies in full or not at all.
type pendingDraft struct {
	engine  *Engine
	symbol  string
	values  map[[20]byte]*big.Int
	order   [][20]byte
	pending *big.Int
}

func (e *Engine) newPendingDraft(symbol string, stats *assetStats) *pendingDraft {
	return &pendingDraft{
		engine:  e,
		symbol:  symbol,
		values:  make(map[[20]byte]*big.Int),
		pending: cloneBigInt(stats.Pending),
	}
}

// get reads the staged value for an account, falling back to persisted state
// on first touch.
func (d *pendingDraft) get(account [20]byte) (*big.Int, error) {
	if value, ok := d.values[account]; ok {
		return cloneBigInt(value), nil
	}
	value, err := d.engine.loadPending(d.symbol, account)
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (d *pendingDraft) set(account [20]byte, value *big.Int) {
	if _, ok := d.values[account]; !ok {
		d.order = append(d.order, account)
	}
	d.values[account] = cloneBigInt(value)
}

// commit persists every staged entry and the updated aggregate counter.
func (d *pendingDraft) commit(stats *assetStats) error {
	for _, account := range d.order {
		if err := d.engine.writePending(d.symbol, account, d.values[account]); err != nil {
			return err
		}
	}
	stats.Pending = d.pending
	return d.engine.writeStats(d.symbol, stats)
}

// batchPrelude runs the checks shared by the three batch mutators and
// acquires nothing; callers lock the asset themselves once validation of the
// call shape passed.
func (e *Engine) batchPrelude(operator [20]byte, asset string, batchLen int) (string, error) {
	if err := e.ready(); err != nil {
		return "", err
	}
	symbol := NormalizeAsset(asset)
	if symbol == "" {
		return "", ErrInvalidAsset
	}
	if err := e.requireRole(operator, RoleRewardManager); err != nil {
		return "", err
	}
	supported, err := e.isSupported(symbol)
	if err != nil {
		return "", err
	}
	if !supported {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAsset, symbol)
	}
	if batchLen == 0 {
		return "", ErrEmptyBatch
	}
	return symbol, nil
}

// BatchAdd credits each (account, amount) pair incrementally. The whole batch
// is validated and staged before anything persists; a single invalid entry or
// a capacity breach aborts the call with no state change. After every
// increment the aggregate pending total must stay within the custody balance
// so rewards are never promised beyond what is held.
func (e *Engine) BatchAdd(operator [20]byte, asset string, accounts [][20]byte, amounts []*big.Int) error {
	if len(accounts) != len(amounts) {
		return ErrArrayLengthMismatch
	}
	symbol, err := e.batchPrelude(operator, asset, len(accounts))
	if err != nil {
		return err
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
	draft := e.newPendingDraft(symbol, stats)
	for i, account := range accounts {
		if isZeroAddress(account) {
			return ErrInvalidAccount
		}
		amount := amounts[i]
		if amount == nil || amount.Sign() <= 0 {
			return ErrInvalidAmount
		}
		current, err := draft.get(account)
		if err != nil {
			return err
		}
		draft.set(account, new(big.Int).Add(current, amount))
		draft.pending = draft.pending.Add(draft.pending, amount)
		if draft.pending.Cmp(custodyBalance) > 0 {
			return fmt.Errorf("%w: pending %s exceeds custody %s", ErrCapacityExceeded, draft.pending, custodyBalance)
		}
	}
	if err := draft.commit(stats); err != nil {
		return err
	}
	for i, account := range accounts {
		e.emit(events.RewardAdded{
			Asset:    symbol,
			Account:  account,
			Amount:   cloneBigInt(amounts[i]),
			Operator: operator,
		})
		e.telemetry.ObserveRewardCredited(symbol)
	}
	return nil
}

// BatchSet overrides each account's pending balance with an absolute value.
// Zero is permitted and clears the entry. The aggregate counter is adjusted
// by the delta of each override and re-checked against custody after every
// adjustment. Entries whose value does not change emit no notification.
func (e *Engine) BatchSet(operator [20]byte, asset string, accounts [][20]byte, amounts []*big.Int) error {
	if len(accounts) != len(amounts) {
		return ErrArrayLengthMismatch
	}
	symbol, err := e.batchPrelude(operator, asset, len(accounts))
	if err != nil {
		return err
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
	draft := e.newPendingDraft(symbol, stats)
	type change struct {
		account  [20]byte
		previous *big.Int
		value    *big.Int
	}
	changes := make([]change, 0, len(accounts))
	for i, account := range accounts {
		if isZeroAddress(account) {
			return ErrInvalidAccount
		}
		amount := amounts[i]
		if amount == nil || amount.Sign() < 0 {
			return ErrInvalidAmount
		}
		previous, err := draft.get(account)
		if err != nil {
			return err
		}
		if previous.Cmp(amount) == 0 {
			continue
		}
		draft.set(account, amount)
		draft.pending = draft.pending.Add(draft.pending, new(big.Int).Sub(amount, previous))
		if draft.pending.Cmp(custodyBalance) > 0 {
			return fmt.Errorf("%w: pending %s exceeds custody %s", ErrCapacityExceeded, draft.pending, custodyBalance)
		}
		changes = append(changes, change{account: account, previous: previous, value: cloneBigInt(amount)})
	}
	if err := draft.commit(stats); err != nil {
		return err
	}
	for _, c := range changes {
		e.emit(events.RewardSet{
			Asset:    symbol,
			Account:  c.account,
			Previous: c.previous,
			Amount:   c.value,
			Operator: operator,
		})
		e.telemetry.ObserveRewardCredited(symbol)
	}
	return nil
}

// BatchClear zeroes each account's pending balance and subtracts it from the
// aggregate counter. Accounts already at zero are skipped silently.
func (e *Engine) BatchClear(operator [20]byte, asset string, accounts [][20]byte) error {
	symbol, err := e.batchPrelude(operator, asset, len(accounts))
	if err != nil {
		return err
	}

	lock := e.assetLock(symbol)
	lock.Lock()
	defer lock.Unlock()

	stats, err := e.loadStats(symbol)
	if err != nil {
		return err
	}
	draft := e.newPendingDraft(symbol, stats)
	type cleared struct {
		account [20]byte
		amount  *big.Int
	}
	removals := make([]cleared, 0, len(accounts))
	for _, account := range accounts {
		if isZeroAddress(account) {
			return ErrInvalidAccount
		}
		current, err := draft.get(account)
		if err != nil {
			return err
		}
		if current.Sign() == 0 {
			continue
		}
		draft.set(account, big.NewInt(0))
		draft.pending = draft.pending.Sub(draft.pending, current)
		removals = append(removals, cleared{account: account, amount: current})
	}
	if err := draft.commit(stats); err != nil {
		return err
	}
	for _, r := range removals {
		e.emit(events.RewardCleared{
			Asset:    symbol,
			Account:  r.account,
			Amount:   r.amount,
			Operator: operator,
		})
	}
	return nil
}
