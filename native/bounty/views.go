package bounty

import (
	"fmt"
	"math/big"
)

// UserInfo returns the account's pending balance for the asset. Unknown
// assets and untouched accounts read as zero.
func (e *Engine) UserInfo(asset string, account [20]byte) (*big.Int, error) {
	if e.state == nil {
		return nil, errNilState
	}
	symbol := NormalizeAsset(asset)
	if symbol == "" {
		return nil, ErrInvalidAsset
	}
	if isZeroAddress(account) {
		return nil, ErrInvalidAccount
	}
	return e.loadPending(symbol, account)
}

// TokenStats returns the asset's aggregate counters together with the
// custody balance reported by the vault.
func (e *Engine) TokenStats(asset string) (*TokenStats, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	symbol := NormalizeAsset(asset)
	if symbol == "" {
		return nil, ErrInvalidAsset
	}
	stats, err := e.loadStats(symbol)
	if err != nil {
		return nil, err
	}
	balance, err := e.vault.BalanceOf(symbol)
	if err != nil {
		return nil, fmt.Errorf("bounty: read custody balance: %w", err)
	}
	return &TokenStats{
		Funded:  cloneBigInt(stats.Funded),
		Pending: cloneBigInt(stats.Pending),
		Claimed: cloneBigInt(stats.Claimed),
		Balance: balance,
	}, nil
}
