package bounty

import (
	"github.com/roothash-pay/auditBounty/core/events"
)

// SetSupported registers an asset or toggles an already-known asset's
// eligibility flag. Registration order is preserved in an append-only index
// that never shrinks; disabling an asset only flips its flag. Writing the
// value an asset already holds changes no state but still emits the support
// notification.
func (e *Engine) SetSupported(caller [20]byte, asset string, supported bool) error {
	if e.state == nil {
		return errNilState
	}
	symbol := NormalizeAsset(asset)
	if symbol == "" {
		return ErrInvalidAsset
	}
	if err := e.requireRole(caller, RoleAdmin); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	info, found, err := e.loadAsset(symbol)
	if err != nil {
		return err
	}
	switch {
	case !found:
		if err := e.state.KVPut(assetKey(symbol), &assetInfo{Symbol: symbol, Supported: supported}); err != nil {
			return err
		}
		if err := e.state.KVAppend(assetIndexKey, []byte(symbol)); err != nil {
			return err
		}
	case info.Supported != supported:
		info.Supported = supported
		if err := e.state.KVPut(assetKey(symbol), info); err != nil {
			return err
		}
	}
	e.emit(events.AssetSupportChanged{Asset: symbol, Supported: supported, Caller: caller})
	return nil
}

// KnownAssets returns every asset ever registered, in registration order.
// The list includes currently-unsupported assets; callers filter by
// IsSupported when they only want live ones.
func (e *Engine) KnownAssets() ([]string, error) {
	if e.state == nil {
		return nil, errNilState
	}
	var raw [][]byte
	if err := e.state.KVGetList(assetIndexKey, &raw); err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(raw))
	for _, b := range raw {
		symbols = append(symbols, string(b))
	}
	return symbols, nil
}

// IsSupported reports whether the asset is currently eligible for funding and
// reward credit.
func (e *Engine) IsSupported(asset string) (bool, error) {
	if e.state == nil {
		return false, errNilState
	}
	symbol := NormalizeAsset(asset)
	if symbol == "" {
		return false, ErrInvalidAsset
	}
	return e.isSupported(symbol)
}
