package bounty

import (
	"math/big"
	"strings"
)

// assetInfo is the persisted registry record for one asset.
type assetInfo struct {
	Symbol    string
	Supported bool
}

// assetStats is the persisted aggregate counter record for one asset. All
// counters are non-negative; Funded tracks net funding attribution, not gross
// historical inflow.
type assetStats struct {
	Funded  *big.Int
	Pending *big.Int
	Claimed *big.Int
}

func newAssetStats() *assetStats {
	return &assetStats{
		Funded:  big.NewInt(0),
		Pending: big.NewInt(0),
		Claimed: big.NewInt(0),
	}
}

func (s *assetStats) normalize() *assetStats {
	if s.Funded == nil {
		s.Funded = big.NewInt(0)
	}
	if s.Pending == nil {
		s.Pending = big.NewInt(0)
	}
	if s.Claimed == nil {
		s.Claimed = big.NewInt(0)
	}
	return s
}

// TokenStats is the read-model returned for an asset: the three aggregate
// counters plus the custody balance reported by the vault.
type TokenStats struct {
	Funded  *big.Int
	Pending *big.Int
	Claimed *big.Int
	Balance *big.Int
}

// NormalizeAsset canonicalises an asset identifier. An identifier that is
// empty after trimming is the null sentinel and is rejected by every entry
// point.
func NormalizeAsset(asset string) string {
	return strings.ToUpper(strings.TrimSpace(asset))
}

func cloneBigInt(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

func isZeroAddress(addr [20]byte) bool {
	return addr == [20]byte{}
}
