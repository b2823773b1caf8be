package events

import "math/big"

const (
	// TypeBountyAssetSupportChanged is emitted whenever an asset's support
	// flag is written, including idempotent re-writes of the same value.
	TypeBountyAssetSupportChanged = "bounty.asset.support_changed"
	// TypeBountyFunded is emitted when custody of an asset is topped up
	// through the funding ledger.
	TypeBountyFunded = "bounty.funded"
	// TypeBountyRewardAdded is emitted once per account credited by a batch
	// add.
	TypeBountyRewardAdded = "bounty.reward.added"
	// TypeBountyRewardSet is emitted once per account whose pending balance
	// changed under a batch set.
	TypeBountyRewardSet = "bounty.reward.set"
	// TypeBountyRewardCleared is emitted once per account whose nonzero
	// pending balance was cleared.
	TypeBountyRewardCleared = "bounty.reward.cleared"
	// TypeBountyClaimed is emitted when a recipient withdraws their pending
	// balance.
	TypeBountyClaimed = "bounty.claimed"
	// TypeBountySurplusWithdrawn is emitted when unassigned custody surplus
	// is extracted by an operator.
	TypeBountySurplusWithdrawn = "bounty.surplus.withdrawn"
	// TypeBountyPaused and TypeBountyUnpaused track the module pause switch.
	TypeBountyPaused   = "bounty.paused"
	TypeBountyUnpaused = "bounty.unpaused"
	// TypeBountyRoleGranted and TypeBountyRoleRevoked track role membership
	// administration.
	TypeBountyRoleGranted = "bounty.role.granted"
	TypeBountyRoleRevoked = "bounty.role.revoked"
)

// AssetSupportChanged records a registry toggle for an asset.
type AssetSupportChanged struct {
	Asset     string
	Supported bool
	Caller    [20]byte
}

func (AssetSupportChanged) EventType() string { return TypeBountyAssetSupportChanged }

// Funded records an inbound custody transfer.
type Funded struct {
	Asset  string
	Payer  [20]byte
	Amount *big.Int
}

func (Funded) EventType() string { return TypeBountyFunded }

// RewardAdded records an incremental pending credit for one account.
type RewardAdded struct {
	Asset    string
	Account  [20]byte
	Amount   *big.Int
	Operator [20]byte
}

func (RewardAdded) EventType() string { return TypeBountyRewardAdded }

// RewardSet records an absolute override of one account's pending balance.
type RewardSet struct {
	Asset    string
	Account  [20]byte
	Previous *big.Int
	Amount   *big.Int
	Operator [20]byte
}

func (RewardSet) EventType() string { return TypeBountyRewardSet }

// RewardCleared records the zeroing of one account's pending balance.
type RewardCleared struct {
	Asset    string
	Account  [20]byte
	Amount   *big.Int
	Operator [20]byte
}

func (RewardCleared) EventType() string { return TypeBountyRewardCleared }

// Claimed records a successful self-service withdrawal.
type Claimed struct {
	Asset   string
	Account [20]byte
	Amount  *big.Int
}

func (Claimed) EventType() string { return TypeBountyClaimed }

// SurplusWithdrawn records an administrative extraction of unassigned
// custody. NetFunded carries the post-withdrawal net-funded counter so
// downstream accounting can observe the bookkeeping drift.
type SurplusWithdrawn struct {
	Asset     string
	To        [20]byte
	Amount    *big.Int
	Operator  [20]byte
	NetFunded *big.Int
}

func (SurplusWithdrawn) EventType() string { return TypeBountySurplusWithdrawn }

// Paused records the pause switch being engaged.
type Paused struct {
	Caller [20]byte
}

func (Paused) EventType() string { return TypeBountyPaused }

// Unpaused records the pause switch being released.
type Unpaused struct {
	Caller [20]byte
}

func (Unpaused) EventType() string { return TypeBountyUnpaused }

// RoleGranted records an address being added to a role.
type RoleGranted struct {
	Role    string
	Address [20]byte
	Caller  [20]byte
}

func (RoleGranted) EventType() string { return TypeBountyRoleGranted }

// RoleRevoked records an address being removed from a role.
type RoleRevoked struct {
	Role    string
	Address [20]byte
	Caller  [20]byte
}

func (RoleRevoked) EventType() string { return TypeBountyRoleRevoked }
